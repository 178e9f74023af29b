package instances

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/samber/lo"

	"tubefeed/models"
)

type instanceDetails struct {
	Type string `json:"type"`
	URI  string `json:"uri"`
}

// The directory serves a JSON array of [name, details] tuples.
type instanceEntry struct {
	Name    string
	Details instanceDetails
}

func (e *instanceEntry) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("expected [name, details] tuple, got %d elements", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &e.Name); err != nil {
		return err
	}
	return json.Unmarshal(tuple[1], &e.Details)
}

// Directory looks up mirror instances from a public index endpoint.
type Directory struct {
	url    string
	client *http.Client
}

func NewDirectory(url string) *Directory {
	return &Directory{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup returns the first directly reachable https mirror listed by the
// directory. Onion and i2p entries are skipped.
func (d *Directory) Lookup(ctx context.Context) (models.Instance, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return models.Instance{}, fmt.Errorf("failed to build directory request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return models.Instance{}, fmt.Errorf("failed to query instance directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Instance{}, fmt.Errorf("instance directory returned %d", resp.StatusCode)
	}

	var entries []instanceEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return models.Instance{}, fmt.Errorf("failed to decode instance directory: %w", err)
	}

	entry, ok := lo.Find(entries, func(e instanceEntry) bool {
		return e.Details.Type == "https" && e.Details.URI != ""
	})
	if !ok {
		return models.Instance{}, fmt.Errorf("no reachable https instance in directory")
	}

	log.Infof("selected instance: %s", entry.Name)

	return models.Instance{
		URL:    strings.TrimRight(entry.Details.URI, "/"),
		Mirror: true,
	}, nil
}
