package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"tubefeed/config"
	"tubefeed/models"
)

// Shape of a translation endpoint response. Field presence is best effort,
// missing optional fields must not break decoding.
type translatedFeed struct {
	Title string           `json:"title"`
	Items []translatedItem `json:"items"`
}

type translatedItem struct {
	Id            string           `json:"id"`
	URL           string           `json:"url"`
	Title         string           `json:"title"`
	DatePublished string           `json:"date_published"`
	Author        translatedAuthor `json:"author"`
}

type translatedAuthor struct {
	Name string `json:"name"`
}

// Aggregator fetches the subscribed channels through the feed translation
// endpoint and merges the results into one recency-sorted, capped list.
type Aggregator struct {
	cfg      config.Config
	instance models.Instance
	client   *http.Client
	limiter  *rate.Limiter
}

func NewAggregator(cfg config.Config, instance models.Instance) *Aggregator {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Aggregator{
		cfg:      cfg,
		instance: instance,
		client:   &http.Client{Timeout: cfg.FetchTimeout},
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Aggregate runs one full aggregation pass over the given channels. Channels
// are fetched one after another; a failed or empty channel contributes no
// entries and does not abort the pass. After every ChannelBatch channels the
// pass pauses for the configured cooldown to go easy on the shared
// translation endpoint.
func (a *Aggregator) Aggregate(ctx context.Context, channels []string) ([]models.Video, error) {
	videos := make([]models.Video, 0, len(channels)*a.cfg.PerChannelLimit)
	seen := make(map[string]struct{})

	for processed, id := range channels {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		fetched, err := a.fetchChannel(ctx, id)
		if err != nil {
			log.WithFields(log.Fields{
				"channel": id,
				"error":   err,
			}).Debug("Skipping channel")
		}
		for _, video := range fetched {
			if _, ok := seen[video.Id]; ok {
				continue
			}
			seen[video.Id] = struct{}{}
			videos = append(videos, video)
		}

		if a.cfg.ChannelBatch > 0 && (processed+1)%a.cfg.ChannelBatch == 0 && processed+1 < len(channels) {
			log.WithFields(log.Fields{
				"processed": processed + 1,
			}).Info("Cooling down between channel batches")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(a.cfg.Cooldown):
			}
		}
	}

	// Stable sort keeps arrival order for equal timestamps
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].Published.After(videos[j].Published)
	})
	if len(videos) > a.cfg.VideoLimit {
		videos = videos[:a.cfg.VideoLimit]
	}

	return videos, nil
}

// fetchChannel retrieves one channel's feed through the translation endpoint
// and returns at most PerChannelLimit entries in feed order, each tagged with
// the source channel id.
func (a *Aggregator) fetchChannel(ctx context.Context, channelId string) ([]models.Video, error) {
	translated := a.cfg.Translator + "?url=" + url.QueryEscape(a.instance.FeedURL(channelId))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, translated, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("translation endpoint returned %d", resp.StatusCode)
	}

	var feed translatedFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}

	items := feed.Items
	if len(items) > a.cfg.PerChannelLimit {
		items = items[:a.cfg.PerChannelLimit]
	}

	videos := make([]models.Video, 0, len(items))
	for _, item := range items {
		id := videoId(item)
		if id == "" {
			continue
		}
		// Feeds without a parsable timestamp sort to the end
		published, _ := time.Parse(time.RFC3339, item.DatePublished)
		name := item.Author.Name
		if name == "" {
			name = feed.Title
		}
		videos = append(videos, models.Video{
			Id:          id,
			Title:       item.Title,
			Published:   published,
			ChannelId:   channelId,
			ChannelName: name,
		})
	}

	return videos, nil
}

// Some translators pass the platform's yt:video: prefix through on the item
// id, others drop the id entirely and only keep the watch URL.
func videoId(item translatedItem) string {
	if id := strings.TrimPrefix(item.Id, "yt:video:"); id != "" {
		return id
	}
	if u, err := url.Parse(item.URL); err == nil {
		return u.Query().Get("v")
	}
	return ""
}
