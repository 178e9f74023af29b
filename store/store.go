package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	log "github.com/sirupsen/logrus"
)

// Channel ids are the UC prefix followed by 22 id characters.
var (
	channelId  = regexp.MustCompile(`^UC[0-9A-Za-z_-]{22}$`)
	channelURI = regexp.MustCompile(`UC[0-9A-Za-z_-]{22}/?$`)
)

// IsValidChannelId reports whether s is a bare channel id.
func IsValidChannelId(s string) bool {
	return channelId.MatchString(s)
}

// IsValidChannelURI reports whether s ends in a channel id, optionally
// followed by a single trailing slash.
func IsValidChannelURI(s string) bool {
	return channelURI.MatchString(s)
}

// ParseChannelURI extracts the channel id from the tail of a channel URL.
func ParseChannelURI(s string) (string, bool) {
	match := channelURI.FindString(s)
	if match == "" {
		return "", false
	}
	if match[len(match)-1] == '/' {
		match = match[:len(match)-1]
	}
	return match, true
}

// Store is the set of subscribed channel ids, backed by a flat text file
// with one id per line.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Init creates the backing file if it does not exist yet, so a missing file
// reads as an empty subscription set.
func (s *Store) Init() error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to initialize subscriptions file %s: %w", s.path, err)
	}
	return f.Close()
}

// All returns the subscribed channel ids in file order, skipping blank lines.
func (s *Store) All() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subscriptions file %s: %w", s.path, err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subscriptions file %s: %w", s.path, err)
	}
	return ids, nil
}

// Add appends the channel id to the backing file. Invalid or already
// subscribed ids are skipped with a warning.
func (s *Store) Add(id string) error {
	if !IsValidChannelId(id) {
		log.WithFields(log.Fields{
			"channel": id,
		}).Warn("Not a valid channel id, skipping")
		return nil
	}

	ids, err := s.All()
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			log.WithFields(log.Fields{
				"channel": id,
			}).Warn("Already subscribed, skipping")
			return nil
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open subscriptions file %s: %w", s.path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, id); err != nil {
		return fmt.Errorf("failed to write subscription %s: %w", id, err)
	}

	log.WithFields(log.Fields{
		"channel": id,
	}).Info("Subscribed to channel")
	return nil
}

// Remove filters the channel id out of the backing file. The filtered set is
// written to a temp file and moved into place so a crash cannot leave a
// partially written file behind. Invalid or unknown ids are skipped with a
// warning.
func (s *Store) Remove(id string) error {
	if !IsValidChannelId(id) {
		log.WithFields(log.Fields{
			"channel": id,
		}).Warn("Not a valid channel id, skipping")
		return nil
	}

	ids, err := s.All()
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(ids))
	found := false
	for _, existing := range ids {
		if existing == id {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		log.WithFields(log.Fields{
			"channel": id,
		}).Warn("Not subscribed, skipping")
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp subscriptions file: %w", err)
	}
	for _, existing := range kept {
		if _, err := fmt.Fprintln(tmp, existing); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return fmt.Errorf("failed to write temp subscriptions file: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp subscriptions file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace subscriptions file %s: %w", s.path, err)
	}

	log.WithFields(log.Fields{
		"channel": id,
	}).Info("Unsubscribed from channel")
	return nil
}
