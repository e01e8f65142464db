package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kwonth211/podcastify/internal/ports"
)

// archiveRecord is the persisted snapshot of the day's headline titles.
type archiveRecord struct {
	Headlines []string `json:"headlines"`
	Count     int      `json:"count"`
}

// HeadlineArchive persists extracted titles for reuse by the social
// composer. Titles are ephemeral daily content, so each save overwrites the
// previous record wholesale.
type HeadlineArchive struct {
	path   string
	logger *slog.Logger
}

var _ ports.HeadlineArchive = (*HeadlineArchive)(nil)

// NewHeadlineArchive wires the archive file path.
func NewHeadlineArchive(path string, logger *slog.Logger) *HeadlineArchive {
	return &HeadlineArchive{path: path, logger: logger}
}

// Save overwrites the archive with the given titles. An empty list skips
// the write and returns false.
func (a *HeadlineArchive) Save(titles []string) (bool, error) {
	if len(titles) == 0 {
		if a.logger != nil {
			a.logger.Info("no titles to save, skipping archive")
		}
		return false, nil
	}

	data, err := json.MarshalIndent(archiveRecord{Headlines: titles, Count: len(titles)}, "", "  ")
	if err != nil {
		return false, fmt.Errorf("marshal archive: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return false, fmt.Errorf("create archive dir: %w", err)
	}
	if err := os.WriteFile(a.path, data, 0o644); err != nil {
		return false, fmt.Errorf("write archive: %w", err)
	}

	if a.logger != nil {
		a.logger.Info("archive saved", "titles", len(titles))
	}
	return true, nil
}

// Load reads the archived titles back. A missing file yields an empty list.
func (a *HeadlineArchive) Load() ([]string, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read archive: %w", err)
	}

	var record archiveRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse archive: %w", err)
	}

	return record.Headlines, nil
}
