package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kwonth211/podcastify/internal/domain"
	"github.com/kwonth211/podcastify/internal/ports"
)

// autoUpdateMarker demarcates the machine-written region of the URL file.
// The written line is "# " + autoUpdateMarker; any existing line containing
// the marker text is regenerated on merge.
const autoUpdateMarker = "Auto-updated URLs from Naver News Economy section"

// URLStore maintains the comment-annotated daily URL list consumed by the
// podcast generator. Comments and blank lines are user-owned and preserved;
// the URL data region is machine-owned and replaced wholesale.
type URLStore struct {
	path   string
	logger *slog.Logger
}

var _ ports.URLStore = (*URLStore)(nil)

// NewURLStore wires the store file path.
func NewURLStore(path string, logger *slog.Logger) *URLStore {
	return &URLStore{path: path, logger: logger}
}

// Merge replaces the auto-generated region with the given URLs while
// keeping every comment, blank, and unrelated line in original order.
//
// Any line containing "http://" or "https://" is treated as previously
// auto-generated data and dropped, even if a user added it by hand. This is
// intentionally lossy and matches the store's documented contract.
//
// An empty URL list leaves the file untouched and reports MergeSkipped.
func (s *URLStore) Merge(urls []string) (domain.MergeOutcome, error) {
	if len(urls) == 0 {
		s.log("no URLs to write, skipping store update")
		return domain.MergeSkipped, nil
	}

	existing, err := s.readLines()
	if err != nil {
		return "", fmt.Errorf("read store: %w", err)
	}

	kept := make([]string, 0, len(existing))
	for _, line := range existing {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.Contains(trimmed, autoUpdateMarker):
			// regenerated below
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			kept = append(kept, line)
		case strings.Contains(trimmed, "http://") || strings.Contains(trimmed, "https://"):
			// previously auto-generated data
		default:
			kept = append(kept, line)
		}
	}

	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}
	if len(kept) > 0 {
		kept = append(kept, "")
	}

	kept = append(kept, "# "+autoUpdateMarker)
	kept = append(kept, strings.Join(urls, ","))

	if err := s.writeAtomic(strings.Join(kept, "\n") + "\n"); err != nil {
		return "", err
	}

	s.log("store updated", "urls", len(urls))
	return domain.MergeWritten, nil
}

// LoadURLs reads the store back, skipping comments and blanks and splitting
// comma-delimited data lines. A missing file yields an empty list.
func (s *URLStore) LoadURLs() ([]string, error) {
	lines, err := s.readLines()
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	var urls []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		for _, part := range strings.Split(trimmed, ",") {
			if u := strings.TrimSpace(part); u != "" {
				urls = append(urls, u)
			}
		}
	}

	return urls, nil
}

func (s *URLStore) readLines() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// writeAtomic replaces the store via temp file + rename so a concurrent
// reader never observes a half-written file.
func (s *URLStore) writeAtomic(content string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp store: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace store: %w", err)
	}

	return nil
}

func (s *URLStore) log(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}
