// Package timeline loads episode topics from generated timeline files.
package timeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/kwonth211/podcastify/internal/ports"
)

// ErrNoTimeline signals that no timeline file or topic line is available.
// Callers treat it as "nothing to promote", not as a failure.
var ErrNoTimeline = errors.New("no timeline topics available")

// topicExpr matches lines like "[12:34] 오늘의 경제 뉴스"; the capture is
// the topic text after the bracketed timestamp.
var topicExpr = regexp.MustCompile(`^\[[\d:]+\]\s*(.+)`)

// Loader reads the most recent timeline transcript from a directory.
type Loader struct {
	dir    string
	logger *slog.Logger
}

var _ ports.TopicSource = (*Loader)(nil)

// NewLoader wires the transcript directory.
func NewLoader(dir string, logger *slog.Logger) *Loader {
	return &Loader{dir: dir, logger: logger}
}

// Topics parses the newest "*timeline*.txt" file into an ordered topic
// list. Lines without a bracketed timestamp prefix are ignored.
func (l *Loader) Topics() ([]string, error) {
	path, err := l.latestTimelineFile()
	if err != nil {
		return nil, err
	}

	if l.logger != nil {
		l.logger.Info("loading timeline", "file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timeline %s: %w", path, err)
	}

	var topics []string
	for _, line := range strings.Split(string(data), "\n") {
		match := topicExpr.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}
		if topic := strings.TrimSpace(match[1]); topic != "" {
			topics = append(topics, topic)
		}
	}

	if len(topics) == 0 {
		return nil, ErrNoTimeline
	}
	return topics, nil
}

func (l *Loader) latestTimelineFile() (string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoTimeline
		}
		return "", fmt.Errorf("read transcript dir: %w", err)
	}

	var (
		latest     string
		latestTime time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.Contains(name, "timeline") || !strings.HasSuffix(name, ".txt") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest = name
			latestTime = info.ModTime()
		}
	}

	if latest == "" {
		return "", ErrNoTimeline
	}
	return filepath.Join(l.dir, latest), nil
}
