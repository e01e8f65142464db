package timeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTopicsParsesTimestampedLines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "[00:05] Topic A\nnot a topic\n[01:10] Topic B\n[02:20]\n"
	if err := os.WriteFile(filepath.Join(dir, "episode_timeline.txt"), []byte(content), 0o644); err != nil {
		t.Fatalf("write timeline: %v", err)
	}

	topics, err := NewLoader(dir, nil).Topics()
	if err != nil {
		t.Fatalf("topics: %v", err)
	}

	want := []string{"Topic A", "Topic B"}
	if len(topics) != len(want) {
		t.Fatalf("expected %d topics, got %d: %v", len(want), len(topics), topics)
	}
	for i := range want {
		if topics[i] != want[i] {
			t.Fatalf("topic %d: expected %q, got %q", i, want[i], topics[i])
		}
	}
}

func TestTopicsPicksNewestTimelineFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	old := filepath.Join(dir, "20240101_timeline.txt")
	fresh := filepath.Join(dir, "20240102_timeline.txt")

	if err := os.WriteFile(old, []byte("[00:01] 옛날 토픽\n"), 0o644); err != nil {
		t.Fatalf("write old: %v", err)
	}
	if err := os.WriteFile(fresh, []byte("[00:01] 최신 토픽\n"), 0o644); err != nil {
		t.Fatalf("write fresh: %v", err)
	}

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	topics, err := NewLoader(dir, nil).Topics()
	if err != nil {
		t.Fatalf("topics: %v", err)
	}
	if len(topics) != 1 || topics[0] != "최신 토픽" {
		t.Fatalf("expected newest file topics, got %v", topics)
	}
}

func TestTopicsIgnoresNonTimelineFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "transcript.txt"), []byte("[00:01] 무관\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "timeline.md"), []byte("[00:01] 확장자 불일치\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewLoader(dir, nil).Topics(); !errors.Is(err, ErrNoTimeline) {
		t.Fatalf("expected ErrNoTimeline, got %v", err)
	}
}

func TestTopicsMissingDirAndNoMatches(t *testing.T) {
	t.Parallel()

	if _, err := NewLoader(filepath.Join(t.TempDir(), "absent"), nil).Topics(); !errors.Is(err, ErrNoTimeline) {
		t.Fatalf("expected ErrNoTimeline for missing dir, got %v", err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a_timeline.txt"), []byte("no timestamps here\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewLoader(dir, nil).Topics(); !errors.Is(err, ErrNoTimeline) {
		t.Fatalf("expected ErrNoTimeline for no matching lines, got %v", err)
	}
}
