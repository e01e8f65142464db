package objectstore

import (
	"testing"

	"github.com/kwonth211/podcastify/internal/config"
)

func TestPublicURLPrefersCustomDomain(t *testing.T) {
	t.Parallel()

	cfg := config.StorageConfig{
		Endpoint:     "https://abc123.r2.cloudflarestorage.com",
		Bucket:       "daily-podcast",
		CustomDomain: "https://cdn.dailynewspod.com/",
		DevSubdomain: "https://pub-xyz.r2.dev",
	}

	got := PublicURL(cfg, "20260827_podcast.mp3")
	want := "https://cdn.dailynewspod.com/daily-podcast/20260827_podcast.mp3"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestPublicURLDevSubdomainSkipsBucket(t *testing.T) {
	t.Parallel()

	cfg := config.StorageConfig{
		Endpoint:     "https://abc123.r2.cloudflarestorage.com",
		Bucket:       "daily-podcast",
		DevSubdomain: "https://pub-xyz.r2.dev",
	}

	got := PublicURL(cfg, "20260827_podcast.mp3")
	want := "https://pub-xyz.r2.dev/20260827_podcast.mp3"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestPublicURLConstructedFromEndpoint(t *testing.T) {
	t.Parallel()

	cfg := config.StorageConfig{
		Endpoint: "https://abc123.r2.cloudflarestorage.com",
		Bucket:   "daily-podcast",
	}

	got := PublicURL(cfg, "episode 1.mp3")
	want := "https://daily-podcast.abc123.r2.dev/episode%201.mp3"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestContentTypeFor(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"podcast.mp3":  "audio/mpeg",
		"timeline.txt": "text/plain",
		"cover.png":    "application/octet-stream",
	}
	for name, want := range cases {
		if got := ContentTypeFor(name); got != want {
			t.Fatalf("%s: expected %s, got %s", name, want, got)
		}
	}
}
