package ports

import (
	"context"
	"time"

	"github.com/kwonth211/podcastify/internal/domain"
)

// PageRenderer drives a browser and returns fully rendered HTML for a URL.
type PageRenderer interface {
	Render(ctx context.Context, pageURL string) (string, error)
	Close()
}

// HeadlineExtractor turns rendered HTML into a bounded headline set.
type HeadlineExtractor interface {
	Extract(html string) domain.HeadlineSet
}

// URLStore reconciles extracted URLs with the persistent list file and
// reads them back for generation.
type URLStore interface {
	Merge(urls []string) (domain.MergeOutcome, error)
	LoadURLs() ([]string, error)
}

// HeadlineArchive persists and reloads the day's headline titles.
type HeadlineArchive interface {
	Save(titles []string) (bool, error)
	Load() ([]string, error)
}

// TopicSource yields ordered topic strings for message composition.
type TopicSource interface {
	Topics() ([]string, error)
}

// PodcastGenerator produces an audio artifact from an ordered URL list.
type PodcastGenerator interface {
	Generate(ctx context.Context, urls []string) (string, error)
}

// ArtifactStore uploads a finished file and returns its public URL.
type ArtifactStore interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
}

// SocialPublisher posts a promotional message and returns a post id.
type SocialPublisher interface {
	Publish(ctx context.Context, message string) (string, error)
}

// PushSender delivers a short heading/body pair to subscribers.
type PushSender interface {
	Send(ctx context.Context, heading, body string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
