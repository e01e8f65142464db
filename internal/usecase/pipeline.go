package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kwonth211/podcastify/internal/compose"
	"github.com/kwonth211/podcastify/internal/ports"
)

// ErrNoInput marks a recoverable skip: the run has nothing to do. Callers
// exit cleanly on it, unlike hard failures.
var ErrNoInput = errors.New("no input available")

// ErrNoHeadlines marks an extraction run that produced nothing usable.
// It is fatal for the update run: no headlines means no file update.
var ErrNoHeadlines = errors.New("no headlines extracted")

// PipelineDeps wires all driven adapters into the orchestration pipeline.
// Nil adapters disable their stage: delivery channels are only constructed
// when credentials are configured.
type PipelineDeps struct {
	Renderer  ports.PageRenderer
	Extractor ports.HeadlineExtractor
	URLStore  ports.URLStore
	Archive   ports.HeadlineArchive
	Topics    ports.TopicSource
	Generator ports.PodcastGenerator
	Artifacts ports.ArtifactStore
	Social    ports.SocialPublisher
	Push      ports.PushSender

	SectionURL    string
	TranscriptDir string
	Templates     compose.Templates
	Logger        *slog.Logger
}

// Pipeline implements the daily headline → podcast → promotion workflow.
type Pipeline struct {
	renderer  ports.PageRenderer
	extractor ports.HeadlineExtractor
	urlStore  ports.URLStore
	archive   ports.HeadlineArchive
	topics    ports.TopicSource
	generator ports.PodcastGenerator
	artifacts ports.ArtifactStore
	social    ports.SocialPublisher
	push      ports.PushSender

	sectionURL    string
	transcriptDir string
	templates     compose.Templates
	logger        *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		renderer:      deps.Renderer,
		extractor:     deps.Extractor,
		urlStore:      deps.URLStore,
		archive:       deps.Archive,
		topics:        deps.Topics,
		generator:     deps.Generator,
		artifacts:     deps.Artifacts,
		social:        deps.Social,
		push:          deps.Push,
		sectionURL:    deps.SectionURL,
		transcriptDir: deps.TranscriptDir,
		templates:     deps.Templates,
		logger:        deps.Logger,
	}
}

// UpdateHeadlines renders the section page, extracts today's headlines,
// merges their URLs into the store, and archives the titles. An empty
// extraction is fatal: the downstream generator would have nothing to read.
func (p *Pipeline) UpdateHeadlines(ctx context.Context, now time.Time) error {
	if p.renderer == nil || p.extractor == nil {
		return fmt.Errorf("headline update not wired")
	}

	p.info("fetching section page", "url", p.sectionURL)
	html, err := p.renderer.Render(ctx, p.sectionURL)
	if err != nil {
		return fmt.Errorf("render section page: %w", err)
	}

	set := p.extractor.Extract(html)
	if set.Empty() {
		return ErrNoHeadlines
	}
	p.info("headlines extracted", "count", len(set.Headlines))

	if p.urlStore != nil {
		outcome, err := p.urlStore.Merge(set.URLs())
		if err != nil {
			return fmt.Errorf("update url store: %w", err)
		}
		p.info("url store merge", "outcome", string(outcome))
	}

	if p.archive != nil {
		written, err := p.archive.Save(set.Titles())
		if err != nil {
			return fmt.Errorf("save headline archive: %w", err)
		}
		p.info("headline archive", "written", written)
	}

	return nil
}

// GenerateEpisode loads the stored URLs, produces the audio artifact, and
// uploads it together with the newest transcript. An empty store is a
// clean skip (ErrNoInput); upload failures are logged and never fatal.
func (p *Pipeline) GenerateEpisode(ctx context.Context, now time.Time) error {
	if p.urlStore == nil || p.generator == nil {
		return fmt.Errorf("episode generation not wired")
	}

	urls, err := p.urlStore.LoadURLs()
	if err != nil {
		return fmt.Errorf("load urls: %w", err)
	}
	if len(urls) == 0 {
		p.info("url store empty, skipping generation")
		return ErrNoInput
	}

	p.info("generating podcast", "urls", len(urls))
	audioPath, err := p.generator.Generate(ctx, urls)
	if err != nil {
		return fmt.Errorf("generate podcast: %w", err)
	}
	p.info("podcast generated", "file", audioPath)

	if p.artifacts == nil {
		return nil
	}

	timestamp := now.Format("20060102_150405")
	p.uploadArtifact(ctx, audioPath, timestamp)

	if transcript := latestTranscript(p.transcriptDir); transcript != "" {
		p.uploadArtifact(ctx, transcript, timestamp)
	}

	return nil
}

// Promote composes and delivers both promotional messages: the social post
// from archived headline titles and the push notification from timeline
// topics. Each channel isolates its own failure; none affects the run's
// exit status.
func (p *Pipeline) Promote(ctx context.Context, now time.Time) error {
	p.promoteSocial(ctx, now)
	p.promotePush(ctx, now)
	return nil
}

// Run executes the full daily workflow. Delivery never affects the exit
// status; an empty URL store surfaces as ErrNoInput.
func (p *Pipeline) Run(ctx context.Context, now time.Time) error {
	if err := p.UpdateHeadlines(ctx, now); err != nil {
		return err
	}
	if err := p.GenerateEpisode(ctx, now); err != nil {
		return err
	}
	return p.Promote(ctx, now)
}

func (p *Pipeline) promoteSocial(ctx context.Context, now time.Time) {
	var titles []string
	if p.archive != nil {
		loaded, err := p.archive.Load()
		if err != nil {
			p.warn("cannot load archived headlines, using fallback message", "error", err)
		} else {
			titles = loaded
		}
	}

	msg := compose.SocialPost(now, titles, p.templates)
	p.info("social post composed", "chars", utf8.RuneCountInString(msg.Body))

	if p.social == nil {
		p.info("social publishing not configured, skipping")
		return
	}

	id, err := p.social.Publish(ctx, msg.Body)
	if err != nil {
		p.errorLog("social post failed", "error", err)
		return
	}
	p.info("social post published", "id", id)
}

func (p *Pipeline) promotePush(ctx context.Context, now time.Time) {
	var topics []string
	if p.topics != nil {
		loaded, err := p.topics.Topics()
		if err != nil {
			p.warn("no timeline topics, using fallback body", "reason", err)
		} else {
			topics = loaded
		}
	}

	msg := compose.PushNotification(now, topics)
	p.info("push notification composed", "heading", msg.Heading)

	if p.push == nil {
		p.info("push delivery not configured, skipping")
		return
	}

	if err := p.push.Send(ctx, msg.Heading, msg.Body); err != nil {
		p.errorLog("push delivery failed", "error", err)
		return
	}
	p.info("push notification sent")
}

func (p *Pipeline) uploadArtifact(ctx context.Context, localPath, timestamp string) {
	key := timestamp + "_" + filepath.Base(localPath)
	url, err := p.artifacts.Upload(ctx, localPath, key)
	if err != nil {
		p.warn("artifact upload failed, continuing", "file", localPath, "error", err)
		return
	}
	p.info("artifact uploaded", "key", key, "url", url)
}

// latestTranscript returns the newest .txt file in the transcript
// directory, or "" when none exists.
func latestTranscript(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var (
		latest     string
		latestTime time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest = filepath.Join(dir, entry.Name())
			latestTime = info.ModTime()
		}
	}

	return latest
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Pipeline) errorLog(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Error(msg, args...)
	}
}
