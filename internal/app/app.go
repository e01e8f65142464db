package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/kwonth211/podcastify/internal/compose"
	"github.com/kwonth211/podcastify/internal/config"
	"github.com/kwonth211/podcastify/internal/infrastructure/browser"
	"github.com/kwonth211/podcastify/internal/infrastructure/objectstore"
	"github.com/kwonth211/podcastify/internal/infrastructure/parser"
	"github.com/kwonth211/podcastify/internal/infrastructure/podcast"
	"github.com/kwonth211/podcastify/internal/infrastructure/push"
	"github.com/kwonth211/podcastify/internal/infrastructure/scheduler"
	"github.com/kwonth211/podcastify/internal/infrastructure/social"
	"github.com/kwonth211/podcastify/internal/infrastructure/storage"
	"github.com/kwonth211/podcastify/internal/logging"
	"github.com/kwonth211/podcastify/internal/ports"
	"github.com/kwonth211/podcastify/internal/timeline"
	"github.com/kwonth211/podcastify/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	renderer ports.PageRenderer
}

// New builds a runnable application instance. Delivery adapters are only
// wired when their credentials are configured; the pipeline skips missing
// channels.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	renderer := browser.NewFetcher(cfg.Fetcher)
	extractor := parser.NewHeadlineParser(cfg.Site, baseLogger.With("component", "extractor"))
	urlStore := storage.NewURLStore(cfg.Files.URLFile, baseLogger.With("component", "urlstore"))
	archive := storage.NewHeadlineArchive(cfg.Files.HeadlineFile, baseLogger.With("component", "archive"))
	topics := timeline.NewLoader(cfg.Files.TranscriptDir, baseLogger.With("component", "timeline"))
	generator := podcast.NewClient(cfg.Generator)

	var artifacts ports.ArtifactStore
	if cfg.Storage.Configured() {
		artifacts = objectstore.NewR2Store(cfg.Storage, baseLogger.With("component", "objectstore"))
	} else {
		baseLogger.Info("object storage credentials not set, uploads disabled")
	}

	var socialPublisher ports.SocialPublisher
	if cfg.Social.Configured() {
		socialPublisher = social.NewTwitterPublisher(cfg.Social)
	} else {
		baseLogger.Info("social credentials not set, posting disabled")
	}

	var pushSender ports.PushSender
	if cfg.Push.Configured() {
		pushSender = push.NewOneSignalSender(cfg.Push)
	} else {
		baseLogger.Info("push credentials not set, notifications disabled")
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Renderer:      renderer,
		Extractor:     extractor,
		URLStore:      urlStore,
		Archive:       archive,
		Topics:        topics,
		Generator:     generator,
		Artifacts:     artifacts,
		Social:        socialPublisher,
		Push:          pushSender,
		SectionURL:    cfg.Site.SectionURL,
		TranscriptDir: cfg.Files.TranscriptDir,
		Templates: compose.Templates{
			SiteURL:  cfg.Compose.SiteURL,
			Hashtags: cfg.Compose.Hashtags,
		},
		Logger: baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline, renderer: renderer}
}

// UpdateHeadlines runs the headline acquisition stage.
func (a *Application) UpdateHeadlines(ctx context.Context) error {
	return a.pipeline.UpdateHeadlines(ctx, a.now())
}

// GenerateEpisode runs podcast generation and artifact upload.
func (a *Application) GenerateEpisode(ctx context.Context) error {
	return a.pipeline.GenerateEpisode(ctx, a.now())
}

// Promote composes and delivers the promotional messages.
func (a *Application) Promote(ctx context.Context) error {
	return a.pipeline.Promote(ctx, a.now())
}

// Run performs the full daily workflow once.
func (a *Application) Run(ctx context.Context) error {
	return a.pipeline.Run(ctx, a.now())
}

// Scheduler returns the recurring-run driver for the daily workflow.
func (a *Application) Scheduler() *usecase.Scheduler {
	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location())
	return usecase.NewScheduler(driver, a.pipeline)
}

// Close releases the browser resource.
func (a *Application) Close() {
	if a.renderer != nil {
		a.renderer.Close()
	}
}

func (a *Application) now() time.Time {
	return time.Now().In(a.cfg.Scheduler.Location())
}
