package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kwonth211/podcastify/internal/app"
	"github.com/kwonth211/podcastify/internal/config"
	"github.com/kwonth211/podcastify/internal/logging"
	"github.com/kwonth211/podcastify/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)
	defer application.Close()

	root := &cobra.Command{
		Use:           "podcastify",
		Short:         "Daily news podcast pipeline",
		Long:          "Scrapes the day's top headlines, maintains the podcast URL list,\nand composes budgeted promotional messages for social and push channels.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		stageCmd("update", "Scrape headlines and update the URL store", application.UpdateHeadlines),
		stageCmd("generate", "Generate the podcast episode and upload artifacts", skipOnNoInput(application.GenerateEpisode, logger.Info)),
		stageCmd("promote", "Compose and deliver the promotional messages", application.Promote),
		stageCmd("run", "Run the full daily workflow once", skipOnNoInput(application.Run, logger.Info)),
		scheduleCmd(application),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func stageCmd(use, short string, stage func(context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return stage(cmd.Context())
		},
	}
}

// skipOnNoInput maps the recoverable-skip sentinel to a clean exit: an
// empty URL store means "nothing to do today", not a failure.
func skipOnNoInput(stage func(context.Context) error, notice func(string, ...any)) func(context.Context) error {
	return func(ctx context.Context) error {
		err := stage(ctx)
		if errors.Is(err, usecase.ErrNoInput) {
			notice("nothing to do, exiting cleanly")
			return nil
		}
		return err
	}
}

func scheduleCmd(application *app.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the daily workflow on the configured cron schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched := application.Scheduler()
			if err := sched.Start(ctx); err != nil {
				return err
			}

			<-ctx.Done()

			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return sched.Stop(stopCtx)
		},
	}
}
