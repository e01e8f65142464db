package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kwonth211/podcastify/internal/ports"
)

// CronScheduler runs the daily pipeline on a cron expression in the
// configured timezone.
type CronScheduler struct {
	spec     string
	location *time.Location
	cron     *cron.Cron
	entry    cron.EntryID
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler from a cron expression and location.
func NewCronScheduler(spec string, location *time.Location) *CronScheduler {
	if location == nil {
		location = time.UTC
	}
	return &CronScheduler{
		spec:     spec,
		location: location,
		cron:     cron.New(cron.WithLocation(location)),
	}
}

// Start registers the job and begins the cron loop. The loop stops when the
// context is cancelled.
func (c *CronScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if c.entry != 0 {
		return nil
	}

	entry, err := c.cron.AddFunc(c.spec, func() {
		job(time.Now().In(c.location))
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", c.spec, err)
	}
	c.entry = entry

	c.cron.Start()
	go func() {
		<-ctx.Done()
		c.cron.Stop()
	}()

	return nil
}

// Stop halts the cron loop, waiting for a running job up to the context
// deadline.
func (c *CronScheduler) Stop(ctx context.Context) error {
	done := c.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
