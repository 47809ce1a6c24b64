package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CartPurgeJob periodically deletes abandoned guest cart lines so stale
// sessions do not accumulate forever. User carts are never purged.
type CartPurgeJob struct {
	handler  commands.PurgeGuestCartsCommandHandler
	guestTTL time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCartPurgeJob creates a job that purges guest lines older than guestTTL
// on the given cron schedule.
func NewCartPurgeJob(
	handler commands.PurgeGuestCartsCommandHandler,
	guestTTL time.Duration,
	schedule string,
	logger *slog.Logger,
) *CartPurgeJob {
	return &CartPurgeJob{
		handler:  handler,
		guestTTL: guestTTL,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "cart_purge_job"),
	}
}

// Start schedules the purge job.
func (j *CartPurgeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewPurgeGuestCartsCommand(j.guestTTL)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Cart purge job misconfigured", "error", cmdErr)
			return
		}

		purged, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Cart purge job failed", "error", handleErr)
			return
		}

		if purged > 0 {
			j.logger.InfoContext(ctx, "Purged abandoned guest cart lines", "count", purged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cart purge job started",
		"schedule", j.schedule, "guest_ttl", j.guestTTL)
	return nil
}

// Stop stops the purge job.
func (j *CartPurgeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Cart purge job stopped")
}
