package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	cartPurgeJob     *CartPurgeJob
	attentionScanJob *AttentionScanJob
}

// NewJobManager creates a job manager over the application's background jobs.
func NewJobManager(cartPurgeJob *CartPurgeJob, attentionScanJob *AttentionScanJob) *JobManager {
	return &JobManager{
		cartPurgeJob:     cartPurgeJob,
		attentionScanJob: attentionScanJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.cartPurgeJob.Start(); err != nil {
		return fmt.Errorf("failed to start cart purge job: %w", err)
	}

	if err := jm.attentionScanJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.cartPurgeJob.Stop()
		return fmt.Errorf("failed to start attention scan job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.cartPurgeJob.Stop()
	jm.attentionScanJob.Stop()
}
