// Package jobs provides scheduled background tasks for the storefront.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance the request path should not carry.
//
// # Available Jobs
//
// 1. CartPurgeJob - Deletes guest cart lines older than the configured TTL
// 2. AttentionScanJob - Flags orders stuck in a non-terminal status and
// products at or below their reorder level
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(cartPurgeJob, attentionScanJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs take standard five-field cron expressions from configuration;
// hourly schedules are the expected default. Neither job is correctness
// critical, a missed run only delays cleanup or detection.
//
// # Error Handling
//
// - Jobs log failures and wait for the next tick, they never crash the process
// - Failed job starts will stop any already running jobs
package jobs
