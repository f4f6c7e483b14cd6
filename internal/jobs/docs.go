// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds precision):
//
//  1. DispatchRetryJob retries courier assignment for DISPATCHED orders that
//     have no courier yet. Default schedule: every 30 seconds.
//  2. ZoneCachePurgeJob evicts expired entries from the zone cache.
//     Default schedule: every minute.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewDispatchRetryJob(finder, assigner, cfg.DispatchRetrySchedule, 0, logger),
//		jobs.NewZoneCachePurgeJob(zoneCache, cfg.ZoneCachePurgeSchedule, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The retry job ignores expected business failures (out of coverage, no couriers)
// - Orders that vanished or changed concurrently are skipped until the next run
// - A failed job start stops the jobs already running
package jobs
