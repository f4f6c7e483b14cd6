package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultZoneCachePurgeSchedule runs the purge every minute.
const DefaultZoneCachePurgeSchedule = "0 * * * * *"

// Purger evicts expired cache entries and reports how many were removed.
type Purger interface {
	PurgeExpired() int
}

// ZoneCachePurgeJob evicts expired zone lists so branches that stopped
// ordering do not keep memory forever.
type ZoneCachePurgeJob struct {
	cache    Purger
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewZoneCachePurgeJob(cache Purger, schedule string, logger *slog.Logger) *ZoneCachePurgeJob {
	if schedule == "" {
		schedule = DefaultZoneCachePurgeSchedule
	}
	return &ZoneCachePurgeJob{
		cache:    cache,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "zone_cache_purge_job"),
	}
}

func (j *ZoneCachePurgeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Zone cache purge job started", "schedule", j.schedule)
	return nil
}

func (j *ZoneCachePurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Zone cache purge job stopped")
}

// Run purges once and returns the number of evicted entries.
func (j *ZoneCachePurgeJob) Run(ctx context.Context) int {
	n := j.cache.PurgeExpired()
	if n > 0 {
		j.logger.DebugContext(ctx, "Zone cache purged", "evicted", n)
	}
	return n
}
