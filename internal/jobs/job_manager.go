package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	dispatchRetryJob  *DispatchRetryJob
	zoneCachePurgeJob *ZoneCachePurgeJob
}

func NewJobManager(dispatchRetryJob *DispatchRetryJob, zoneCachePurgeJob *ZoneCachePurgeJob) *JobManager {
	return &JobManager{
		dispatchRetryJob:  dispatchRetryJob,
		zoneCachePurgeJob: zoneCachePurgeJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch retry job: %w", err)
	}

	if err := jm.zoneCachePurgeJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.dispatchRetryJob.Stop()
		return fmt.Errorf("failed to start zone cache purge job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.zoneCachePurgeJob.Stop()
	jm.dispatchRetryJob.Stop()
}
