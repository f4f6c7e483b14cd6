package jobs

import (
	"context"
	"errors"
	"log/slog"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DefaultDispatchRetrySchedule runs the retry every 30 seconds.
const DefaultDispatchRetrySchedule = "*/30 * * * * *"

// DefaultDispatchRetryBatch bounds the orders retried per run.
const DefaultDispatchRetryBatch = 50

// UnassignedOrdersFinder lists dispatched orders still waiting for a courier.
type UnassignedOrdersFinder interface {
	Handle(ctx context.Context, query queries.GetUnassignedDispatchedOrdersQuery) ([]queries.UnassignedOrder, error)
}

// RetryReport summarizes one run.
type RetryReport struct {
	Attempted int
	Assigned  int
	Skipped   int
	Failed    int
}

// DispatchRetryJob retries courier assignment for dispatched orders that
// were left without a courier, for example because every courier of the
// zone was busy or none was assigned to it yet.
type DispatchRetryJob struct {
	finder   UnassignedOrdersFinder
	assigner commands.CourierAssigner
	schedule string
	batch    int
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewDispatchRetryJob(
	finder UnassignedOrdersFinder,
	assigner commands.CourierAssigner,
	schedule string,
	batch int,
	logger *slog.Logger,
) *DispatchRetryJob {
	if schedule == "" {
		schedule = DefaultDispatchRetrySchedule
	}
	if batch <= 0 {
		batch = DefaultDispatchRetryBatch
	}
	return &DispatchRetryJob{
		finder:   finder,
		assigner: assigner,
		schedule: schedule,
		batch:    batch,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "dispatch_retry_job"),
	}
}

// Start schedules the job.
func (j *DispatchRetryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch retry job started", "schedule", j.schedule)
	return nil
}

// Stop unschedules the job and waits for a running retry to finish.
func (j *DispatchRetryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Dispatch retry job stopped")
}

// Run performs one retry pass. Expected failures such as an address out of
// coverage or a zone without couriers are not logged as errors; the order
// is simply tried again on the next run.
func (j *DispatchRetryJob) Run(ctx context.Context) RetryReport {
	var report RetryReport

	query, err := queries.NewGetUnassignedDispatchedOrdersQuery(j.batch)
	if err != nil {
		j.logger.ErrorContext(ctx, "Dispatch retry job misconfigured", "error", err)
		return report
	}

	pending, err := j.finder.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Dispatch retry job failed to list orders", "error", err)
		return report
	}

	for _, o := range pending {
		report.Attempted++

		cmd, err := commands.NewAssignCourierCommand(o.ID, o.BranchID)
		if err != nil {
			report.Failed++
			j.logger.ErrorContext(ctx, "Dispatch retry skipped invalid order", "order_id", o.ID.String(), "error", err)
			continue
		}

		result, err := j.assigner.Handle(ctx, cmd)
		if err == nil {
			report.Assigned++
			j.logger.InfoContext(ctx, "Dispatch retry assigned courier",
				"order_id", o.ID.String(), "courier_id", result.CourierID.String())
			continue
		}

		var assignmentErr *commands.AssignmentError
		switch {
		case errors.As(err, &assignmentErr) && assignmentErr.IsExpected():
			report.Skipped++
		case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, errs.ErrConflict):
			report.Skipped++
		default:
			report.Failed++
			j.logger.ErrorContext(ctx, "Dispatch retry failed", "order_id", o.ID.String(), "error", err)
		}
	}

	if report.Attempted > 0 {
		j.logger.InfoContext(ctx, "Dispatch retry finished",
			"attempted", report.Attempted,
			"assigned", report.Assigned,
			"skipped", report.Skipped,
			"failed", report.Failed,
		)
	}
	return report
}
