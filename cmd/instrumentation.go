package cmd

import (
	"context"
	"errors"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// instrumentedAssigner counts assignment attempts by outcome: "assigned",
// the failure reason, or "error" for failures before assignment started.
type instrumentedAssigner struct {
	next     commands.CourierAssigner
	outcomes *prometheus.CounterVec
}

func (a instrumentedAssigner) Handle(
	ctx context.Context,
	cmd commands.AssignCourierCommand,
) (commands.AssignCourierResult, error) {
	result, err := a.next.Handle(ctx, cmd)

	outcome := "assigned"
	var assignmentErr *commands.AssignmentError
	switch {
	case errors.As(err, &assignmentErr):
		outcome = string(assignmentErr.Reason)
	case err != nil:
		outcome = "error"
	}
	a.outcomes.WithLabelValues(outcome).Inc()

	return result, err
}

// countingNotifier counts created orders and committed transitions. Each of
// them is notified exactly once.
type countingNotifier struct {
	next        ports.OrderNotifier
	created     prometheus.Counter
	transitions *prometheus.CounterVec
}

func newCountingNotifier(next ports.OrderNotifier, m *metrics.Metrics) countingNotifier {
	return countingNotifier{next: next, created: m.OrdersCreated, transitions: m.Transitions}
}

func (n countingNotifier) NewOrder(ctx context.Context, event ports.NewOrderEvent) {
	n.created.Inc()
	n.next.NewOrder(ctx, event)
}

func (n countingNotifier) StatusChanged(ctx context.Context, event ports.StatusChangedEvent) {
	n.transitions.WithLabelValues(event.PreviousStatus.String(), event.Status.String()).Inc()
	n.next.StatusChanged(ctx, event)
}
