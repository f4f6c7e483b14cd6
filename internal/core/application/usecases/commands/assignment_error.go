package commands

import "fmt"

// AssignmentReason is the stable code of a failed courier assignment.
type AssignmentReason string

const (
	ReasonOutOfCoverage       AssignmentReason = "OUT_OF_COVERAGE"
	ReasonNoCouriersAvailable AssignmentReason = "NO_COURIERS_AVAILABLE"
	ReasonAssignmentError     AssignmentReason = "ASSIGNMENT_ERROR"
)

// AssignmentError reports why no courier was assigned.
type AssignmentError struct {
	Reason AssignmentReason
	Cause  error
}

func newAssignmentError(reason AssignmentReason, cause error) *AssignmentError {
	return &AssignmentError{Reason: reason, Cause: cause}
}

func (e *AssignmentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("courier assignment failed: %s (cause: %v)", e.Reason, e.Cause)
	}
	return fmt.Sprintf("courier assignment failed: %s", e.Reason)
}

func (e *AssignmentError) Unwrap() error {
	return e.Cause
}

// IsExpected reports whether the failure is a normal business outcome, as
// opposed to a fault worth alerting on.
func (e *AssignmentError) IsExpected() bool {
	return e.Reason == ReasonOutOfCoverage || e.Reason == ReasonNoCouriersAvailable
}
