package order

import (
	"fmt"
	"slices"
	"strings"

	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Paid ──> Preparing ──> Dispatched ──> EnRoute ──> Delivered
//	 │           │             │             │
//	 └───────────┴─────────────┴─────────────┴──> Cancelled
//
// Who may perform a transition depends on the actor's role; see Transition.
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Paid is the initial status: payment is settled before the order exists.
	Paid

	// Preparing means the kitchen accepted the order.
	Preparing

	// Dispatched means the order left the kitchen and is waiting for or
	// assigned to a courier. Entering it triggers courier assignment.
	Dispatched

	// EnRoute means the assigned courier picked the order up.
	EnRoute

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal and reachable from every non-terminal status.
	Cancelled
)

// Wire literals. Exactly one spelling per status is accepted after normalization.
var statusLiterals = map[Status]string{
	Paid:       "PAID",
	Preparing:  "PREPARING",
	Dispatched: "DISPATCHED",
	EnRoute:    "EN_ROUTE",
	Delivered:  "DELIVERED",
	Cancelled:  "CANCELLED",
}

// transitions lists, per role, the legal successors of each status.
// Cancellation is added for restaurant staff in allowedFor.
var transitions = map[actor.Role]map[Status][]Status{
	actor.Restaurant: {
		Paid:      {Preparing},
		Preparing: {Dispatched},
	},
	actor.Delivery: {
		Dispatched: {EnRoute},
		EnRoute:    {Delivered},
	},
}

// ParseStatus normalizes an inbound literal: surrounding blanks are trimmed,
// letters upper-cased, and inner spaces or hyphens become underscores, so
// "en route" and "En-Route" both parse as EnRoute. Anything that does not
// then match a wire literal is a validation error.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.Join(strings.FieldsFunc(normalized, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	}), "_")

	for status, literal := range statusLiterals {
		if literal == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not one of %s", s, strings.Join(wireLiterals(), ", ")),
	)
}

// Validate rejects Unknown and out-of-range values, e.g. from a corrupted row.
func (s Status) Validate() error {
	if _, ok := statusLiterals[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire literal, or "UNKNOWN".
func (s Status) String() string {
	if literal, ok := statusLiterals[s]; ok {
		return literal
	}
	return "UNKNOWN"
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActiveDelivery reports whether the status counts toward courier workload.
func (s Status) IsActiveDelivery() bool {
	return s == Dispatched || s == EnRoute
}

// AllowedFor returns the statuses the given role may move s to, in lifecycle order.
func (s Status) AllowedFor(role actor.Role) []Status {
	allowed := slices.Clone(transitions[role][s])
	if role == actor.Restaurant && !s.IsTerminal() && s != Unknown {
		allowed = append(allowed, Cancelled)
	}
	return allowed
}

// Transition validates that role may move s to next and returns next.
// The error names the current status, the requested one and the allowed set.
func (s Status) Transition(role actor.Role, next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	allowed := s.AllowedFor(role)
	if slices.Contains(allowed, next) {
		return next, nil
	}

	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		names = append(names, a.String())
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%s cannot move order from %s to %s; allowed: [%s]",
			role, s, next, strings.Join(names, ", ")),
	)
}

func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	out := make([]Status, 0, len(statusLiterals))
	for st := Paid; st <= Cancelled; st++ {
		out = append(out, st)
	}
	return out
}

func wireLiterals() []string {
	out := make([]string, 0, len(statusLiterals))
	for _, st := range AllStatuses() {
		out = append(out, statusLiterals[st])
	}
	return out
}
