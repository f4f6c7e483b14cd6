package services

import (
	"errors"

	"pizzeria/internal/core/domain/model/courier"
)

// ErrCourierNotFound is returned when there is no candidate to choose from.
var ErrCourierNotFound = errors.New("courier not found")

// CourierSelector picks the courier for a dispatched order by greedy
// least-loaded balancing: the candidate with the fewest orders in Dispatched
// or EnRoute wins.
//
// Ties go to the earliest candidate in the given order. Repositories return
// candidates sorted by zone assignment age, so among equally loaded couriers
// the one assigned to the zone longest is chosen.
//
// Example:
//
//	selected, err := services.NewCourierSelector().SelectLeastLoaded(candidates)
//	if errors.Is(err, services.ErrCourierNotFound) {
//	    // nobody is working the zone
//	}
type CourierSelector struct{}

func NewCourierSelector() CourierSelector {
	return CourierSelector{}
}

func (s CourierSelector) SelectLeastLoaded(candidates []*courier.Courier) (*courier.Courier, error) {
	var best *courier.Courier

	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if c.IsLessLoadedThan(best) {
			best = c
		}
	}

	if best == nil {
		return nil, ErrCourierNotFound
	}
	return best, nil
}
