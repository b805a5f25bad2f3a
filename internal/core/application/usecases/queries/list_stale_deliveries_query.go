package queries

import (
	"errors"
	"time"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"
	"handover/internal/pkg/errs"
	"handover/internal/pkg/guard"
)

var ErrListStaleDeliveriesQueryIsNotConstructed = errors.New(
	"ListStaleDeliveriesQuery must be created via NewListStaleDeliveriesQuery constructor",
)

// ListStaleDeliveriesQuery finds open deliveries whose last status change is
// older than the cutoff. Feeds the reminder job; reads only, never mutates.
type ListStaleDeliveriesQuery struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewListStaleDeliveriesQuery creates a query with the given cutoff.
func NewListStaleDeliveriesQuery(cutoff time.Time) (ListStaleDeliveriesQuery, error) {
	if cutoff.IsZero() {
		return ListStaleDeliveriesQuery{}, errs.NewValueIsRequiredError("cutoff")
	}
	return ListStaleDeliveriesQuery{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListStaleDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListStaleDeliveriesQueryIsNotConstructed)
}

// Cutoff returns the staleness threshold.
func (q ListStaleDeliveriesQuery) Cutoff() time.Time {
	return q.cutoff
}

// StaleDelivery is the read model of an open delivery without recent
// progress.
type StaleDelivery struct {
	ID           kernel.UUID
	Number       string
	Status       delivery.Status
	CourierID    *kernel.UUID
	LastChangeAt time.Time
}
