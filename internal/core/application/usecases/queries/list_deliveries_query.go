package queries

import (
	"errors"
	"time"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"
	"handover/internal/pkg/guard"
)

var ErrListDeliveriesQueryIsNotConstructed = errors.New(
	"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
)

// ListDeliveriesQuery retrieves delivery summaries, optionally filtered by
// status. The filter is a query parameter, never shared selection state.
//
// Example:
//
//	query, _ := NewListDeliveriesQuery(nil)                    // all deliveries
//	pending := delivery.PendingAssignment
//	query, _ = NewListDeliveriesQuery(&pending)                // one status tab
type ListDeliveriesQuery struct {
	statusFilter *delivery.Status

	guard guard.ConstructorGuard
}

// NewListDeliveriesQuery creates a query for delivery summaries.
// A nil filter selects every status.
func NewListDeliveriesQuery(statusFilter *delivery.Status) (ListDeliveriesQuery, error) {
	if statusFilter != nil {
		if err := statusFilter.Validate(); err != nil {
			return ListDeliveriesQuery{}, err
		}
	}
	return ListDeliveriesQuery{
		statusFilter: statusFilter,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

// StatusFilter returns the optional status filter.
func (q ListDeliveriesQuery) StatusFilter() *delivery.Status {
	return q.statusFilter
}

// DeliverySummary is the read model for delivery listings.
type DeliverySummary struct {
	ID           kernel.UUID
	Number       string
	Status       delivery.Status
	CourierID    *kernel.UUID
	Address      string
	Phone        string
	DeliveryTime string
	CreatedAt    time.Time
}
