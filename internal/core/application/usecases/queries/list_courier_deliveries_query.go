package queries

import (
	"errors"

	"handover/internal/core/domain/model/kernel"
	"handover/internal/pkg/guard"
)

var ErrListCourierDeliveriesQueryIsNotConstructed = errors.New(
	"ListCourierDeliveriesQuery must be created via NewListCourierDeliveriesQuery constructor",
)

// ListCourierDeliveriesQuery retrieves the deliveries assigned to one courier,
// the working list a driver sees.
type ListCourierDeliveriesQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListCourierDeliveriesQuery creates a query for a courier's deliveries.
func NewListCourierDeliveriesQuery(courierID kernel.UUID) (ListCourierDeliveriesQuery, error) {
	if err := courierID.Validate(); err != nil {
		return ListCourierDeliveriesQuery{}, err
	}
	return ListCourierDeliveriesQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListCourierDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListCourierDeliveriesQueryIsNotConstructed)
}

// CourierID returns the courier whose deliveries are listed.
func (q ListCourierDeliveriesQuery) CourierID() kernel.UUID {
	return q.courierID
}
