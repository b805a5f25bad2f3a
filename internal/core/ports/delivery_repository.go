package ports

import (
	"context"
	"errors"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"
)

// ErrConcurrentModification is returned by Update when the optimistic version
// check fails because another writer committed first. Callers re-read the
// record and translate the conflict into the appropriate domain error
// (AlreadyAssigned for assignment races, IllegalTransition for stale
// transition retries).
var ErrConcurrentModification = errors.New("delivery was modified concurrently")

// DeliveryRepository defines the persistence contract for delivery aggregates.
// All writes are serialized per record through an optimistic version check;
// reads always return the aggregate with its complete status history.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate, including its creation history
	// entry. The delivery number must be unique in the store.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery using a compare-and-swap
	// on the aggregate version. History rows are only ever inserted, never
	// rewritten. Returns ErrConcurrentModification when another writer won.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery by its unique identifier with full history.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByNumber retrieves a delivery by its human-readable number.
	GetByNumber(ctx context.Context, number string) (*delivery.Delivery, error)
}
