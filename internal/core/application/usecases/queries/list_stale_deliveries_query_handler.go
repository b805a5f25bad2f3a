package queries

import (
	"context"
	"time"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListStaleDeliveriesQueryHandler retrieves open deliveries without recent
// progress, oldest first.
type ListStaleDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewListStaleDeliveriesQueryHandler creates a handler for staleness queries.
func NewListStaleDeliveriesQueryHandler(db *gorm.DB) ListStaleDeliveriesQueryHandler {
	return ListStaleDeliveriesQueryHandler{db: db}
}

// Handle executes the query. A delivery is stale when it is not yet delivered
// and its most recent history entry predates the cutoff.
func (h ListStaleDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListStaleDeliveriesQuery,
) ([]StaleDelivery, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.number,
			d.status,
			d.courier_id,
			h.last_at
		FROM deliveries d
		JOIN (
			SELECT delivery_id, MAX(at) AS last_at
			FROM delivery_status_history
			GROUP BY delivery_id
		) h ON h.delivery_id = d.id
		WHERE d.status <> ? AND h.last_at < ?
		ORDER BY h.last_at
	`, int(delivery.Delivered), query.Cutoff()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stale := make([]StaleDelivery, 0)
	for rows.Next() {
		var item StaleDelivery
		var id uuid.UUID
		var courierID *uuid.UUID
		var status int
		var lastAt time.Time

		if err = rows.Scan(&id, &item.Number, &status, &courierID, &lastAt); err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = deliveryID

		if courierID != nil {
			cID, cErr := kernel.UUIDFromBytes((*courierID)[:])
			if cErr != nil {
				return nil, cErr
			}
			item.CourierID = &cID
		}

		item.Status = delivery.Status(status)
		item.LastChangeAt = lastAt
		stale = append(stale, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stale, nil
}
