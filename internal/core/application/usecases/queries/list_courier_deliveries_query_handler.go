package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListCourierDeliveriesQueryHandler retrieves the deliveries assigned to a
// given courier, oldest first so the driver works the queue in order.
type ListCourierDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewListCourierDeliveriesQueryHandler creates a handler for courier worklist queries.
func NewListCourierDeliveriesQueryHandler(db *gorm.DB) ListCourierDeliveriesQueryHandler {
	return ListCourierDeliveriesQueryHandler{db: db}
}

// Handle executes the query for one courier's deliveries.
func (h ListCourierDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListCourierDeliveriesQuery,
) ([]DeliverySummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			courier_id,
			address,
			phone,
			delivery_time,
			created_at
		FROM deliveries
		WHERE courier_id = ?
		ORDER BY created_at
	`, query.CourierID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows)
}
