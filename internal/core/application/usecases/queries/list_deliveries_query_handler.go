package queries

import (
	"context"
	"database/sql"
	"time"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListDeliveriesQueryHandler retrieves delivery summaries from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type ListDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewListDeliveriesQueryHandler creates a handler for delivery listing queries.
func NewListDeliveriesQueryHandler(db *gorm.DB) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{db: db}
}

// Handle executes the query, newest deliveries first.
func (h ListDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveriesQuery,
) ([]DeliverySummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseQuery = `
		SELECT
			id,
			number,
			status,
			courier_id,
			address,
			phone,
			delivery_time,
			created_at
		FROM deliveries`

	var rows *sql.Rows
	var err error
	if filter := query.StatusFilter(); filter != nil {
		rows, err = h.db.WithContext(ctx).Raw(
			baseQuery+` WHERE status = ? ORDER BY created_at DESC`, int(*filter),
		).Rows()
	} else {
		rows, err = h.db.WithContext(ctx).Raw(baseQuery + ` ORDER BY created_at DESC`).Rows()
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// scanSummaries converts summary rows into read models, shared by the listing
// handlers.
func scanSummaries(rows *sql.Rows) ([]DeliverySummary, error) {
	summaries := make([]DeliverySummary, 0)

	for rows.Next() {
		var summary DeliverySummary
		var id uuid.UUID
		var courierID *uuid.UUID
		var status int
		var createdAt time.Time

		if err := rows.Scan(
			&id,
			&summary.Number,
			&status,
			&courierID,
			&summary.Address,
			&summary.Phone,
			&summary.DeliveryTime,
			&createdAt,
		); err != nil {
			return nil, err
		}

		deliveryID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		summary.ID = deliveryID

		if courierID != nil {
			cID, cErr := kernel.UUIDFromBytes((*courierID)[:])
			if cErr != nil {
				return nil, cErr
			}
			summary.CourierID = &cID
		}

		summary.Status = delivery.Status(status)
		summary.CreatedAt = createdAt
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
