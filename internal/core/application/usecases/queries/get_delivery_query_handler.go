package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"
	"handover/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryQueryHandler retrieves one delivery with its full audit trail.
// Reads the delivery row and its history rows directly; history comes back in
// stored append order (monotonic per-delivery sequence).
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueryHandler creates a handler for single-delivery queries.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when the delivery
// does not exist.
func (h GetDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQuery,
) (DeliveryDetails, error) {
	if err := query.Validate(); err != nil {
		return DeliveryDetails{}, err
	}

	details, err := h.loadDelivery(ctx, "id = ?", query.DeliveryID().Bytes(), query.DeliveryID().String())
	if err != nil {
		return DeliveryDetails{}, err
	}

	history, err := h.loadHistory(ctx, details.ID)
	if err != nil {
		return DeliveryDetails{}, err
	}
	details.History = history

	return details, nil
}

// HandleByNumber executes a by-number lookup with the same read model.
func (h GetDeliveryQueryHandler) HandleByNumber(
	ctx context.Context,
	query GetDeliveryByNumberQuery,
) (DeliveryDetails, error) {
	if err := query.Validate(); err != nil {
		return DeliveryDetails{}, err
	}

	details, err := h.loadDelivery(ctx, "number = ?", query.Number(), query.Number())
	if err != nil {
		return DeliveryDetails{}, err
	}

	history, err := h.loadHistory(ctx, details.ID)
	if err != nil {
		return DeliveryDetails{}, err
	}
	details.History = history

	return details, nil
}

func (h GetDeliveryQueryHandler) loadDelivery(
	ctx context.Context,
	where string,
	arg any,
	lookupKey string,
) (DeliveryDetails, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			courier_id,
			address,
			phone,
			delivery_time,
			instructions,
			order_ref,
			verification_code,
			proof_signature,
			proof_rating,
			proof_verified_at,
			created_at
		FROM deliveries
		WHERE `+where+`
	`, arg).Row()

	var details DeliveryDetails
	var rowID uuid.UUID
	var courierID *uuid.UUID
	var status int
	var proofSignature []byte
	var proofRating *int
	var proofVerifiedAt *time.Time

	err := row.Scan(
		&rowID,
		&details.Number,
		&status,
		&courierID,
		&details.Address,
		&details.Phone,
		&details.DeliveryTime,
		&details.Instructions,
		&details.OrderRef,
		&details.VerificationCode,
		&proofSignature,
		&proofRating,
		&proofVerifiedAt,
		&details.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return DeliveryDetails{}, errs.NewObjectNotFoundError("delivery", lookupKey)
	}
	if err != nil {
		return DeliveryDetails{}, err
	}

	deliveryID, err := kernel.UUIDFromBytes(rowID[:])
	if err != nil {
		return DeliveryDetails{}, err
	}
	details.ID = deliveryID

	if courierID != nil {
		cID, cErr := kernel.UUIDFromBytes((*courierID)[:])
		if cErr != nil {
			return DeliveryDetails{}, cErr
		}
		details.CourierID = &cID
	}

	details.Status = delivery.Status(status)

	if proofRating != nil && proofVerifiedAt != nil {
		details.Proof = &ProofItem{
			Signature:  proofSignature,
			Rating:     *proofRating,
			VerifiedAt: *proofVerifiedAt,
		}
	}

	return details, nil
}

func (h GetDeliveryQueryHandler) loadHistory(ctx context.Context, id kernel.UUID) ([]HistoryItem, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			at,
			note,
			actor_role
		FROM delivery_status_history
		WHERE delivery_id = ?
		ORDER BY seq
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]HistoryItem, 0)
	for rows.Next() {
		var item HistoryItem
		var status int

		if err = rows.Scan(&status, &item.At, &item.Note, &item.ActorRole); err != nil {
			return nil, err
		}

		item.Status = delivery.Status(status)
		history = append(history, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
