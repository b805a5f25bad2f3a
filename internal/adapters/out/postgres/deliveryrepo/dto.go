// Package deliveryrepo provides data transfer objects and mapping functions for delivery persistence.
// This package implements the repository pattern for the delivery aggregate, handling
// the conversion between domain entities and database representations. History rows
// are append-only: they are inserted alongside the aggregate and never rewritten.
package deliveryrepo

import (
	"time"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// The Version column backs the optimistic concurrency check in Update.
type DeliveryDTO struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Number           string       `gorm:"type:varchar(32);not null;uniqueIndex"`
	Status           int          `gorm:"type:int;not null"`
	CourierID        *uuid.UUID   `gorm:"type:uuid;index"`
	Address          string       `gorm:"type:varchar(512);not null"`
	Phone            string       `gorm:"type:varchar(64);not null"`
	DeliveryTime     string       `gorm:"type:varchar(64);not null"`
	Instructions     string       `gorm:"type:text"`
	OrderRef         string       `gorm:"type:varchar(255)"`
	VerificationCode string       `gorm:"type:varchar(16);not null"`
	ProofSignature   []byte       `gorm:"type:bytea"`
	ProofRating      *int         `gorm:"type:int"`
	ProofVerifiedAt  *time.Time   `gorm:"type:timestamptz"`
	CreatedAt        time.Time    `gorm:"type:timestamptz;not null"`
	Version          int          `gorm:"type:int;not null"`
	History          []HistoryDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for delivery entities.
// Overrides GORM's default naming convention to use "deliveries" instead of "delivery_dtos".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// HistoryDTO represents one audit-trail row. The per-delivery sequence number
// preserves append order and makes the row identity stable.
type HistoryDTO struct {
	DeliveryID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"type:int;primaryKey"`
	Status     int       `gorm:"type:int;not null"`
	At         time.Time `gorm:"type:timestamptz;not null"`
	Note       string    `gorm:"type:text"`
	ActorRole  string    `gorm:"type:varchar(16);not null"`
}

// TableName specifies the database table name for history rows.
func (HistoryDTO) TableName() string {
	return "delivery_status_history"
}

// fromDomain converts a delivery domain aggregate to its database representation.
// Maps the full aggregate including every history entry and the optional proof.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	deliveryID := aggregate.ID().Bytes()

	var courierID *uuid.UUID
	if aggregate.Courier() != nil {
		raw := aggregate.Courier().Bytes()
		courierID = &raw
	}

	history := make([]HistoryDTO, 0, len(aggregate.History()))
	for i, entry := range aggregate.History() {
		history = append(history, HistoryDTO{
			DeliveryID: deliveryID,
			Seq:        i + 1,
			Status:     int(entry.Status()),
			At:         entry.At(),
			Note:       entry.Note(),
			ActorRole:  entry.ActorRole().String(),
		})
	}

	dto := DeliveryDTO{
		ID:               deliveryID,
		Number:           aggregate.Number(),
		Status:           int(aggregate.Status()),
		CourierID:        courierID,
		Address:          aggregate.Address(),
		Phone:            aggregate.Phone(),
		DeliveryTime:     aggregate.DeliveryTime().String(),
		Instructions:     aggregate.Instructions(),
		OrderRef:         aggregate.OrderRef(),
		VerificationCode: aggregate.VerificationCode().String(),
		CreatedAt:        aggregate.CreatedAt(),
		Version:          aggregate.Version(),
		History:          history,
	}

	if proof := aggregate.Proof(); proof != nil {
		signature := proof.Signature()
		rating := proof.Rating()
		verifiedAt := proof.VerifiedAt()
		dto.ProofSignature = signature
		dto.ProofRating = &rating
		dto.ProofVerifiedAt = &verifiedAt
	}

	return dto
}

// toDomain converts a database DTO to a delivery domain aggregate.
// Reconstructs the complete aggregate including history and proof using RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, cErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if cErr != nil {
			return nil, cErr
		}
		courierID = &cID
	}

	deliveryTime, err := delivery.NewDeliveryTime(dto.DeliveryTime)
	if err != nil {
		return nil, err
	}

	code, err := delivery.VerificationCodeFromString(dto.VerificationCode)
	if err != nil {
		return nil, err
	}

	history := make([]delivery.HistoryEntry, 0, len(dto.History))
	for _, row := range dto.History {
		role, roleErr := delivery.RoleFromToken(row.ActorRole)
		if roleErr != nil {
			return nil, roleErr
		}

		entry, entryErr := delivery.RestoreHistoryEntry(
			delivery.Status(row.Status), row.At, row.Note, role,
		)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	var proof *delivery.Proof
	if dto.ProofRating != nil && dto.ProofVerifiedAt != nil {
		p, proofErr := delivery.RestoreProof(dto.ProofSignature, *dto.ProofRating, *dto.ProofVerifiedAt)
		if proofErr != nil {
			return nil, proofErr
		}
		proof = &p
	}

	return delivery.RestoreDelivery(
		id,
		dto.Number,
		delivery.Status(dto.Status),
		courierID,
		dto.Address,
		dto.Phone,
		deliveryTime,
		dto.Instructions,
		dto.OrderRef,
		code,
		history,
		proof,
		dto.CreatedAt,
		dto.Version,
	)
}
