package queries

import (
	"errors"
	"time"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"
	"handover/internal/pkg/guard"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery retrieves one delivery with its complete status history
// and, once delivered, the handover proof.
type GetDeliveryQuery struct {
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery creates a query for a single delivery.
func NewGetDeliveryQuery(deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}
	return GetDeliveryQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// DeliveryID returns the requested delivery identifier.
func (q GetDeliveryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

var ErrGetDeliveryByNumberQueryIsNotConstructed = errors.New(
	"GetDeliveryByNumberQuery must be created via NewGetDeliveryByNumberQuery constructor",
)

// GetDeliveryByNumberQuery retrieves one delivery by its human-readable
// number.
type GetDeliveryByNumberQuery struct {
	number string

	guard guard.ConstructorGuard
}

// NewGetDeliveryByNumberQuery creates a by-number query.
func NewGetDeliveryByNumberQuery(number string) (GetDeliveryByNumberQuery, error) {
	if err := delivery.ValidateDeliveryNumber(number); err != nil {
		return GetDeliveryByNumberQuery{}, err
	}
	return GetDeliveryByNumberQuery{
		number: number,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryByNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryByNumberQueryIsNotConstructed)
}

// Number returns the requested delivery number.
func (q GetDeliveryByNumberQuery) Number() string {
	return q.number
}

// HistoryItem is the read model of one audit-trail entry.
// Stored order is append order; any reverse-chronological display is a
// presentation concern.
type HistoryItem struct {
	Status    delivery.Status
	At        time.Time
	Note      string
	ActorRole string
}

// ProofItem is the read model of the handover proof.
type ProofItem struct {
	Signature  []byte
	Rating     int
	VerifiedAt time.Time
}

// DeliveryDetails is the full read model of one delivery.
// VerificationCode is included here; restricting its disclosure to authorized
// roles happens at the presentation boundary.
type DeliveryDetails struct {
	ID               kernel.UUID
	Number           string
	Status           delivery.Status
	CourierID        *kernel.UUID
	Address          string
	Phone            string
	DeliveryTime     string
	Instructions     string
	OrderRef         string
	VerificationCode string
	History          []HistoryItem
	Proof            *ProofItem
	CreatedAt        time.Time
}
