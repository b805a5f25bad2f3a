package http

import (
	"time"

	"handover/internal/core/application/usecases/queries"
)

// Error is the uniform error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewDeliveryRequest is the body of POST /api/v1/deliveries.
type NewDeliveryRequest struct {
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	DeliveryTime string `json:"delivery_time"`
	Instructions string `json:"instructions,omitempty"`
	OrderRef     string `json:"order_ref,omitempty"`
}

// DeliveryCreatedResponse confirms a created delivery. The verification code
// is disclosed once here; the creating manager forwards it to the customer.
type DeliveryCreatedResponse struct {
	ID               string `json:"id"`
	Number           string `json:"number"`
	Status           string `json:"status"`
	VerificationCode string `json:"verification_code"`
}

// AssignCourierRequest is the body of POST /api/v1/deliveries/{id}/assign.
type AssignCourierRequest struct {
	CourierID string `json:"courier_id"`
}

// HandoverRequest carries the customer-facing verification input of the
// terminal transition.
type HandoverRequest struct {
	Code      string `json:"code"`
	Signature []byte `json:"signature"`
	Rating    int    `json:"rating"`
}

// TransitionRequest is the body of POST /api/v1/deliveries/{id}/transition.
type TransitionRequest struct {
	Target   string           `json:"target"`
	Note     string           `json:"note,omitempty"`
	Handover *HandoverRequest `json:"handover,omitempty"`
}

// DeliverySummaryResponse is one row of the listing endpoints.
type DeliverySummaryResponse struct {
	ID           string    `json:"id"`
	Number       string    `json:"number"`
	Status       string    `json:"status"`
	CourierID    *string   `json:"courier_id,omitempty"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	DeliveryTime string    `json:"delivery_time"`
	CreatedAt    time.Time `json:"created_at"`
}

// HistoryEntryResponse is one audit-trail row of the details endpoint.
type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
	Note      string    `json:"note,omitempty"`
	ActorRole string    `json:"actor_role"`
}

// ProofResponse is the handover proof of a delivered delivery.
type ProofResponse struct {
	Signature  []byte    `json:"signature"`
	Rating     int       `json:"rating"`
	VerifiedAt time.Time `json:"verified_at"`
}

// DeliveryDetailsResponse is the full read model of one delivery.
type DeliveryDetailsResponse struct {
	ID           string                 `json:"id"`
	Number       string                 `json:"number"`
	Status       string                 `json:"status"`
	CourierID    *string                `json:"courier_id,omitempty"`
	Address      string                 `json:"address"`
	Phone        string                 `json:"phone"`
	DeliveryTime string                 `json:"delivery_time"`
	Instructions string                 `json:"instructions,omitempty"`
	OrderRef     string                 `json:"order_ref,omitempty"`
	History      []HistoryEntryResponse `json:"history"`
	Proof        *ProofResponse         `json:"proof,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`

	// VerificationCode is only populated for manager-tier requesters.
	VerificationCode string `json:"verification_code,omitempty"`
}

// summaryResponse maps a read model row to its response shape.
func summaryResponse(summary queries.DeliverySummary) DeliverySummaryResponse {
	resp := DeliverySummaryResponse{
		ID:           summary.ID.String(),
		Number:       summary.Number,
		Status:       summary.Status.String(),
		Address:      summary.Address,
		Phone:        summary.Phone,
		DeliveryTime: summary.DeliveryTime,
		CreatedAt:    summary.CreatedAt,
	}
	if summary.CourierID != nil {
		id := summary.CourierID.String()
		resp.CourierID = &id
	}
	return resp
}

// detailsResponse maps the full read model to its response shape. The
// verification code is deliberately not exposed on the read side.
func detailsResponse(details queries.DeliveryDetails) DeliveryDetailsResponse {
	resp := DeliveryDetailsResponse{
		ID:           details.ID.String(),
		Number:       details.Number,
		Status:       details.Status.String(),
		Address:      details.Address,
		Phone:        details.Phone,
		DeliveryTime: details.DeliveryTime,
		Instructions: details.Instructions,
		OrderRef:     details.OrderRef,
		History:      make([]HistoryEntryResponse, 0, len(details.History)),
		CreatedAt:    details.CreatedAt,
	}
	if details.CourierID != nil {
		id := details.CourierID.String()
		resp.CourierID = &id
	}
	for _, entry := range details.History {
		resp.History = append(resp.History, HistoryEntryResponse{
			Status:    entry.Status.String(),
			At:        entry.At,
			Note:      entry.Note,
			ActorRole: entry.ActorRole,
		})
	}
	if details.Proof != nil {
		resp.Proof = &ProofResponse{
			Signature:  details.Proof.Signature,
			Rating:     details.Proof.Rating,
			VerifiedAt: details.Proof.VerifiedAt,
		}
	}
	return resp
}
