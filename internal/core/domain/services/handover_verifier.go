package services

import (
	"fmt"
	"time"

	"handover/internal/core/domain/model/delivery"
)

// HandoverVerifier is the domain service gating the terminal status
// transition. It checks the customer-entered one-time code against the code
// stored on the delivery and, on success, produces the proof the aggregate
// persists atomically with the Delivered write.
//
// Input shape is validated before any code comparison: an out-of-range rating
// or an empty signature never reaches the comparison at all. A failed
// verification leaves the delivery entirely unchanged; the attempt is not part
// of the durable history.
//
// Example usage:
//
//	verifier := services.NewHandoverVerifier()
//	proof, err := verifier.Verify(record, enteredCode, signature, rating, time.Now())
//	if errors.Is(err, delivery.ErrVerificationFailed) {
//	    // wrong code, prompt the customer to re-enter
//	    return
//	}
//	if err != nil {
//	    // malformed rating or signature
//	    return
//	}
//	// proof approved, complete the handover
type HandoverVerifier struct{}

// NewHandoverVerifier creates a new HandoverVerifier instance.
func NewHandoverVerifier() HandoverVerifier {
	return HandoverVerifier{}
}

// Verify validates the handover input for a delivery and returns the approved
// proof.
//
// Validation order:
//  1. the delivery aggregate itself must be valid
//  2. signature presence and rating bounds (InvalidInput class errors)
//  3. constant-time comparison of the entered code against the stored code
//
// Returns delivery.ErrVerificationFailed on a code mismatch. The verifier
// performs no mutation; the caller persists the proof together with the
// Delivered status.
func (v HandoverVerifier) Verify(
	record *delivery.Delivery,
	enteredCode string,
	signature []byte,
	rating int,
	now time.Time,
) (delivery.Proof, error) {
	if err := record.Validate(); err != nil {
		return delivery.Proof{}, err
	}

	// Builds the proof first so malformed input is rejected before the code
	// is ever compared.
	proof, err := delivery.NewProof(signature, rating, now)
	if err != nil {
		return delivery.Proof{}, err
	}

	if !record.VerificationCode().Matches(enteredCode) {
		return delivery.Proof{}, fmt.Errorf("%w: delivery %s", delivery.ErrVerificationFailed, record.ID())
	}

	return proof, nil
}
