package delivery

import (
	"time"

	"handover/internal/pkg/errs"
)

// Rating bounds for the customer satisfaction score captured at handover.
const (
	MinRating = 1
	MaxRating = 5
)

// Proof is the evidence captured at the verified handover: the customer's
// signature image, a satisfaction rating, and the verification time. The
// signature is an opaque binary payload; the domain only requires presence,
// never interprets its contents.
type Proof struct {
	signature  []byte
	rating     int
	verifiedAt time.Time
}

// NewProof validates and creates handover proof.
// The signature must be non-empty and the rating in [MinRating, MaxRating];
// both are checked before any code comparison happens upstream.
func NewProof(signature []byte, rating int, verifiedAt time.Time) (Proof, error) {
	if len(signature) == 0 {
		return Proof{}, errs.NewValueIsRequiredError("signature")
	}
	if rating < MinRating || rating > MaxRating {
		return Proof{}, errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	if verifiedAt.IsZero() {
		return Proof{}, errs.NewValueIsRequiredError("verifiedAt")
	}

	return Proof{
		signature:  append([]byte(nil), signature...),
		rating:     rating,
		verifiedAt: verifiedAt,
	}, nil
}

// RestoreProof reconstructs proof from persistence.
func RestoreProof(signature []byte, rating int, verifiedAt time.Time) (Proof, error) {
	return NewProof(signature, rating, verifiedAt)
}

// Signature returns a copy of the signature image payload.
func (p Proof) Signature() []byte {
	return append([]byte(nil), p.signature...)
}

// Rating returns the satisfaction rating in [MinRating, MaxRating].
func (p Proof) Rating() int {
	return p.rating
}

// VerifiedAt returns the handover verification time.
func (p Proof) VerifiedAt() time.Time {
	return p.verifiedAt
}

// Validate checks that the proof carries a signature, a bounded rating,
// and a verification time.
func (p Proof) Validate() error {
	_, err := NewProof(p.signature, p.rating, p.verifiedAt)
	return err
}
