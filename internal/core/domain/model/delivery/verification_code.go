package delivery

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"

	"handover/internal/pkg/errs"
)

// verificationCodeLength is the fixed length of handover codes.
const verificationCodeLength = 6

// VerificationCode is the one-time code disclosed to the customer channel at
// creation and required to complete the handover. It is a value object:
// generated once, immutable, never regenerated within the delivery lifecycle.
type VerificationCode struct {
	value string
}

// GenerateVerificationCode produces a random 6-digit code using a
// cryptographic source, so codes are not guessable from creation order.
func GenerateVerificationCode() (VerificationCode, error) {
	digits := make([]byte, verificationCodeLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return VerificationCode{}, fmt.Errorf("generate verification code: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return VerificationCode{value: string(digits)}, nil
}

// VerificationCodeFromString restores a code from persistence or accepts one
// supplied by the owning order workflow. The code must be exactly 6
// characters.
func VerificationCodeFromString(s string) (VerificationCode, error) {
	if len(s) != verificationCodeLength {
		return VerificationCode{}, errs.NewValueIsInvalidErrorWithCause(
			"verification code",
			fmt.Errorf("code must be exactly %d characters", verificationCodeLength),
		)
	}
	return VerificationCode{value: s}, nil
}

// String returns the code value. Disclosure is restricted to authorized roles
// at the presentation boundary; the domain itself does not hide it.
func (c VerificationCode) String() string {
	return c.value
}

// Matches compares an entered code against the stored one in constant time.
func (c VerificationCode) Matches(entered string) bool {
	if len(entered) != len(c.value) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.value), []byte(entered)) == 1
}

// Validate checks that the code was properly constructed.
func (c VerificationCode) Validate() error {
	if len(c.value) != verificationCodeLength {
		return errs.NewValueIsRequiredError("verification code")
	}
	return nil
}
