package delivery

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"handover/internal/pkg/errs"
)

// deliveryNumberPattern matches the human-readable delivery number format,
// e.g. "DEL-20260901-48213".
var deliveryNumberPattern = regexp.MustCompile(`^DEL-\d{8}-\d{5}$`)

// GenerateDeliveryNumber produces a human-readable delivery number for
// display and lookup. The number is immutable after creation; uniqueness is
// enforced by the store.
func GenerateDeliveryNumber(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", fmt.Errorf("generate delivery number: %w", err)
	}
	return fmt.Sprintf("DEL-%s-%05d", now.UTC().Format("20060102"), n.Int64()), nil
}

// ValidateDeliveryNumber checks a delivery number against the canonical format.
func ValidateDeliveryNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("delivery number")
	}
	if !deliveryNumberPattern.MatchString(number) {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery number",
			fmt.Errorf("%q does not match DEL-YYYYMMDD-NNNNN", number),
		)
	}
	return nil
}
