package delivery

import (
	"fmt"
	"time"

	"handover/internal/pkg/errs"
)

// Symbolic delivery-time tokens accepted alongside absolute timestamps.
const (
	DeliveryTimeNow      = "now"
	DeliveryTimeTomorrow = "tomorrow"
)

// DeliveryTime captures when the customer expects the handover: either a
// symbolic value ("now", "tomorrow") or an absolute RFC 3339 timestamp. The
// core never schedules on it; it is carried verbatim for the courier and the
// presentation layer.
type DeliveryTime struct {
	raw string
}

// NewDeliveryTime validates and wraps a delivery-time value.
func NewDeliveryTime(raw string) (DeliveryTime, error) {
	if raw == "" {
		return DeliveryTime{}, errs.NewValueIsRequiredError("delivery time")
	}
	if raw == DeliveryTimeNow || raw == DeliveryTimeTomorrow {
		return DeliveryTime{raw: raw}, nil
	}
	if _, err := time.Parse(time.RFC3339, raw); err != nil {
		return DeliveryTime{}, errs.NewValueIsInvalidErrorWithCause(
			"delivery time",
			fmt.Errorf("%q is neither a symbolic value nor an RFC 3339 timestamp", raw),
		)
	}
	return DeliveryTime{raw: raw}, nil
}

// String returns the raw delivery-time value.
func (t DeliveryTime) String() string {
	return t.raw
}

// IsSymbolic reports whether the value is one of the symbolic tokens rather
// than an absolute timestamp.
func (t DeliveryTime) IsSymbolic() bool {
	return t.raw == DeliveryTimeNow || t.raw == DeliveryTimeTomorrow
}

// Validate checks that the delivery time was properly constructed.
func (t DeliveryTime) Validate() error {
	_, err := NewDeliveryTime(t.raw)
	return err
}
