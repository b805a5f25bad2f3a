package delivery

import "errors"

// Domain error taxonomy. All of these are recoverable, typed results that
// callers classify with errors.Is; none are fatal to the process.
var (
	// ErrIllegalTransition is returned when a requested transition is not in
	// the legal-transition table for the delivery's current status.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrForbidden is returned when the requester's role or identity does not
	// satisfy the gate of the requested operation.
	ErrForbidden = errors.New("requester is not allowed to perform this operation")

	// ErrAlreadyAssigned is returned when assignment is attempted on a
	// delivery that already has a courier. The existing assignment is never
	// overwritten.
	ErrAlreadyAssigned = errors.New("delivery already has an assigned courier")

	// ErrVerificationFailed is returned when the entered handover code does
	// not match the delivery's verification code. The delivery is left
	// entirely unchanged.
	ErrVerificationFailed = errors.New("handover verification failed")

	// ErrCourierUnavailable is returned when the courier chosen for
	// assignment is not an active, delivery-capable account.
	ErrCourierUnavailable = errors.New("courier is not available for deliveries")
)
