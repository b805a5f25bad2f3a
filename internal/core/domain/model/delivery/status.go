package delivery

import (
	"fmt"

	"handover/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a forward-only state machine with a single source-of-truth
// transition table; once a delivery advances there is no path back.
//
// State transitions:
//
//	PendingAssignment ──> Assigned ──> Accepted ──┬──> OutForDelivery ──> Arrived ──> Delivered
//	                                              │            ▲
//	                                              └──> InPreparation
//
// InPreparation is optional and may be skipped. Delivered is terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingAssignment is the initial status of a freshly created delivery.
	// Deliveries in this status are waiting for a manager to assign a courier.
	PendingAssignment

	// Assigned indicates a courier has been bound to the delivery.
	Assigned

	// Accepted indicates the assigned courier has acknowledged the task.
	Accepted

	// InPreparation indicates the package is being prepared for dispatch.
	// This stage is optional and may be skipped.
	InPreparation

	// OutForDelivery indicates the courier is en route to the customer.
	OutForDelivery

	// Arrived indicates the courier reached the delivery address and is
	// waiting for the customer handover.
	Arrived

	// Delivered is the terminal status, reachable only through a verified
	// handover. No further transitions are allowed.
	Delivered
)

// Wire tokens are the canonical status strings exchanged with external
// callers. They are opaque tokens, not display text.
func getStatusTokens() map[Status]string {
	return map[Status]string{
		Unknown:           "UNKNOWN",
		PendingAssignment: "PENDING_ASSIGNMENT",
		Assigned:          "ASSIGNED",
		Accepted:          "ACCEPTED",
		InPreparation:     "IN_PREPARATION",
		OutForDelivery:    "OUT_FOR_DELIVERY",
		Arrived:           "ARRIVED",
		Delivered:         "DELIVERED",
	}
}

func getValidStatusTokens() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingAssignment: "PENDING_ASSIGNMENT",
		Assigned:          "ASSIGNED",
		Accepted:          "ACCEPTED",
		InPreparation:     "IN_PREPARATION",
		OutForDelivery:    "OUT_FOR_DELIVERY",
		Arrived:           "ARRIVED",
		Delivered:         "DELIVERED",
	}
}

// StatusFromToken parses a canonical wire token into a Status.
// Returns an error for unrecognized tokens.
func StatusFromToken(token string) (Status, error) {
	for status, t := range getValidStatusTokens() {
		if t == token {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a known status token", token),
	)
}

// Validate checks if the Status value is one of the enumerated states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusTokens()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical wire token of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if token, ok := getStatusTokens()[s]; ok {
		return token
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// Gate identifies who may request a given transition.
type Gate int

const (
	// GateManager restricts a transition to manager-tier requesters.
	GateManager Gate = iota + 1

	// GateDriver restricts a transition to the courier assigned to the delivery.
	GateDriver

	// GateDriverOrManager allows either the assigned courier or a manager-tier requester.
	GateDriverOrManager
)

// transitionGates is the single source of truth for transition legality and
// the role gate attached to each legal edge.
func transitionGates() map[Status]map[Status]Gate {
	return map[Status]map[Status]Gate{
		PendingAssignment: {
			Assigned: GateManager,
		},
		Assigned: {
			Accepted: GateDriver,
		},
		Accepted: {
			InPreparation:  GateDriverOrManager,
			OutForDelivery: GateDriver,
		},
		InPreparation: {
			OutForDelivery: GateDriver,
		},
		OutForDelivery: {
			Arrived: GateDriver,
		},
		Arrived: {
			Delivered: GateDriver,
		},
	}
}

// GateFor returns the role gate of the transition from s to target.
// Returns ErrIllegalTransition when the edge is not in the transition table,
// which covers out-of-order calls, double submits, and stale-client retries
// after the state already advanced.
func (s Status) GateFor(target Status) (Gate, error) {
	if targets, ok := transitionGates()[s]; ok {
		if gate, ok := targets[target]; ok {
			return gate, nil
		}
	}
	return 0, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s, target)
}

// CanTransitionTo reports whether the edge from s to target exists in the
// transition table, without evaluating the role gate.
func (s Status) CanTransitionTo(target Status) bool {
	_, err := s.GateFor(target)
	return err == nil
}
