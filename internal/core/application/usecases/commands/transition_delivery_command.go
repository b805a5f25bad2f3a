package commands

import (
	"errors"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"
	"handover/internal/pkg/guard"
)

var ErrTransitionDeliveryCommandIsNotConstructed = errors.New(
	"TransitionDeliveryCommand must be created via a NewTransitionDeliveryCommand constructor",
)

// HandoverInput carries the verification data required for the terminal
// transition: the code the customer read out, their signature image, and the
// satisfaction rating.
type HandoverInput struct {
	EnteredCode string
	Signature   []byte
	Rating      int
}

// TransitionDeliveryCommand requests a status change on a delivery. For the
// terminal DELIVERED target it must carry a HandoverInput; for every other
// target the input must be absent.
//
// Example (courier accepting a task):
//
//	cmd, err := NewTransitionDeliveryCommand(
//	    deliveryID, delivery.Accepted, courierID, delivery.RoleDriver, "on my way",
//	)
//
// Example (verified handover):
//
//	cmd, err := NewCompleteHandoverCommand(
//	    deliveryID, courierID, delivery.RoleDriver, "",
//	    HandoverInput{EnteredCode: "482913", Signature: png, Rating: 5},
//	)
type TransitionDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID    kernel.UUID
	target        delivery.Status
	requesterID   kernel.UUID
	requesterRole delivery.Role
	note          string
	handover      *HandoverInput

	guard guard.ConstructorGuard
}

// NewTransitionDeliveryCommand creates a command for a non-terminal status
// change. The DELIVERED target is rejected here; use NewCompleteHandoverCommand.
func NewTransitionDeliveryCommand(
	deliveryID kernel.UUID,
	target delivery.Status,
	requesterID kernel.UUID,
	requesterRole delivery.Role,
	note string,
) (TransitionDeliveryCommand, error) {
	cmd := TransitionDeliveryCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setTarget(target),
		cmd.setRequester(requesterID, requesterRole),
	); err != nil {
		return TransitionDeliveryCommand{}, err
	}
	if target == delivery.Delivered {
		return TransitionDeliveryCommand{}, delivery.ErrProofRequired
	}

	return cmd, nil
}

// NewCompleteHandoverCommand creates the terminal transition command carrying
// the customer's verification input. The target is fixed to DELIVERED.
func NewCompleteHandoverCommand(
	deliveryID kernel.UUID,
	requesterID kernel.UUID,
	requesterRole delivery.Role,
	note string,
	input HandoverInput,
) (TransitionDeliveryCommand, error) {
	cmd := TransitionDeliveryCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setTarget(delivery.Delivered),
		cmd.setRequester(requesterID, requesterRole),
	); err != nil {
		return TransitionDeliveryCommand{}, err
	}
	cmd.handover = &HandoverInput{
		EnteredCode: input.EnteredCode,
		Signature:   append([]byte(nil), input.Signature...),
		Rating:      input.Rating,
	}

	return cmd, nil
}

// Validate ensures the command was created through a constructor.
// Returns ErrTransitionDeliveryCommandIsNotConstructed if validation fails.
func (c TransitionDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrTransitionDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the target delivery identifier.
func (c TransitionDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Target returns the requested status.
func (c TransitionDeliveryCommand) Target() delivery.Status {
	return c.target
}

// RequesterID returns the identity of the actor requesting the transition.
func (c TransitionDeliveryCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// RequesterRole returns the role of the actor requesting the transition.
func (c TransitionDeliveryCommand) RequesterRole() delivery.Role {
	return c.requesterRole
}

// Note returns the free-form note to record in the audit trail.
func (c TransitionDeliveryCommand) Note() string {
	return c.note
}

// Handover returns the verification input for terminal transitions, or nil.
func (c TransitionDeliveryCommand) Handover() *HandoverInput {
	if c.handover == nil {
		return nil
	}
	input := HandoverInput{
		EnteredCode: c.handover.EnteredCode,
		Signature:   append([]byte(nil), c.handover.Signature...),
		Rating:      c.handover.Rating,
	}
	return &input
}

func (c *TransitionDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *TransitionDeliveryCommand) setTarget(target delivery.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *TransitionDeliveryCommand) setRequester(id kernel.UUID, role delivery.Role) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := role.Validate(); err != nil {
		return err
	}
	c.requesterID = id
	c.requesterRole = role
	return nil
}
