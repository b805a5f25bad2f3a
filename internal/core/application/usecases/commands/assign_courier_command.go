package commands

import (
	"errors"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"
	"handover/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand binds a courier to a pending delivery. This is the
// assignment-arbitration operation: at most one assignment ever succeeds per
// delivery, and the courier must resolve to an active, delivery-capable
// account in the personnel directory.
//
// Example:
//
//	cmd, err := NewAssignCourierCommand(deliveryID, courierID, delivery.RoleManager)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, delivery.ErrAlreadyAssigned):
//	    // another manager won the race; refresh and move on
//	case errors.Is(err, delivery.ErrCourierUnavailable):
//	    // pick a different courier
//	}
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	deliveryID    kernel.UUID
	courierID     kernel.UUID
	requesterRole delivery.Role

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to assign a courier to a delivery.
func NewAssignCourierCommand(
	deliveryID kernel.UUID,
	courierID kernel.UUID,
	requesterRole delivery.Role,
) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setCourierID(courierID),
		cmd.setRequesterRole(requesterRole),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignCourierCommandIsNotConstructed if validation fails.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// DeliveryID returns the target delivery identifier.
func (c AssignCourierCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CourierID returns the courier to bind.
func (c AssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// RequesterRole returns the role of the actor requesting the assignment.
func (c AssignCourierCommand) RequesterRole() delivery.Role {
	return c.requesterRole
}

func (c *AssignCourierCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *AssignCourierCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.courierID = id
	return nil
}

func (c *AssignCourierCommand) setRequesterRole(role delivery.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.requesterRole = role
	return nil
}
