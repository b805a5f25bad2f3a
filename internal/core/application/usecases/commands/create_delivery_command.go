package commands

import (
	"errors"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"
	"handover/internal/pkg/guard"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
	ErrAddressIsRequired = errors.New("address is required")
	ErrPhoneIsRequired   = errors.New("phone is required")
)

// CreateDeliveryCommand represents a request from the owning order workflow to
// register a new delivery. The verification code and delivery number are
// generated by the handler, not supplied by the caller.
//
// Example:
//
//	deliveryTime, _ := delivery.NewDeliveryTime("tomorrow")
//	cmd, err := NewCreateDeliveryCommand(
//	    kernel.NewUUID(), "12 Rose St", "+15550100", deliveryTime,
//	    "leave at reception", "sale-4711", delivery.RoleManager,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID   kernel.UUID
	address      string
	phone        string
	deliveryTime delivery.DeliveryTime
	instructions string
	orderRef     string
	createdBy    delivery.Role

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery.
// Validates identifier, destination data, delivery time, and creator role.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	address string,
	phone string,
	deliveryTime delivery.DeliveryTime,
	instructions string,
	orderRef string,
	createdBy delivery.Role,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setAddress(address),
		cmd.setPhone(phone),
		cmd.setDeliveryTime(deliveryTime),
		cmd.setCreatedBy(createdBy),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}
	cmd.instructions = instructions
	cmd.orderRef = orderRef

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDeliveryCommandIsNotConstructed if validation fails.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier for the new delivery.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Address returns the delivery destination address.
func (c CreateDeliveryCommand) Address() string {
	return c.address
}

// Phone returns the customer contact phone.
func (c CreateDeliveryCommand) Phone() string {
	return c.phone
}

// DeliveryTime returns the requested handover time.
func (c CreateDeliveryCommand) DeliveryTime() delivery.DeliveryTime {
	return c.deliveryTime
}

// Instructions returns the optional special instructions.
func (c CreateDeliveryCommand) Instructions() string {
	return c.instructions
}

// OrderRef returns the opaque reference to the originating sale/repair record.
func (c CreateDeliveryCommand) OrderRef() string {
	return c.orderRef
}

// CreatedBy returns the role of the actor creating the delivery.
func (c CreateDeliveryCommand) CreatedBy() delivery.Role {
	return c.createdBy
}

func (c *CreateDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *CreateDeliveryCommand) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}
	c.address = address
	return nil
}

func (c *CreateDeliveryCommand) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	c.phone = phone
	return nil
}

func (c *CreateDeliveryCommand) setDeliveryTime(t delivery.DeliveryTime) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.deliveryTime = t
	return nil
}

func (c *CreateDeliveryCommand) setCreatedBy(role delivery.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.createdBy = role
	return nil
}
