package commands

import (
	"context"
	"time"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/ports"
)

// CreateDeliveryCommandHandler registers new deliveries. It generates the
// one-time verification code and the human-readable delivery number, persists
// the aggregate with its creation history entry, and notifies the oversight
// role after commit.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   ports.NotificationHook
}

// NewCreateDeliveryCommandHandler creates a handler for delivery registration.
func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	notifier ports.NotificationHook,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the create command and returns the created aggregate so
// the caller can expose the record (including the generated number and code)
// without a second read.
func (h CreateDeliveryCommandHandler) Handle(
	ctx context.Context,
	command CreateDeliveryCommand,
) (*delivery.Delivery, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	code, err := delivery.GenerateVerificationCode()
	if err != nil {
		return nil, err
	}
	number, err := delivery.GenerateDeliveryNumber(now)
	if err != nil {
		return nil, err
	}

	record, err := delivery.NewDelivery(
		command.DeliveryID(),
		number,
		command.Address(),
		command.Phone(),
		command.DeliveryTime(),
		command.Instructions(),
		command.OrderRef(),
		code,
		command.CreatedBy(),
		now,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRepository().Add(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, record.ID().String(), ports.EventDeliveryCreated, delivery.RoleManager.String())

	return record, nil
}
