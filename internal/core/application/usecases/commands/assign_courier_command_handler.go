package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/ports"
)

// AssignCourierCommandHandler arbitrates courier assignment. It validates the
// courier against the personnel directory, applies the single-shot assignment
// on the aggregate, and relies on the repository's version compare-and-swap so
// that of two concurrent assignment attempts exactly one succeeds and the
// other observes delivery.ErrAlreadyAssigned.
type AssignCourierCommandHandler struct {
	uowFactory DeliveryUoWFactory
	directory  ports.PersonnelDirectory
	notifier   ports.NotificationHook
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
func NewAssignCourierCommandHandler(
	uowFactory DeliveryUoWFactory,
	directory ports.PersonnelDirectory,
	notifier ports.NotificationHook,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		notifier:   notifier,
	}
}

// Handle processes the assignment command.
//
// Failure modes, all typed and recoverable:
//   - errs.ErrObjectNotFound: the delivery does not exist
//   - delivery.ErrCourierUnavailable: courier not active or not delivery-capable
//   - delivery.ErrForbidden: requester is not manager-tier
//   - delivery.ErrAlreadyAssigned: a courier is already bound, or a concurrent
//     assignment committed first
//   - delivery.ErrIllegalTransition: the delivery advanced past assignment
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	person, err := h.resolveCourier(ctx, command)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()

	record, err := repo.Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	if err = record.Assign(command.CourierID(), person.Name, command.RequesterRole(), time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.Update(ctx, record); err != nil {
		// A concurrent writer committed first. The delivery left
		// PendingAssignment, so the race was lost to another assignment.
		if errors.Is(err, ports.ErrConcurrentModification) {
			return delivery.ErrAlreadyAssigned
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	deliveryID := record.ID().String()
	h.notifier.Notify(ctx, deliveryID, ports.EventCourierAssigned, delivery.RoleDriver.String())
	h.notifier.Notify(ctx, deliveryID, ports.EventCourierAssigned, delivery.RoleManager.String())

	return nil
}

// resolveCourier checks the courier against the active, delivery-capable
// directory entries. Stale and deactivated accounts are rejected here, before
// any transaction is opened.
func (h AssignCourierCommandHandler) resolveCourier(
	ctx context.Context,
	command AssignCourierCommand,
) (ports.Person, error) {
	people, err := h.directory.ListActiveByCapability(ctx, ports.CapabilityDelivery)
	if err != nil {
		return ports.Person{}, fmt.Errorf("personnel directory lookup: %w", err)
	}

	courierID := command.CourierID().String()
	for _, person := range people {
		if person.ID == courierID {
			return person, nil
		}
	}

	return ports.Person{}, fmt.Errorf("%w: %s", delivery.ErrCourierUnavailable, courierID)
}
