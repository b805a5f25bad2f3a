package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/services"
	"handover/internal/core/ports"
)

// TransitionDeliveryCommandHandler is the status transition engine. It loads
// the delivery, validates the requested edge against the transition table and
// the requester's gate, runs handover verification for the terminal target,
// and persists the new status together with its audit entry in one
// transaction.
//
// A failed verification performs no state change and no audit append; the
// delivery is exactly as it was before the call.
type TransitionDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	verifier   services.HandoverVerifier
	notifier   ports.NotificationHook
}

// NewTransitionDeliveryCommandHandler creates a handler for status transitions.
func NewTransitionDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	verifier services.HandoverVerifier,
	notifier ports.NotificationHook,
) TransitionDeliveryCommandHandler {
	return TransitionDeliveryCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		notifier:   notifier,
	}
}

// Handle processes one transition request.
//
// Failure modes, all typed and recoverable:
//   - errs.ErrObjectNotFound: the delivery does not exist
//   - delivery.ErrIllegalTransition: edge not in the table for the current
//     status, including stale-client retries after the state advanced
//   - delivery.ErrForbidden: requester identity/role fails the edge's gate
//   - delivery.ErrVerificationFailed: wrong handover code; nothing written
//   - errs value errors: malformed rating, empty signature, missing input
func (h TransitionDeliveryCommandHandler) Handle(ctx context.Context, command TransitionDeliveryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	now := time.Now().UTC()

	if command.Target() == delivery.Delivered {
		err = h.completeHandover(record, command, now)
	} else {
		err = record.Transition(command.Target(), command.RequesterID(), command.RequesterRole(), command.Note(), now)
	}
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, record); err != nil {
		// A concurrent writer advanced the record; this request is now a
		// stale retry and is rejected rather than silently reapplied.
		if errors.Is(err, ports.ErrConcurrentModification) {
			return fmt.Errorf("%w: delivery state changed concurrently", delivery.ErrIllegalTransition)
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyAfterCommit(ctx, record)

	return nil
}

// completeHandover runs verification and applies the terminal transition.
// Verification happens entirely in memory before any mutation is staged.
func (h TransitionDeliveryCommandHandler) completeHandover(
	record *delivery.Delivery,
	command TransitionDeliveryCommand,
	now time.Time,
) error {
	input := command.Handover()
	if input == nil {
		return delivery.ErrProofRequired
	}

	proof, err := h.verifier.Verify(record, input.EnteredCode, input.Signature, input.Rating, now)
	if err != nil {
		return err
	}

	return record.CompleteHandover(command.RequesterID(), command.RequesterRole(), proof, command.Note(), now)
}

func (h TransitionDeliveryCommandHandler) notifyAfterCommit(ctx context.Context, record *delivery.Delivery) {
	deliveryID := record.ID().String()
	event := ports.EventStatusChanged
	if record.Status() == delivery.Delivered {
		event = ports.EventDeliveryCompleted
	}

	h.notifier.Notify(ctx, deliveryID, event, delivery.RoleManager.String())
	h.notifier.Notify(ctx, deliveryID, event, delivery.RoleDriver.String())
}
