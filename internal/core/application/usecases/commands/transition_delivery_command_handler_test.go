package commands_test

import (
	"testing"
	"time"

	"handover/internal/core/application/usecases/commands"
	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"
	"handover/internal/core/domain/services"
	"handover/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTransitionHandler(factory commands.DeliveryUoWFactory, notifier ports.NotificationHook) commands.TransitionDeliveryCommandHandler {
	return commands.NewTransitionDeliveryCommandHandler(factory, services.NewHandoverVerifier(), notifier)
}

func TestTransitionDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	record := newPendingDelivery(t)
	require.NoError(t, record.Assign(courierID, "Courier", delivery.RoleManager, time.Now().UTC()))

	cmd, err := commands.NewTransitionDeliveryCommand(
		record.ID(), delivery.Accepted, courierID, delivery.RoleDriver, "on my way",
	)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	uow := new(MockDeliveryUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", ctx, record.ID()).Return(record, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationHook)
	notifier.On("Notify", ctx, record.ID().String(), ports.EventStatusChanged, "MANAGER").Once()
	notifier.On("Notify", ctx, record.ID().String(), ports.EventStatusChanged, "DRIVER").Once()

	handler := newTransitionHandler(factory, notifier)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.Accepted, record.Status())

	history := record.History()
	assert.Equal(t, "on my way", history[len(history)-1].Note())

	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTransitionDeliveryCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	record := newArrivedDelivery(t, courierID)

	cmd, err := commands.NewTransitionDeliveryCommand(
		record.ID(), delivery.Accepted, courierID, delivery.RoleDriver, "",
	)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	repo.On("Get", ctx, record.ID()).Return(record, nil).Once()

	uow := new(MockDeliveryUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newTransitionHandler(factory, silentHook{})

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrIllegalTransition)
	assert.Equal(t, delivery.Arrived, record.Status())
	repo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestTransitionDeliveryCommandHandler_Handle_ForbiddenRequester(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	record := newPendingDelivery(t)
	require.NoError(t, record.Assign(courierID, "Courier", delivery.RoleManager, time.Now().UTC()))

	otherDriver := kernel.NewUUID()
	cmd, err := commands.NewTransitionDeliveryCommand(
		record.ID(), delivery.Accepted, otherDriver, delivery.RoleDriver, "",
	)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	repo.On("Get", ctx, record.ID()).Return(record, nil).Once()

	uow := new(MockDeliveryUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newTransitionHandler(factory, silentHook{})

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrForbidden)
	assert.Equal(t, delivery.Assigned, record.Status())
}

func TestTransitionDeliveryCommandHandler_Handle_ConcurrentModification(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	record := newPendingDelivery(t)
	require.NoError(t, record.Assign(courierID, "Courier", delivery.RoleManager, time.Now().UTC()))

	cmd, err := commands.NewTransitionDeliveryCommand(
		record.ID(), delivery.Accepted, courierID, delivery.RoleDriver, "",
	)
	require.NoError(t, err)

	repo := new(MockDeliveryRepository)
	repo.On("Get", ctx, record.ID()).Return(record, nil).Once()
	repo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).
		Return(ports.ErrConcurrentModification).Once()

	uow := new(MockDeliveryUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newTransitionHandler(factory, silentHook{})

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrIllegalTransition)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestTransitionDeliveryCommandHandler_Handle_CompleteHandover(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()

	t.Run("should deliver with matching code", func(t *testing.T) {
		record := newArrivedDelivery(t, courierID)

		cmd, err := commands.NewCompleteHandoverCommand(
			record.ID(), courierID, delivery.RoleDriver, "",
			commands.HandoverInput{
				EnteredCode: record.VerificationCode().String(),
				Signature:   []byte("signature-image"),
				Rating:      5,
			},
		)
		require.NoError(t, err)

		repo := new(MockDeliveryRepository)
		repo.On("Get", ctx, record.ID()).Return(record, nil).Once()
		repo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()

		uow := new(MockDeliveryUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("DeliveryRepository").Return(repo).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockDeliveryUoWFactory)
		factory.On("Create").Return(uow).Once()

		notifier := new(MockNotificationHook)
		notifier.On("Notify", ctx, record.ID().String(), ports.EventDeliveryCompleted, "MANAGER").Once()
		notifier.On("Notify", ctx, record.ID().String(), ports.EventDeliveryCompleted, "DRIVER").Once()

		handler := newTransitionHandler(factory, notifier)

		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, delivery.Delivered, record.Status())
		require.NotNil(t, record.Proof())
		assert.Equal(t, 5, record.Proof().Rating())
		notifier.AssertExpectations(t)
	})

	t.Run("should leave delivery untouched on wrong code", func(t *testing.T) {
		record := newArrivedDelivery(t, courierID)

		cmd, err := commands.NewCompleteHandoverCommand(
			record.ID(), courierID, delivery.RoleDriver, "",
			commands.HandoverInput{
				EnteredCode: "000000",
				Signature:   []byte("signature-image"),
				Rating:      5,
			},
		)
		require.NoError(t, err)

		repo := new(MockDeliveryRepository)
		repo.On("Get", ctx, record.ID()).Return(record, nil).Once()

		uow := new(MockDeliveryUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("DeliveryRepository").Return(repo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockDeliveryUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := newTransitionHandler(factory, silentHook{})

		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, delivery.ErrVerificationFailed)
		assert.Equal(t, delivery.Arrived, record.Status())
		assert.Nil(t, record.Proof())
		repo.AssertNotCalled(t, "Update", ctx, mock.Anything)
		uow.AssertNotCalled(t, "Commit", ctx)
	})
}

func TestTransitionDeliveryCommand_Constructor(t *testing.T) {
	t.Run("should reject DELIVERED without handover input", func(t *testing.T) {
		_, err := commands.NewTransitionDeliveryCommand(
			kernel.NewUUID(), delivery.Delivered, kernel.NewUUID(), delivery.RoleDriver, "",
		)

		require.ErrorIs(t, err, delivery.ErrProofRequired)
	})

	t.Run("should fix the terminal target on handover commands", func(t *testing.T) {
		cmd, err := commands.NewCompleteHandoverCommand(
			kernel.NewUUID(), kernel.NewUUID(), delivery.RoleDriver, "",
			commands.HandoverInput{EnteredCode: "482913", Signature: []byte("s"), Rating: 3},
		)

		require.NoError(t, err)
		assert.Equal(t, delivery.Delivered, cmd.Target())
		require.NotNil(t, cmd.Handover())
	})

	t.Run("should reject zero-value command in Validate", func(t *testing.T) {
		var cmd commands.TransitionDeliveryCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrTransitionDeliveryCommandIsNotConstructed)
	})
}
