package commands_test

import (
	"context"
	"testing"
	"time"

	"handover/internal/core/application/usecases/commands"
	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"
	"handover/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByNumber(ctx context.Context, number string) (*delivery.Delivery, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

type MockDeliveryUoW struct{ mock.Mock }

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockPersonnelDirectory struct{ mock.Mock }

func (m *MockPersonnelDirectory) ListActiveByCapability(ctx context.Context, capability string) ([]ports.Person, error) {
	args := m.Called(ctx, capability)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Person), args.Error(1)
}

type MockNotificationHook struct{ mock.Mock }

func (m *MockNotificationHook) Notify(ctx context.Context, deliveryID, eventType, recipientRole string) {
	m.Called(ctx, deliveryID, eventType, recipientRole)
}

// silentHook satisfies ports.NotificationHook for tests that do not assert
// on notifications.
type silentHook struct{}

func (silentHook) Notify(context.Context, string, string, string) {}

func newPendingDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()

	code, err := delivery.VerificationCodeFromString("482913")
	require.NoError(t, err)
	deliveryTime, err := delivery.NewDeliveryTime(delivery.DeliveryTimeNow)
	require.NoError(t, err)

	record, err := delivery.NewDelivery(
		kernel.NewUUID(),
		"DEL-20260901-00042",
		"221B Baker Street",
		"+1-202-555-0147",
		deliveryTime,
		"",
		"ORD-1042",
		code,
		delivery.RoleManager,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return record
}

// newArrivedDelivery walks a fresh delivery to Arrived under the given courier.
func newArrivedDelivery(t *testing.T, courierID kernel.UUID) *delivery.Delivery {
	t.Helper()

	record := newPendingDelivery(t)
	now := time.Now().UTC()

	require.NoError(t, record.Assign(courierID, "Test Courier", delivery.RoleManager, now))
	require.NoError(t, record.Transition(delivery.Accepted, courierID, delivery.RoleDriver, "", now))
	require.NoError(t, record.Transition(delivery.OutForDelivery, courierID, delivery.RoleDriver, "", now))
	require.NoError(t, record.Transition(delivery.Arrived, courierID, delivery.RoleDriver, "", now))
	return record
}
