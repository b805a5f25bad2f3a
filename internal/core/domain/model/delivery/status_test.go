package delivery_test

import (
	"fmt"
	"testing"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(delivery.Unknown))
		assert.Equal(t, 1, int(delivery.PendingAssignment))
		assert.Equal(t, 2, int(delivery.Assigned))
		assert.Equal(t, 3, int(delivery.Accepted))
		assert.Equal(t, 4, int(delivery.InPreparation))
		assert.Equal(t, 5, int(delivery.OutForDelivery))
		assert.Equal(t, 6, int(delivery.Arrived))
		assert.Equal(t, 7, int(delivery.Delivered))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []delivery.Status{
			delivery.PendingAssignment,
			delivery.Assigned,
			delivery.Accepted,
			delivery.InPreparation,
			delivery.OutForDelivery,
			delivery.Arrived,
			delivery.Delivered,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown and out-of-range values", func(t *testing.T) {
		invalidStatuses := []delivery.Status{
			delivery.Unknown,
			delivery.Status(-1),
			delivery.Status(8),
			delivery.Status(100),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
			})
		}
	})
}

func TestStatus_Tokens(t *testing.T) {
	tokens := map[delivery.Status]string{
		delivery.PendingAssignment: "PENDING_ASSIGNMENT",
		delivery.Assigned:          "ASSIGNED",
		delivery.Accepted:          "ACCEPTED",
		delivery.InPreparation:     "IN_PREPARATION",
		delivery.OutForDelivery:    "OUT_FOR_DELIVERY",
		delivery.Arrived:           "ARRIVED",
		delivery.Delivered:         "DELIVERED",
	}

	t.Run("should stringify to canonical wire tokens", func(t *testing.T) {
		for status, token := range tokens {
			assert.Equal(t, token, status.String())
		}
	})

	t.Run("should parse canonical tokens back", func(t *testing.T) {
		for status, token := range tokens {
			parsed, err := delivery.StatusFromToken(token)

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unrecognized tokens", func(t *testing.T) {
		for _, token := range []string{"", "UNKNOWN", "delivered", "Shipped"} {
			_, err := delivery.StatusFromToken(token)

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})

	t.Run("should return UNKNOWN for out-of-range values", func(t *testing.T) {
		assert.Equal(t, "UNKNOWN", delivery.Status(42).String())
	})
}

func TestStatus_Transitions(t *testing.T) {
	type edge struct {
		from delivery.Status
		to   delivery.Status
		gate delivery.Gate
	}

	t.Run("should allow every legal edge with its gate", func(t *testing.T) {
		edges := []edge{
			{delivery.PendingAssignment, delivery.Assigned, delivery.GateManager},
			{delivery.Assigned, delivery.Accepted, delivery.GateDriver},
			{delivery.Accepted, delivery.InPreparation, delivery.GateDriverOrManager},
			{delivery.Accepted, delivery.OutForDelivery, delivery.GateDriver},
			{delivery.InPreparation, delivery.OutForDelivery, delivery.GateDriver},
			{delivery.OutForDelivery, delivery.Arrived, delivery.GateDriver},
			{delivery.Arrived, delivery.Delivered, delivery.GateDriver},
		}

		for _, e := range edges {
			t.Run(fmt.Sprintf("%s to %s", e.from, e.to), func(t *testing.T) {
				gate, err := e.from.GateFor(e.to)

				require.NoError(t, err)
				assert.Equal(t, e.gate, gate)
				assert.True(t, e.from.CanTransitionTo(e.to))
			})
		}
	})

	t.Run("should reject backward and skipping edges", func(t *testing.T) {
		illegal := []edge{
			{delivery.PendingAssignment, delivery.Accepted, 0},
			{delivery.Assigned, delivery.OutForDelivery, 0},
			{delivery.Accepted, delivery.Arrived, 0},
			{delivery.Arrived, delivery.OutForDelivery, 0},
			{delivery.Delivered, delivery.Arrived, 0},
			{delivery.OutForDelivery, delivery.Accepted, 0},
		}

		for _, e := range illegal {
			t.Run(fmt.Sprintf("%s to %s", e.from, e.to), func(t *testing.T) {
				_, err := e.from.GateFor(e.to)

				require.ErrorIs(t, err, delivery.ErrIllegalTransition)
				assert.False(t, e.from.CanTransitionTo(e.to))
			})
		}
	})

	t.Run("should reject self transitions", func(t *testing.T) {
		for _, status := range []delivery.Status{
			delivery.PendingAssignment,
			delivery.Assigned,
			delivery.Accepted,
			delivery.OutForDelivery,
			delivery.Arrived,
			delivery.Delivered,
		} {
			_, err := status.GateFor(status)
			require.ErrorIs(t, err, delivery.ErrIllegalTransition)
		}
	})

	t.Run("should allow no edges out of the terminal status", func(t *testing.T) {
		assert.True(t, delivery.Delivered.IsTerminal())

		for target := delivery.PendingAssignment; target <= delivery.Delivered; target++ {
			_, err := delivery.Delivered.GateFor(target)
			require.ErrorIs(t, err, delivery.ErrIllegalTransition)
		}
	})
}
