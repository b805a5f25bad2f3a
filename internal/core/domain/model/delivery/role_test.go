package delivery_test

import (
	"testing"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_FromToken(t *testing.T) {
	t.Run("should parse valid role tokens", func(t *testing.T) {
		testCases := map[string]delivery.Role{
			"ADMIN":   delivery.RoleAdmin,
			"MANAGER": delivery.RoleManager,
			"DRIVER":  delivery.RoleDriver,
		}

		for token, expected := range testCases {
			role, err := delivery.RoleFromToken(token)

			require.NoError(t, err)
			assert.Equal(t, expected, role)
		}
	})

	t.Run("should reject unknown tokens", func(t *testing.T) {
		for _, token := range []string{"", "admin", "CUSTOMER", "ROOT"} {
			_, err := delivery.RoleFromToken(token)

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}

func TestRole_IsManagerTier(t *testing.T) {
	t.Run("should include ADMIN and MANAGER", func(t *testing.T) {
		assert.True(t, delivery.RoleAdmin.IsManagerTier())
		assert.True(t, delivery.RoleManager.IsManagerTier())
	})

	t.Run("should exclude DRIVER", func(t *testing.T) {
		assert.False(t, delivery.RoleDriver.IsManagerTier())
	})
}
