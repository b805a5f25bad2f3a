package services_test

import (
	"testing"
	"time"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"
	"handover/internal/core/domain/services"
	"handover/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArrivedDelivery(t *testing.T) *delivery.Delivery {
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

	courierID := kernel.NewUUID()
	now := time.Now().UTC()
	require.NoError(t, record.Assign(courierID, "Courier", delivery.RoleManager, now))
	require.NoError(t, record.Transition(delivery.Accepted, courierID, delivery.RoleDriver, "", now))
	require.NoError(t, record.Transition(delivery.OutForDelivery, courierID, delivery.RoleDriver, "", now))
	require.NoError(t, record.Transition(delivery.Arrived, courierID, delivery.RoleDriver, "", now))

	return record
}

func TestHandoverVerifier_Verify(t *testing.T) {
	verifier := services.NewHandoverVerifier()
	signature := []byte("signature-image")

	t.Run("should approve matching code with valid input", func(t *testing.T) {
		record := newArrivedDelivery(t)
		now := time.Now().UTC()

		proof, err := verifier.Verify(record, "482913", signature, 5, now)

		require.NoError(t, err)
		require.NoError(t, proof.Validate())
		assert.Equal(t, signature, proof.Signature())
		assert.Equal(t, 5, proof.Rating())
		assert.Equal(t, now, proof.VerifiedAt())
	})

	t.Run("should fail verification on wrong code", func(t *testing.T) {
		record := newArrivedDelivery(t)

		_, err := verifier.Verify(record, "000000", signature, 5, time.Now().UTC())

		require.ErrorIs(t, err, delivery.ErrVerificationFailed)
		assert.Equal(t, delivery.Arrived, record.Status())
		assert.Nil(t, record.Proof())
	})

	t.Run("should reject malformed rating before comparing codes", func(t *testing.T) {
		record := newArrivedDelivery(t)

		_, err := verifier.Verify(record, "000000", signature, 9, time.Now().UTC())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.NotErrorIs(t, err, delivery.ErrVerificationFailed)
	})

	t.Run("should reject empty signature before comparing codes", func(t *testing.T) {
		record := newArrivedDelivery(t)

		_, err := verifier.Verify(record, "000000", nil, 5, time.Now().UTC())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.NotErrorIs(t, err, delivery.ErrVerificationFailed)
	})

	t.Run("should reject non-constructed delivery", func(t *testing.T) {
		var record delivery.Delivery

		_, err := verifier.Verify(&record, "482913", signature, 5, time.Now().UTC())

		require.ErrorIs(t, err, delivery.ErrDeliveryIsNotConstructed)
	})
}
