//go:build unit

package promo_test

import (
	"testing"
	"time"

	"court-reserve/internal/domain/promo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

func percentagePromo(t *testing.T, percent float64, maxUses *int32, usedBy []uuid.UUID) *promo.PromoCode {
	t.Helper()
	discount, err := promo.NewPercentageDiscount(percent)
	require.NoError(t, err)
	code, err := promo.NewCode("SPRING20")
	require.NoError(t, err)
	return promo.ReconstructPromoCode(uuid.New(), code, discount, maxUses, usedBy, true, now.Add(24*time.Hour))
}

func TestNewCode(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "uppercased", input: "spring20", want: "SPRING20"},
		{name: "trimmed", input: "  SAVE10  ", want: "SAVE10"},
		{name: "minimum length", input: "AB1", want: "AB1"},
		{name: "too short", input: "AB", wantErr: true},
		{name: "too long", input: "ABCDEFGHIJKLMNOPQRSTU", wantErr: true},
		{name: "punctuation", input: "SAVE-10", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, err := promo.NewCode(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, promo.ErrInvalidCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, code.String())
		})
	}
}

func TestDiscountAmountOff(t *testing.T) {
	t.Run("percentage rounds to nearest halala", func(t *testing.T) {
		d, err := promo.NewPercentageDiscount(20)
		require.NoError(t, err)
		assert.Equal(t, int64(4000), d.AmountOff(20000))

		d, err = promo.NewPercentageDiscount(33)
		require.NoError(t, err)
		assert.Equal(t, int64(33), d.AmountOff(100))
	})

	t.Run("fixed", func(t *testing.T) {
		d, err := promo.NewFixedDiscount(1500)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), d.AmountOff(20000))
	})

	t.Run("clamped to base", func(t *testing.T) {
		d, err := promo.NewFixedDiscount(5000)
		require.NoError(t, err)
		assert.Equal(t, int64(3000), d.AmountOff(3000))
	})

	t.Run("full discount", func(t *testing.T) {
		d, err := promo.NewPercentageDiscount(100)
		require.NoError(t, err)
		assert.Equal(t, int64(20000), d.AmountOff(20000))
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		_, err := promo.NewPercentageDiscount(101)
		assert.ErrorIs(t, err, promo.ErrInvalidDiscountPercent)
		_, err = promo.NewPercentageDiscount(-1)
		assert.ErrorIs(t, err, promo.ErrInvalidDiscountPercent)
		_, err = promo.NewFixedDiscount(-100)
		assert.ErrorIs(t, err, promo.ErrInvalidDiscountAmount)
	})
}

func TestValidateUsage(t *testing.T) {
	customerID := uuid.New()
	otherID := uuid.New()

	t.Run("valid", func(t *testing.T) {
		p := percentagePromo(t, 20, nil, nil)
		assert.NoError(t, p.ValidateUsage(now, []uuid.UUID{customerID}))
	})

	t.Run("inactive wins over everything", func(t *testing.T) {
		discount, _ := promo.NewPercentageDiscount(20)
		code, _ := promo.NewCode("SPRING20")
		p := promo.ReconstructPromoCode(uuid.New(), code, discount, nil, []uuid.UUID{customerID}, false, now.Add(-time.Hour))
		assert.ErrorIs(t, p.ValidateUsage(now, []uuid.UUID{customerID}), promo.ErrInactive)
	})

	t.Run("expired", func(t *testing.T) {
		discount, _ := promo.NewPercentageDiscount(20)
		code, _ := promo.NewCode("SPRING20")
		p := promo.ReconstructPromoCode(uuid.New(), code, discount, nil, nil, true, now.Add(-time.Minute))
		assert.ErrorIs(t, p.ValidateUsage(now, nil), promo.ErrExpired)
	})

	t.Run("already used by identity", func(t *testing.T) {
		// A second customer record sharing the phone number is still the
		// same identity.
		p := percentagePromo(t, 20, nil, []uuid.UUID{otherID})
		err := p.ValidateUsage(now, []uuid.UUID{customerID, otherID})
		assert.ErrorIs(t, err, promo.ErrAlreadyUsedByCustomer)
	})

	t.Run("usage cap reached", func(t *testing.T) {
		max := int32(2)
		p := percentagePromo(t, 20, &max, []uuid.UUID{uuid.New(), uuid.New()})
		assert.ErrorIs(t, p.ValidateUsage(now, []uuid.UUID{customerID}), promo.ErrUsageCapReached)
	})

	t.Run("identity check precedes cap check", func(t *testing.T) {
		max := int32(1)
		p := percentagePromo(t, 20, &max, []uuid.UUID{customerID})
		assert.ErrorIs(t, p.ValidateUsage(now, []uuid.UUID{customerID}), promo.ErrAlreadyUsedByCustomer)
	})
}

func TestConsumeAndRelease(t *testing.T) {
	customerID := uuid.New()
	p := percentagePromo(t, 20, nil, nil)

	require.NoError(t, p.Consume(customerID))
	assert.True(t, p.UsedByCustomer(customerID))

	// Double consume is rejected.
	assert.ErrorIs(t, p.Consume(customerID), promo.ErrAlreadyUsedByCustomer)

	p.Release(customerID)
	assert.False(t, p.UsedByCustomer(customerID))

	// Release of a non-member is a no-op.
	p.Release(customerID)
	assert.False(t, p.UsedByCustomer(customerID))

	// The code is usable again after release.
	require.NoError(t, p.Consume(customerID))
}

func TestNewPromoCodeDefaults(t *testing.T) {
	discount, err := promo.NewPercentageDiscount(10)
	require.NoError(t, err)

	p, err := promo.NewPromoCode(uuid.New(), "welcome10", discount, nil, nil, now)
	require.NoError(t, err)

	assert.Equal(t, "WELCOME10", p.Code().String())
	assert.True(t, p.Active())
	assert.Equal(t, now.Add(promo.DefaultValidity), p.ExpiresAt())
}
