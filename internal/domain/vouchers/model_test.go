package vouchers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testVoucher() *Voucher {
	return &Voucher{
		Code:            "WELCOME10",
		DiscountPercent: 10,
		MaxUses:         5,
		ValidFrom:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:         time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		IsActive:        true,
	}
}

func TestRedeemable(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	v := testVoucher()
	assert.NoError(t, v.Redeemable(now))

	v = testVoucher()
	v.IsActive = false
	assert.ErrorIs(t, v.Redeemable(now), ErrInactive)

	v = testVoucher()
	assert.ErrorIs(t, v.Redeemable(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)), ErrNotYet)

	v = testVoucher()
	assert.ErrorIs(t, v.Redeemable(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)), ErrExpired)

	v = testVoucher()
	v.CurrentUses = 5
	assert.ErrorIs(t, v.Redeemable(now), ErrExhausted)

	// MaxUses == 0 means unlimited
	v = testVoucher()
	v.MaxUses = 0
	v.CurrentUses = 1000
	assert.NoError(t, v.Redeemable(now))
}

func TestApply(t *testing.T) {
	v := testVoucher()
	assert.InDelta(t, 90, v.Apply(100), 0.001)

	fixed := &Voucher{DiscountAmount: 30}
	assert.InDelta(t, 70, fixed.Apply(100), 0.001)
	assert.Equal(t, 0.0, fixed.Apply(20))

	none := &Voucher{}
	assert.InDelta(t, 100, none.Apply(100), 0.001)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "WELCOME10", NormalizeCode("  welcome10 "))
}
