package vouchers

import (
	"errors"
	"strings"
	"time"
)

type Voucher struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Code            string    `gorm:"not null;uniqueIndex:idx_vouchers_code" json:"code"`
	DiscountPercent float64   `json:"discountPercent"`
	DiscountAmount  float64   `json:"discountAmount,omitempty"`
	MaxUses         int       `json:"maxUses"`
	CurrentUses     int       `json:"currentUses"`
	ValidFrom       time.Time `json:"validFrom"`
	ValidTo         time.Time `json:"validTo"`
	IsActive        bool      `gorm:"default:true" json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

var (
	ErrInactive  = errors.New("voucher is not active")
	ErrNotYet    = errors.New("voucher is not valid yet")
	ErrExpired   = errors.New("voucher has expired")
	ErrExhausted = errors.New("voucher has no uses left")
)

// Redeemable checks the redemption window and use count at the given instant.
func (v *Voucher) Redeemable(now time.Time) error {
	if !v.IsActive {
		return ErrInactive
	}
	if now.Before(v.ValidFrom) {
		return ErrNotYet
	}
	if now.After(v.ValidTo) {
		return ErrExpired
	}
	if v.MaxUses > 0 && v.CurrentUses >= v.MaxUses {
		return ErrExhausted
	}
	return nil
}

// Apply returns the price after discount. Percent discount takes precedence
// over a fixed amount; the result never goes below zero.
func (v *Voucher) Apply(price float64) float64 {
	discounted := price
	if v.DiscountPercent > 0 {
		discounted = price * (1 - v.DiscountPercent/100)
	} else if v.DiscountAmount > 0 {
		discounted = price - v.DiscountAmount
	}
	if discounted < 0 {
		return 0
	}
	return discounted
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
