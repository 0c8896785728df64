package billing

import (
	"time"

	"finmate/internal/domain/users"
)

// Payment is one revenue event: a premium purchase, however it was paid.
// Admin revenue reports aggregate over these rows.
type Payment struct {
	ID              uint `gorm:"primaryKey"`
	UserID          uint
	User            users.User
	Plan            string `gorm:"type:varchar(20)"`
	Amount          float64
	Status          string  `gorm:"type:varchar(20);index"` // paid | failed | refunded
	PaymentMethod   string  `gorm:"type:varchar(30)"`
	TransactionID   *string `gorm:"column:transaction_id"`
	VoucherCode     *string
	StripeSessionID *string `gorm:"uniqueIndex:idx_payments_stripe_session_id"`
	CreatedAt       time.Time
}

const (
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)
