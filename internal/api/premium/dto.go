package premium

import (
	"time"

	"finmate/internal/domain/premium"
)

// SubscriptionDTO mirrors what the web client and sdk/premium consume.
type SubscriptionDTO struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"userId"`
	Plan          string    `json:"plan"`
	PurchasedAt   time.Time `json:"purchasedAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
	IsActive      bool      `json:"isActive"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	TransactionID *string   `json:"transactionId,omitempty"`
}

func BuildSubscriptionDTO(s premium.Subscription) SubscriptionDTO {
	return SubscriptionDTO{
		ID:            s.ID,
		UserID:        s.UserID,
		Plan:          s.Plan,
		PurchasedAt:   s.PurchasedAt,
		ExpiresAt:     s.ExpiresAt,
		IsActive:      s.IsActive,
		PaymentMethod: s.PaymentMethod,
		TransactionID: s.TransactionID,
	}
}

type CreateSubscriptionRequest struct {
	Plan          string  `json:"plan" binding:"required"`
	PaymentMethod string  `json:"paymentMethod"`
	TransactionID *string `json:"transactionId"`
	VoucherCode   string  `json:"voucherCode"`
}
