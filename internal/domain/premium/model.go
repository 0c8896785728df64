package premium

import (
	"time"
)

// Subscription is one entitlement record. Each purchase inserts a new row
// carrying the resolved badge plan and the accrued expiry; the previous
// active row is superseded (is_active=false). Cancellation only flips
// is_active — history is never deleted.
type Subscription struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index:idx_premium_subscriptions_user_id" json:"userId"`
	Plan          string    `gorm:"type:varchar(20);not null" json:"plan"`
	PurchasedAt   time.Time `json:"purchasedAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
	IsActive      bool      `gorm:"index" json:"isActive"`
	PaymentMethod string    `gorm:"type:varchar(30)" json:"paymentMethod,omitempty"`
	TransactionID *string   `gorm:"column:transaction_id" json:"transactionId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Status projects the row into the shared entitlement snapshot.
// Inactive rows read as no entitlement.
func (s *Subscription) Status() *Status {
	if s == nil || !s.IsActive {
		return nil
	}
	return &Status{
		Plan:        ParsePlan(s.Plan),
		PurchasedAt: s.PurchasedAt,
		ExpiresAt:   s.ExpiresAt,
	}
}

// PlanPricing is the admin-editable price table shown on the payment page.
type PlanPricing struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PlanID        string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_plan_pricings_plan_id" json:"planId"`
	Name          string    `json:"name"`
	Duration      string    `json:"duration"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice,omitempty"`
	IsActive      bool      `gorm:"default:true" json:"isActive"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DefaultPricing seeds the three plans when the table is empty.
func DefaultPricing() []PlanPricing {
	return []PlanPricing{
		{PlanID: string(PlanOneMonth), Name: PlanOneMonth.DisplayName(), Duration: "30 days", Price: 49000, IsActive: true},
		{PlanID: string(PlanSixMonth), Name: PlanSixMonth.DisplayName(), Duration: "180 days", Price: 249000, OriginalPrice: 294000, IsActive: true},
		{PlanID: string(PlanOneYear), Name: PlanOneYear.DisplayName(), Duration: "365 days", Price: 449000, OriginalPrice: 588000, IsActive: true},
	}
}
