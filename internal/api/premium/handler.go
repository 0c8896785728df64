package premium

import (
	"net/http"
	"time"

	"finmate/database"
	"finmate/internal/domain/billing"
	"finmate/internal/domain/premium"
	"finmate/internal/domain/vouchers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// activeSubscription returns the user's current active record, or nil.
func activeSubscription(db *gorm.DB, userID uint) *premium.Subscription {
	var sub premium.Subscription
	err := db.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("expires_at DESC").
		First(&sub).Error
	if err != nil {
		return nil
	}
	return &sub
}

// GET /premium/subscription
func GetSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sub := activeSubscription(database.DB, userID)
	if sub == nil {
		c.JSON(http.StatusOK, gin.H{"subscription": nil})
		return
	}

	// Lapsed entitlements read as absence; the row is left for history.
	if !sub.Status().IsActiveAt(time.Now()) {
		c.JSON(http.StatusOK, gin.H{"subscription": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": BuildSubscriptionDTO(*sub)})
}

// POST /premium/subscription
//
// The server is the authority for both badge precedence and accrual: the new
// expiry extends from max(now, current expiry) and the stored plan is the
// higher-precedence badge while the old entitlement still runs.
func CreateSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	plan := premium.ParsePlan(body.Plan)
	if !plan.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
		return
	}

	paymentMethod := body.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "simulated"
	}

	now := time.Now()
	current := activeSubscription(database.DB, userID)

	badge := premium.ResolveBadge(current.Status(), plan, now)
	expiresAt := premium.AccrueExpiry(current.Status(), plan, now)

	// Price of the purchased plan (not the badge), minus any voucher
	var pricing premium.PlanPricing
	if err := database.DB.Where("plan_id = ?", string(plan)).First(&pricing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Plan pricing not configured"})
		return
	}
	amount := pricing.Price

	var voucher *vouchers.Voucher
	if body.VoucherCode != "" {
		code := vouchers.NormalizeCode(body.VoucherCode)
		var v vouchers.Voucher
		if err := database.DB.Where("code = ?", code).First(&v).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown voucher code"})
			return
		}
		if err := v.Redeemable(now); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		amount = v.Apply(amount)
		voucher = &v
	}

	newSub := premium.Subscription{
		UserID:        userID,
		Plan:          string(badge),
		PurchasedAt:   now,
		ExpiresAt:     expiresAt,
		IsActive:      true,
		PaymentMethod: paymentMethod,
		TransactionID: body.TransactionID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Supersede the previous active record; history keeps it
		if current != nil {
			if err := tx.Model(&premium.Subscription{}).
				Where("id = ?", current.ID).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&newSub).Error; err != nil {
			return err
		}

		if voucher != nil {
			if err := tx.Model(&vouchers.Voucher{}).
				Where("id = ?", voucher.ID).
				Update("current_uses", gorm.Expr("current_uses + 1")).Error; err != nil {
				return err
			}
		}

		payment := billing.Payment{
			UserID:        userID,
			Plan:          string(plan),
			Amount:        amount,
			Status:        billing.PaymentPaid,
			PaymentMethod: paymentMethod,
			TransactionID: body.TransactionID,
		}
		if voucher != nil {
			payment.VoucherCode = &voucher.Code
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscription": BuildSubscriptionDTO(newSub),
		"message":      "Subscription activated",
	})
}

// DELETE /premium/subscription
//
// Cancellation marks the entitlement inactive. No refund, and history rows
// stay untouched.
func CancelSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sub := activeSubscription(database.DB, userID)
	if sub == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No active subscription to cancel"})
		return
	}

	if err := database.DB.Model(&premium.Subscription{}).
		Where("id = ?", sub.ID).
		Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled"})
}

// GET /premium/subscription/history
func GetSubscriptionHistory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var subs []premium.Subscription
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	dtos := make([]SubscriptionDTO, 0, len(subs))
	for _, s := range subs {
		dtos = append(dtos, BuildSubscriptionDTO(s))
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": dtos})
}

// GET /premium/plans (public pricing for the payment page)
func ListPlanPricing(c *gin.Context) {
	var pricing []premium.PlanPricing
	if err := database.DB.
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&pricing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": pricing})
}
