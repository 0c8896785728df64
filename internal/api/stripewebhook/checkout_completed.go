package stripewebhooks

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"finmate/database"
	"finmate/internal/domain/billing"
	"finmate/internal/domain/premium"
	"finmate/internal/domain/users"
	stripestatus "finmate/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handleCheckoutSessionCompleted activates the purchased plan through the
// same accrual + precedence path as the direct purchase endpoint, so the
// badge rules hold no matter how the user paid.
func handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	plan := premium.ParsePlan(session.Metadata["plan"])
	if !plan.Valid() {
		return errors.New("checkout session missing plan metadata")
	}

	// Only a settled session grants the entitlement
	if stripestatus.NormalizePaymentStatus(string(session.PaymentStatus)) != billing.PaymentPaid {
		return nil
	}

	userID, err := userIDFromSession(session)
	if err != nil {
		return err
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	// Idempotency: a replayed webhook must not stack the purchase twice
	var existing int64
	database.DB.Model(&billing.Payment{}).
		Where("stripe_session_id = ?", session.ID).
		Count(&existing)
	if existing > 0 {
		return nil
	}

	now := time.Now()

	var currentRow premium.Subscription
	var current *premium.Status
	currentID := uint(0)
	if err := database.DB.
		Where("user_id = ? AND is_active = ?", user.ID, true).
		Order("expires_at DESC").
		First(&currentRow).Error; err == nil {
		current = currentRow.Status()
		currentID = currentRow.ID
	}

	badge := premium.ResolveBadge(current, plan, now)
	expiresAt := premium.AccrueExpiry(current, plan, now)

	sessionID := session.ID
	amount := float64(session.AmountTotal)

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if currentID != 0 {
			if err := tx.Model(&premium.Subscription{}).
				Where("id = ?", currentID).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}

		newSub := premium.Subscription{
			UserID:        user.ID,
			Plan:          string(badge),
			PurchasedAt:   now,
			ExpiresAt:     expiresAt,
			IsActive:      true,
			PaymentMethod: "stripe",
			TransactionID: &sessionID,
		}
		if err := tx.Create(&newSub).Error; err != nil {
			return err
		}

		payment := billing.Payment{
			UserID:          user.ID,
			Plan:            string(plan),
			Amount:          amount,
			Status:          billing.PaymentPaid,
			PaymentMethod:   "stripe",
			StripeSessionID: &sessionID,
		}
		return tx.Create(&payment).Error
	})
}

func userIDFromSession(session *stripe.CheckoutSession) (uint, error) {
	if raw, ok := session.Metadata["user_id"]; ok && raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err == nil && id > 0 {
			return uint(id), nil
		}
	}
	if session.ClientReferenceID != "" {
		id, err := strconv.ParseUint(session.ClientReferenceID, 10, 64)
		if err == nil && id > 0 {
			return uint(id), nil
		}
	}
	return 0, errors.New("checkout session does not identify a user")
}
