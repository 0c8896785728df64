package middleware

import (
	"net/http"
	"time"

	"finmate/database"
	"finmate/internal/domain/premium"

	"github.com/gin-gonic/gin"
)

// RequireActivePremium gates premium-only routes on the user's current
// entitlement. Lapsed subscriptions answer 402 so the client can show the
// upgrade flow instead of a generic error.
func RequireActivePremium() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
			return
		}

		var sub premium.Subscription
		err := database.DB.
			Where("user_id = ? AND is_active = ?", userID, true).
			Order("expires_at DESC").
			First(&sub).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Premium subscription required",
			})
			return
		}

		if !sub.Status().IsActiveAt(time.Now()) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Your premium subscription has expired",
			})
			return
		}

		c.Next()
	}
}
