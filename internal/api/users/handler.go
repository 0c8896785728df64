package users

import (
	"net/http"
	"time"

	"finmate/config"
	"finmate/database"
	"finmate/internal/domain/access"
	"finmate/internal/domain/premium"
	"finmate/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func GetCurrentUser(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()

	// Latest active subscription decides the premium badge + access policy
	var sub premium.Subscription
	var status *premium.Status
	err := database.DB.
		Where("user_id = ? AND is_active = ?", user.ID, true).
		Order("expires_at DESC").
		First(&sub).Error
	if err == nil {
		status = sub.Status()
	}

	policy := access.ComputePolicy(now, status)

	premiumDTO := PremiumDTO{IsPremium: false, Plan: nil}
	if status.IsActiveAt(now) {
		plan := string(status.Plan)
		premiumDTO = PremiumDTO{
			IsPremium:   true,
			Plan:        &plan,
			PurchasedAt: &status.PurchasedAt,
			ExpiresAt:   &status.ExpiresAt,
		}
	}

	resp := MeResponse{
		User: UserDTO{
			ID:          user.ID,
			Email:       user.Email,
			FullName:    user.FullName,
			PhoneNumber: user.PhoneNumber,
			Role:        user.Role,
			Status:      user.Status,
			IsVerified:  user.IsVerified,
		},
		Premium: premiumDTO,
		Access: AccessDTO{
			State:        string(policy.State),
			Badge:        policy.Badge,
			Capabilities: policy.Capabilities,
		},
	}

	c.JSON(http.StatusOK, resp)
}

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var t users.VerificationToken
	if err := database.DB.Where("token = ? AND type = ?", token, "email_verification").First(&t).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}
	if time.Now().After(t.ExpiresAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", t.UserID).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	database.DB.Delete(&t)

	c.Redirect(http.StatusTemporaryRedirect, config.APP_URL+"/signin")
}
