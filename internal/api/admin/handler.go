package admin

import (
	"net/http"
	"time"

	"finmate/database"
	"finmate/internal/domain/billing"
	"finmate/internal/domain/posts"
	"finmate/internal/domain/premium"
	"finmate/internal/domain/users"
	"finmate/internal/domain/vouchers"

	"github.com/gin-gonic/gin"
)

// GET /admin/dashboard — headline numbers for the admin landing page.
func AdminDashboard(c *gin.Context) {
	var totalUsers, activeSubs, publishedPosts, activeVouchers int64
	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&premium.Subscription{}).
		Where("is_active = ? AND expires_at > ?", true, time.Now()).
		Count(&activeSubs)
	database.DB.Model(&posts.Post{}).Where("is_published = ?", true).Count(&publishedPosts)
	database.DB.Model(&vouchers.Voucher{}).Where("is_active = ?", true).Count(&activeVouchers)

	var totalRevenue float64
	database.DB.Model(&billing.Payment{}).
		Where("status = ?", billing.PaymentPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalRevenue)

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":          totalUsers,
		"activeSubscriptions": activeSubs,
		"publishedPosts":      publishedPosts,
		"activeVouchers":      activeVouchers,
		"totalRevenue":        totalRevenue,
	})
}
