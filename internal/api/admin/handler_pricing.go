package admin

import (
	"fmt"
	"net/http"

	"finmate/database"
	"finmate/internal/domain/premium"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/price"
)

func ListPlanPricing(c *gin.Context) {
	var pricing []premium.PlanPricing
	if err := database.DB.Order("id ASC").Find(&pricing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": pricing})
}

func UpdatePlanPricing(c *gin.Context) {
	var p premium.PlanPricing
	if err := database.DB.First(&p, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}

	var body struct {
		Name          *string  `json:"name"`
		Price         *float64 `json:"price"`
		OriginalPrice *float64 `json:"originalPrice"`
		IsActive      *bool    `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.Name != nil {
		p.Name = *body.Name
	}
	if body.Price != nil {
		if *body.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
			return
		}
		p.Price = *body.Price
	}
	if body.OriginalPrice != nil {
		p.OriginalPrice = *body.OriginalPrice
	}
	if body.IsActive != nil {
		p.IsActive = *body.IsActive
	}

	if err := database.DB.Save(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// POST /admin/sync-plans — pull prices from Stripe and overwrite the local
// table. Stripe prices carry the plan id in their lookup_key.
func SyncPlanPricingFromStripe(c *gin.Context) {
	params := &stripe.PriceListParams{Active: stripe.Bool(true)}
	params.Limit = stripe.Int64(100)

	updated := 0
	iter := price.List(params)
	for iter.Next() {
		pr := iter.Price()
		plan := premium.ParsePlan(pr.LookupKey)
		if !plan.Valid() {
			continue
		}

		res := database.DB.Model(&premium.PlanPricing{}).
			Where("plan_id = ?", string(plan)).
			Update("price", float64(pr.UnitAmount))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync plans"})
			return
		}
		updated += int(res.RowsAffected)
	}
	if err := iter.Err(); err != nil {
		fmt.Println("❌ Stripe price sync failed:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Stripe price sync failed"})
		return
	}

	fmt.Printf("✅ Synced %d plan prices from Stripe\n", updated)
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": updated})
}
