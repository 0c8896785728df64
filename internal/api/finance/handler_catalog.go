package finance

import (
	"net/http"

	"finmate/database"
	"finmate/internal/domain/finance"

	"github.com/gin-gonic/gin"
)

func ListAccountTypes(c *gin.Context) {
	var types []finance.AccountType
	if err := database.DB.Order("display_order ASC").Find(&types).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account types"})
		return
	}
	c.JSON(http.StatusOK, types)
}

func GetAccountType(c *gin.Context) {
	var at finance.AccountType
	if err := database.DB.First(&at, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account type not found"})
		return
	}
	c.JSON(http.StatusOK, at)
}

func ListTransactionTypes(c *gin.Context) {
	var types []finance.TransactionType
	if err := database.DB.Find(&types).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transaction types"})
		return
	}
	c.JSON(http.StatusOK, types)
}

// GET /categories?transactionTypeId=
func ListCategories(c *gin.Context) {
	q := database.DB.Model(&finance.Category{})
	if tt := c.Query("transactionTypeId"); tt != "" {
		q = q.Where("transaction_type_id = ?", tt)
	}

	var cats []finance.Category
	if err := q.Find(&cats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, cats)
}
