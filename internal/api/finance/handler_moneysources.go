package finance

import (
	"net/http"

	"finmate/database"
	"finmate/internal/domain/finance"

	"github.com/gin-gonic/gin"
)

func buildMoneySourceDTO(ms finance.MoneySource) MoneySourceDTO {
	return MoneySourceDTO{
		ID:              ms.ID,
		UserID:          ms.UserID,
		AccountTypeID:   ms.AccountTypeID,
		AccountTypeName: ms.AccountType.Name,
		Name:            ms.Name,
		Icon:            ms.Icon,
		Color:           ms.Color,
		Balance:         ms.Balance,
		Currency:        ms.Currency,
		IsActive:        ms.IsActive,
		CreatedAt:       ms.CreatedAt,
		UpdatedAt:       ms.UpdatedAt,
	}
}

func ListMoneySources(c *gin.Context) {
	userID := c.GetUint("user_id")

	var sources []finance.MoneySource
	if err := database.DB.
		Preload("AccountType").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Find(&sources).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load money sources"})
		return
	}

	dtos := make([]MoneySourceDTO, 0, len(sources))
	for _, ms := range sources {
		dtos = append(dtos, buildMoneySourceDTO(ms))
	}
	c.JSON(http.StatusOK, dtos)
}

// GET /money-sources/grouped — balances grouped per account type, the way
// the balances page renders them.
func ListMoneySourcesGrouped(c *gin.Context) {
	userID := c.GetUint("user_id")

	var sources []finance.MoneySource
	if err := database.DB.
		Preload("AccountType").
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&sources).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load money sources"})
		return
	}

	byType := map[uint]*MoneySourceGroupDTO{}
	total := 0.0
	for _, ms := range sources {
		g, ok := byType[ms.AccountTypeID]
		if !ok {
			g = &MoneySourceGroupDTO{
				AccountTypeID:   ms.AccountTypeID,
				AccountTypeName: ms.AccountType.Name,
				DisplayOrder:    ms.AccountType.DisplayOrder,
				MoneySources:    []MoneySourceDTO{},
			}
			byType[ms.AccountTypeID] = g
		}
		g.MoneySources = append(g.MoneySources, buildMoneySourceDTO(ms))
		g.TotalBalance += ms.Balance
		total += ms.Balance
	}

	groups := make([]MoneySourceGroupDTO, 0, len(byType))
	for _, g := range byType {
		groups = append(groups, *g)
	}
	// stable order for the UI
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			if groups[j].DisplayOrder < groups[i].DisplayOrder {
				groups[i], groups[j] = groups[j], groups[i]
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalBalance": total,
		"groups":       groups,
	})
}

func CreateMoneySource(c *gin.Context) {
	userID := c.GetUint("user_id")

	var body struct {
		AccountTypeID uint    `json:"accountTypeId" binding:"required"`
		Name          string  `json:"name" binding:"required"`
		Icon          string  `json:"icon"`
		Color         string  `json:"color"`
		Balance       float64 `json:"balance"`
		Currency      string  `json:"currency"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var at finance.AccountType
	if err := database.DB.First(&at, body.AccountTypeID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown account type"})
		return
	}

	currency := body.Currency
	if currency == "" {
		currency = "VND"
	}

	ms := finance.MoneySource{
		UserID:        userID,
		AccountTypeID: body.AccountTypeID,
		AccountType:   at,
		Name:          body.Name,
		Icon:          body.Icon,
		Color:         body.Color,
		Balance:       body.Balance,
		Currency:      currency,
		IsActive:      true,
	}
	if err := database.DB.Create(&ms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create money source"})
		return
	}

	c.JSON(http.StatusOK, buildMoneySourceDTO(ms))
}
