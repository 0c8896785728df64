package finance

import (
	"net/http"
	"strconv"
	"time"

	"finmate/database"
	"finmate/internal/domain/finance"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func buildTransactionDTO(t finance.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:                   t.ID,
		UserID:               t.UserID,
		TransactionTypeID:    t.TransactionTypeID,
		TransactionTypeName:  t.TransactionType.Name,
		TransactionTypeColor: t.TransactionType.Color,
		IsIncome:             t.TransactionType.IsIncome,
		MoneySourceID:        t.MoneySourceID,
		MoneySourceName:      t.MoneySource.Name,
		MoneySourceIcon:      t.MoneySource.Icon,
		CategoryID:           t.CategoryID,
		CategoryName:         t.Category.Name,
		CategoryIcon:         t.Category.Icon,
		Amount:               t.Amount,
		TransactionDate:      t.TransactionDate,
		Description:          t.Description,
		IsFee:                t.IsFee,
		ExcludeFromReport:    t.ExcludeFromReport,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// GET /transactions?page=&pageSize=&moneySourceId=&categoryId=&from=&to=
func ListTransactions(c *gin.Context) {
	userID := c.GetUint("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	q := database.DB.Model(&finance.Transaction{}).Where("user_id = ?", userID)
	if ms := c.Query("moneySourceId"); ms != "" {
		q = q.Where("money_source_id = ?", ms)
	}
	if cat := c.Query("categoryId"); cat != "" {
		q = q.Where("category_id = ?", cat)
	}
	if from := c.Query("from"); from != "" {
		if t, err := parseDate(from); err == nil {
			q = q.Where("transaction_date >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := parseDate(to); err == nil {
			q = q.Where("transaction_date <= ?", t)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	var txs []finance.Transaction
	if err := q.
		Preload("TransactionType").
		Preload("Category").
		Preload("MoneySource").
		Order("transaction_date DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&txs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	dtos := make([]TransactionDTO, 0, len(txs))
	for _, t := range txs {
		dtos = append(dtos, buildTransactionDTO(t))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		TotalCount:   total,
		Page:         page,
		PageSize:     pageSize,
		Transactions: dtos,
	})
}

func CreateTransaction(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(req.TransactionDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction date"})
		return
	}

	var tt finance.TransactionType
	if err := database.DB.First(&tt, req.TransactionTypeID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown transaction type"})
		return
	}
	var cat finance.Category
	if err := database.DB.First(&cat, req.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}
	var ms finance.MoneySource
	if err := database.DB.
		Where("id = ? AND user_id = ?", req.MoneySourceID, userID).
		First(&ms).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown money source"})
		return
	}

	tx := finance.Transaction{
		UserID:            userID,
		TransactionTypeID: req.TransactionTypeID,
		TransactionType:   tt,
		CategoryID:        req.CategoryID,
		Category:          cat,
		MoneySourceID:     req.MoneySourceID,
		MoneySource:       ms,
		Amount:            req.Amount,
		TransactionDate:   date,
		Description:       req.Description,
		IsFee:             req.IsFee,
		ExcludeFromReport: req.ExcludeFromReport,
	}

	err = database.DB.Transaction(func(db *gorm.DB) error {
		if err := db.Create(&tx).Error; err != nil {
			return err
		}
		return db.Model(&finance.MoneySource{}).
			Where("id = ?", ms.ID).
			Update("balance", gorm.Expr("balance + ?", tx.BalanceDelta(tt.IsIncome))).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	c.JSON(http.StatusOK, buildTransactionDTO(tx))
}

func UpdateTransaction(c *gin.Context) {
	userID := c.GetUint("user_id")

	var existing finance.Transaction
	if err := database.DB.
		Preload("TransactionType").
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&existing).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(req.TransactionDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction date"})
		return
	}

	var tt finance.TransactionType
	if err := database.DB.First(&tt, req.TransactionTypeID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown transaction type"})
		return
	}
	var ms finance.MoneySource
	if err := database.DB.
		Where("id = ? AND user_id = ?", req.MoneySourceID, userID).
		First(&ms).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown money source"})
		return
	}

	err = database.DB.Transaction(func(db *gorm.DB) error {
		// roll back the old effect before applying the new one
		if err := db.Model(&finance.MoneySource{}).
			Where("id = ?", existing.MoneySourceID).
			Update("balance", gorm.Expr("balance - ?", existing.BalanceDelta(existing.TransactionType.IsIncome))).Error; err != nil {
			return err
		}

		existing.TransactionTypeID = req.TransactionTypeID
		existing.CategoryID = req.CategoryID
		existing.MoneySourceID = req.MoneySourceID
		existing.Amount = req.Amount
		existing.TransactionDate = date
		existing.Description = req.Description
		existing.IsFee = req.IsFee
		existing.ExcludeFromReport = req.ExcludeFromReport
		if err := db.Save(&existing).Error; err != nil {
			return err
		}

		return db.Model(&finance.MoneySource{}).
			Where("id = ?", req.MoneySourceID).
			Update("balance", gorm.Expr("balance + ?", existing.BalanceDelta(tt.IsIncome))).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}

	var updated finance.Transaction
	database.DB.
		Preload("TransactionType").
		Preload("Category").
		Preload("MoneySource").
		First(&updated, existing.ID)
	c.JSON(http.StatusOK, buildTransactionDTO(updated))
}

func DeleteTransaction(c *gin.Context) {
	userID := c.GetUint("user_id")

	var existing finance.Transaction
	if err := database.DB.
		Preload("TransactionType").
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&existing).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	err := database.DB.Transaction(func(db *gorm.DB) error {
		if err := db.Model(&finance.MoneySource{}).
			Where("id = ?", existing.MoneySourceID).
			Update("balance", gorm.Expr("balance - ?", existing.BalanceDelta(existing.TransactionType.IsIncome))).Error; err != nil {
			return err
		}
		return db.Delete(&existing).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}
