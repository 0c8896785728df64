package finance

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"finmate/database"
	"finmate/internal/domain/finance"

	"github.com/gin-gonic/gin"
)

func reportRange(c *gin.Context) (time.Time, time.Time) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	if raw := c.Query("from"); raw != "" {
		if t, err := parseDate(raw); err == nil {
			from = t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := parseDate(raw); err == nil {
			to = t
		}
	}
	return from, to
}

// GET /reports/overview?from=&to= — defaults to the current month.
func GetOverviewReport(c *gin.Context) {
	userID := c.GetUint("user_id")
	from, to := reportRange(c)

	var txs []finance.Transaction
	if err := database.DB.
		Preload("TransactionType").
		Preload("Category").
		Where("user_id = ? AND exclude_from_report = ? AND transaction_date >= ? AND transaction_date < ?",
			userID, false, from, to).
		Find(&txs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	report := OverviewReportDTO{CategoryStats: []CategoryStatDTO{}}
	byCategory := map[uint]*CategoryStatDTO{}

	for _, t := range txs {
		if t.TransactionType.IsIncome {
			report.TotalIncome += t.Amount
			continue
		}
		report.TotalExpense += t.Amount

		stat, ok := byCategory[t.CategoryID]
		if !ok {
			stat = &CategoryStatDTO{
				CategoryID:   t.CategoryID,
				CategoryName: t.Category.Name,
				CategoryIcon: t.Category.Icon,
				Color:        t.Category.Color,
			}
			byCategory[t.CategoryID] = stat
		}
		stat.Amount += t.Amount
	}
	report.Difference = report.TotalIncome - report.TotalExpense

	for _, stat := range byCategory {
		if report.TotalExpense > 0 {
			stat.Percentage = stat.Amount / report.TotalExpense * 100
		}
		report.CategoryStats = append(report.CategoryStats, *stat)
	}
	// largest spend first
	for i := 0; i < len(report.CategoryStats); i++ {
		for j := i + 1; j < len(report.CategoryStats); j++ {
			if report.CategoryStats[j].Amount > report.CategoryStats[i].Amount {
				report.CategoryStats[i], report.CategoryStats[j] = report.CategoryStats[j], report.CategoryStats[i]
			}
		}
	}

	c.JSON(http.StatusOK, report)
}

// GET /reports/export — CSV download, gated behind an active plan.
func ExportTransactionsCSV(c *gin.Context) {
	userID := c.GetUint("user_id")
	from, to := reportRange(c)

	var txs []finance.Transaction
	if err := database.DB.
		Preload("TransactionType").
		Preload("Category").
		Preload("MoneySource").
		Where("user_id = ? AND transaction_date >= ? AND transaction_date < ?", userID, from, to).
		Order("transaction_date ASC").
		Find(&txs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export transactions"})
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.csv", from.Format("2006-01-02"), to.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"date", "type", "category", "money_source", "amount", "description"})
	for _, t := range txs {
		desc := ""
		if t.Description != nil {
			desc = *t.Description
		}
		_ = w.Write([]string{
			t.TransactionDate.Format("2006-01-02"),
			t.TransactionType.Name,
			t.Category.Name,
			t.MoneySource.Name,
			fmt.Sprintf("%.2f", t.Amount),
			desc,
		})
	}
	w.Flush()
}
