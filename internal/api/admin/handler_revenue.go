package admin

import (
	"net/http"
	"strconv"
	"time"

	"finmate/database"
	"finmate/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

func sumRevenue(from, to time.Time) float64 {
	var total float64
	database.DB.Model(&billing.Payment{}).
		Where("status = ? AND created_at >= ? AND created_at < ?", billing.PaymentPaid, from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total)
	return total
}

// GET /admin/revenue/chart?groupBy=day|week|month|year&days=
func GetRevenueChart(c *gin.Context) {
	groupBy := c.DefaultQuery("groupBy", "day")
	switch groupBy {
	case "day", "week", "month", "year":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "groupBy must be day, week, month or year"})
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days < 1 || days > 3650 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	var rows []struct {
		Bucket time.Time `json:"bucket"`
		Total  float64   `json:"total"`
		Count  int64     `json:"count"`
	}
	if err := database.DB.Model(&billing.Payment{}).
		Select("DATE_TRUNC('"+groupBy+"', created_at) AS bucket, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("status = ? AND created_at >= ?", billing.PaymentPaid, since).
		Group("bucket").
		Order("bucket ASC").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build revenue chart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"groupBy": groupBy,
		"days":    days,
		"points":  rows,
	})
}

// GET /admin/revenue/stats — today / this week / this month / this year,
// each with growth against the previous period.
func GetRevenueStats(c *gin.Context) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	startOfWeek := startOfDay.AddDate(0, 0, -(weekday - 1))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	type period struct {
		Total  float64 `json:"total"`
		Growth float64 `json:"growth"`
	}
	stat := func(from, to, prevFrom time.Time) period {
		cur := sumRevenue(from, to)
		prev := sumRevenue(prevFrom, from)
		p := period{Total: cur}
		if prev > 0 {
			p.Growth = (cur - prev) / prev * 100
		}
		return p
	}

	c.JSON(http.StatusOK, gin.H{
		"today": stat(startOfDay, now, startOfDay.AddDate(0, 0, -1)),
		"week":  stat(startOfWeek, now, startOfWeek.AddDate(0, 0, -7)),
		"month": stat(startOfMonth, now, startOfMonth.AddDate(0, -1, 0)),
		"year":  stat(startOfYear, now, startOfYear.AddDate(-1, 0, 0)),
	})
}

// GET /admin/revenue/year?year=
func GetRevenueByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil || year < 2000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(1, 0, 0)
	c.JSON(http.StatusOK, gin.H{"year": year, "total": sumRevenue(from, to)})
}

// GET /admin/revenue/month?year=&month=
func GetRevenueByMonth(c *gin.Context) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil || year < 2000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)
	c.JSON(http.StatusOK, gin.H{"year": year, "month": month, "total": sumRevenue(from, to)})
}

// GET /admin/revenue/range?from=&to=
func GetRevenueByRange(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
		return
	}
	to = to.AddDate(0, 0, 1) // inclusive end date
	if !to.After(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":  from.Format("2006-01-02"),
		"to":    c.Query("to"),
		"total": sumRevenue(from, to),
	})
}
