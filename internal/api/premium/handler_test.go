package premium

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finmate/database"
	"finmate/internal/domain/premium"
	"finmate/internal/domain/users"
	"finmate/internal/domain/vouchers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		database.DB = prev
	})
	return db
}

func setupRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	r.GET("/premium/subscription", GetSubscription)
	r.POST("/premium/subscription", CreateSubscription)
	r.DELETE("/premium/subscription", CancelSubscription)
	r.GET("/premium/subscription/history", GetSubscriptionHistory)
	r.GET("/premium/plans", ListPlanPricing)
	return r
}

func createTestUser(t *testing.T, db *gorm.DB) users.User {
	t.Helper()
	u := users.User{
		FullName:     "Minh Tran",
		Email:        "minh@example.com",
		AuthProvider: "local",
		Role:         "user",
		Status:       users.StatusActive,
		IsVerified:   true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeSubscription(t *testing.T, w *httptest.ResponseRecorder) *SubscriptionDTO {
	t.Helper()
	var resp struct {
		Subscription *SubscriptionDTO `json:"subscription"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Subscription
}

func TestGetSubscriptionEmpty(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)
	r := setupRouter(u.ID)

	w := doJSON(t, r, http.MethodGet, "/premium/subscription", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeSubscription(t, w))
}

func TestCreateSubscriptionFresh(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)
	r := setupRouter(u.ID)

	w := doJSON(t, r, http.MethodPost, "/premium/subscription", gin.H{"plan": "1-year"})
	require.Equal(t, http.StatusOK, w.Code)

	sub := decodeSubscription(t, w)
	require.NotNil(t, sub)
	assert.Equal(t, "1-year", sub.Plan)
	assert.True(t, sub.IsActive)
	assert.WithinDuration(t, time.Now().Add(365*24*time.Hour), sub.ExpiresAt, time.Minute)
}

func TestCreateSubscriptionKeepsHigherBadge(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)
	r := setupRouter(u.ID)

	// an active 6-month entitlement with 10 days left
	now := time.Now()
	existing := premium.Subscription{
		UserID:      u.ID,
		Plan:        "6-month",
		PurchasedAt: now.Add(-170 * 24 * time.Hour),
		ExpiresAt:   now.Add(10 * 24 * time.Hour),
		IsActive:    true,
	}
	require.NoError(t, db.Create(&existing).Error)

	w := doJSON(t, r, http.MethodPost, "/premium/subscription", gin.H{"plan": "1-month"})
	require.Equal(t, http.StatusOK, w.Code)

	sub := decodeSubscription(t, w)
	require.NotNil(t, sub)
	// the cheaper top-up does not downgrade the badge
	assert.Equal(t, "6-month", sub.Plan)
	// and the 30 days stack on top of the remaining 10
	assert.WithinDuration(t, existing.ExpiresAt.Add(30*24*time.Hour), sub.ExpiresAt, time.Minute)

	// the superseded row is kept, inactive
	var old premium.Subscription
	require.NoError(t, db.First(&old, existing.ID).Error)
	assert.False(t, old.IsActive)
}

func TestCreateSubscriptionFreshStartAfterExpiry(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)
	r := setupRouter(u.ID)

	now := time.Now()
	expired := premium.Subscription{
		UserID:      u.ID,
		Plan:        "1-year",
		PurchasedAt: now.Add(-400 * 24 * time.Hour),
		ExpiresAt:   now.Add(-35 * 24 * time.Hour),
		IsActive:    true, // never cancelled, just lapsed
	}
	require.NoError(t, db.Create(&expired).Error)

	w := doJSON(t, r, http.MethodPost, "/premium/subscription", gin.H{"plan": "1-month"})
	require.Equal(t, http.StatusOK, w.Code)

	sub := decodeSubscription(t, w)
	require.NotNil(t, sub)
	// no ghost inheritance from the lapsed 1-year plan
	assert.Equal(t, "1-month", sub.Plan)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), sub.ExpiresAt, time.Minute)
}

func TestCreateSubscriptionUnknownPlan(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)
	r := setupRouter(u.ID)

	w := doJSON(t, r, http.MethodPost, "/premium/subscription", gin.H{"plan": "lifetime"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSubscriptionWithVoucher(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)
	r := setupRouter(u.ID)

	now := time.Now()
	v := vouchers.Voucher{
		Code:            "WELCOME50",
		DiscountPercent: 50,
		MaxUses:         10,
		ValidFrom:       now.Add(-time.Hour),
		ValidTo:         now.Add(24 * time.Hour),
		IsActive:        true,
	}
	require.NoError(t, db.Create(&v).Error)

	w := doJSON(t, r, http.MethodPost, "/premium/subscription", gin.H{
		"plan":        "1-month",
		"voucherCode": "welcome50",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated vouchers.Voucher
	require.NoError(t, db.First(&updated, v.ID).Error)
	assert.Equal(t, 1, updated.CurrentUses)
}

func TestCreateSubscriptionRejectsExpiredVoucher(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)
	r := setupRouter(u.ID)

	now := time.Now()
	v := vouchers.Voucher{
		Code:            "OLD10",
		DiscountPercent: 10,
		ValidFrom:       now.Add(-48 * time.Hour),
		ValidTo:         now.Add(-24 * time.Hour),
		IsActive:        true,
	}
	require.NoError(t, db.Create(&v).Error)

	w := doJSON(t, r, http.MethodPost, "/premium/subscription", gin.H{
		"plan":        "1-month",
		"voucherCode": "OLD10",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelSubscription(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)
	r := setupRouter(u.ID)

	w := doJSON(t, r, http.MethodPost, "/premium/subscription", gin.H{"plan": "6-month"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/premium/subscription", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// entitlement now reads as absent
	w = doJSON(t, r, http.MethodGet, "/premium/subscription", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeSubscription(t, w))

	// but the row survives in history
	var count int64
	db.Model(&premium.Subscription{}).Where("user_id = ?", u.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSubscriptionHistoryOrder(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)
	r := setupRouter(u.ID)

	for _, plan := range []string{"1-month", "6-month"} {
		w := doJSON(t, r, http.MethodPost, "/premium/subscription", gin.H{"plan": plan})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/premium/subscription/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Subscriptions []SubscriptionDTO `json:"subscriptions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Subscriptions, 2)

	// only the latest row stays active
	active := 0
	for _, s := range resp.Subscriptions {
		if s.IsActive {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestListPlanPricing(t *testing.T) {
	db := setupTestDB(t)
	_ = db
	r := setupRouter(0)

	w := doJSON(t, r, http.MethodGet, "/premium/plans", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Data    []premium.PlanPricing `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "1-month", resp.Data[0].PlanID)
}
