package admin

import (
	"net/http"
	"strconv"
	"time"

	"finmate/database"
	"finmate/internal/domain/premium"
	"finmate/internal/domain/users"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type adminUserDTO struct {
	ID          uint      `json:"id"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	IsVerified  bool      `json:"isVerified"`
	IsPremium   bool      `json:"isPremium"`
	Plan        string    `json:"plan,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func buildAdminUserDTO(u users.User) adminUserDTO {
	dto := adminUserDTO{
		ID:          u.ID,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		Role:        u.Role,
		Status:      u.Status,
		IsVerified:  u.IsVerified,
		CreatedAt:   u.CreatedAt,
	}

	var sub premium.Subscription
	if err := database.DB.
		Where("user_id = ? AND is_active = ?", u.ID, true).
		Order("expires_at DESC").
		First(&sub).Error; err == nil {
		if st := sub.Status(); st.IsActiveAt(time.Now()) {
			dto.IsPremium = true
			dto.Plan = string(st.Plan)
		}
	}
	return dto
}

// GET /admin/users?page=&pageSize=&search=&status=
func ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	q := database.DB.Model(&users.User{})
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("email ILIKE ? OR full_name ILIKE ?", like, like)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	q.Count(&total)

	var list []users.User
	if err := q.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	dtos := make([]adminUserDTO, 0, len(list))
	for _, u := range list {
		dtos = append(dtos, buildAdminUserDTO(u))
	}

	c.JSON(http.StatusOK, gin.H{
		"totalCount": total,
		"page":       page,
		"pageSize":   pageSize,
		"users":      dtos,
	})
}

func GetUser(c *gin.Context) {
	var u users.User
	if err := database.DB.First(&u, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, buildAdminUserDTO(u))
}

func CreateUser(c *gin.Context) {
	var body struct {
		FullName    string `json:"fullName" binding:"required"`
		PhoneNumber string `json:"phoneNumber"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=6"`
		Role        string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing int64
	database.DB.Model(&users.User{}).Where("email = ?", body.Email).Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	password := string(hashed)

	role := body.Role
	if role == "" {
		role = "user"
	}

	u := users.User{
		FullName:     body.FullName,
		PhoneNumber:  body.PhoneNumber,
		Email:        body.Email,
		Password:     &password,
		AuthProvider: "local",
		Role:         role,
		Status:       users.StatusActive,
		IsVerified:   true, // admin-created accounts skip email verification
	}
	if err := database.DB.Create(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusOK, buildAdminUserDTO(u))
}

func UpdateUser(c *gin.Context) {
	var u users.User
	if err := database.DB.First(&u, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var body struct {
		FullName    *string `json:"fullName"`
		PhoneNumber *string `json:"phoneNumber"`
		Role        *string `json:"role"`
		Status      *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.FullName != nil {
		u.FullName = *body.FullName
	}
	if body.PhoneNumber != nil {
		u.PhoneNumber = *body.PhoneNumber
	}
	if body.Role != nil {
		u.Role = *body.Role
	}
	if body.Status != nil {
		if !users.ValidStatus(*body.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		u.Status = *body.Status
	}

	if err := database.DB.Save(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, buildAdminUserDTO(u))
}

func DeleteUser(c *gin.Context) {
	var u users.User
	if err := database.DB.First(&u, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if u.Role == "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete an admin account"})
		return
	}
	if err := database.DB.Delete(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func setUserStatus(c *gin.Context, status string) {
	var u users.User
	if err := database.DB.First(&u, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	u.Status = status
	if err := database.DB.Save(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, buildAdminUserDTO(u))
}

func ActivateUser(c *gin.Context)   { setUserStatus(c, users.StatusActive) }
func DeactivateUser(c *gin.Context) { setUserStatus(c, users.StatusInactive) }

// GET /admin/users/chart?days= — daily signup counts for the growth chart.
func GetUserChart(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days < 1 || days > 365 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days).Truncate(24 * time.Hour)

	var rows []struct {
		Day   time.Time `json:"day"`
		Count int64     `json:"count"`
	}
	if err := database.DB.Model(&users.User{}).
		Select("DATE_TRUNC('day', created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build chart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "points": rows})
}

func GetUserStats(c *gin.Context) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var total, verified, premiumCount, today, thisMonth int64
	database.DB.Model(&users.User{}).Count(&total)
	database.DB.Model(&users.User{}).Where("is_verified = ?", true).Count(&verified)
	database.DB.Model(&premium.Subscription{}).
		Where("is_active = ? AND expires_at > ?", true, now).
		Distinct("user_id").
		Count(&premiumCount)
	database.DB.Model(&users.User{}).Where("created_at >= ?", startOfDay).Count(&today)
	database.DB.Model(&users.User{}).Where("created_at >= ?", startOfMonth).Count(&thisMonth)

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":    total,
		"verifiedUsers": verified,
		"premiumUsers":  premiumCount,
		"newToday":      today,
		"newThisMonth":  thisMonth,
	})
}
