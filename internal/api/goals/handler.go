package goals

import (
	"net/http"
	"time"

	"finmate/database"
	"finmate/internal/domain/finance"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type goalRequest struct {
	Name         string     `json:"name" binding:"required"`
	Icon         string     `json:"icon"`
	TargetAmount float64    `json:"targetAmount" binding:"required,gt=0"`
	Deadline     *time.Time `json:"deadline"`
}

func ListGoals(c *gin.Context) {
	userID := c.GetUint("user_id")

	var goals []finance.SavingsGoal
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&goals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load goals"})
		return
	}
	c.JSON(http.StatusOK, goals)
}

func CreateGoal(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal := finance.SavingsGoal{
		UserID:       userID,
		Name:         req.Name,
		Icon:         req.Icon,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
	}
	if err := database.DB.Create(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create goal"})
		return
	}
	c.JSON(http.StatusOK, goal)
}

func UpdateGoal(c *gin.Context) {
	userID := c.GetUint("user_id")

	var goal finance.SavingsGoal
	if err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&goal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}

	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal.Name = req.Name
	goal.Icon = req.Icon
	goal.TargetAmount = req.TargetAmount
	goal.Deadline = req.Deadline
	goal.IsCompleted = goal.CurrentAmount >= goal.TargetAmount

	if err := database.DB.Save(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update goal"})
		return
	}
	c.JSON(http.StatusOK, goal)
}

func DeleteGoal(c *gin.Context) {
	userID := c.GetUint("user_id")

	var goal finance.SavingsGoal
	if err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&goal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}

	err := database.DB.Transaction(func(db *gorm.DB) error {
		if err := db.Where("goal_id = ?", goal.ID).
			Delete(&finance.GoalContribution{}).Error; err != nil {
			return err
		}
		return db.Delete(&goal).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete goal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted"})
}

func ListContributions(c *gin.Context) {
	userID := c.GetUint("user_id")

	var goal finance.SavingsGoal
	if err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&goal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}

	var contributions []finance.GoalContribution
	if err := database.DB.
		Where("goal_id = ?", goal.ID).
		Order("created_at DESC").
		Find(&contributions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contributions"})
		return
	}
	c.JSON(http.StatusOK, contributions)
}

func AddContribution(c *gin.Context) {
	userID := c.GetUint("user_id")

	var goal finance.SavingsGoal
	if err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&goal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}

	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
		Note   *string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contribution := finance.GoalContribution{
		GoalID: goal.ID,
		UserID: userID,
		Amount: req.Amount,
		Note:   req.Note,
	}

	err := database.DB.Transaction(func(db *gorm.DB) error {
		if err := db.Create(&contribution).Error; err != nil {
			return err
		}
		goal.CurrentAmount += req.Amount
		goal.IsCompleted = goal.CurrentAmount >= goal.TargetAmount
		return db.Save(&goal).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add contribution"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contribution": contribution,
		"goal":         goal,
	})
}
