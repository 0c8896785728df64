package finance

import "time"

type SavingsGoal struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"index:idx_savings_goals_user_id" json:"userId"`
	Name          string     `gorm:"not null" json:"name"`
	Icon          string     `json:"icon"`
	TargetAmount  float64    `gorm:"not null" json:"targetAmount"`
	CurrentAmount float64    `json:"currentAmount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	IsCompleted   bool       `json:"isCompleted"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// GoalContribution records one deposit toward a goal. The SDK mirrors these
// locally so the goal chart still renders offline.
type GoalContribution struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GoalID    uint      `gorm:"index:idx_goal_contributions_goal_id" json:"goalId"`
	UserID    uint      `gorm:"index" json:"userId"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
