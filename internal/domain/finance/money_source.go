package finance

import "time"

// MoneySource is one account the user tracks. The server owns the balance:
// it only changes through transactions, never directly from the client.
type MoneySource struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"index:idx_money_sources_user_id" json:"userId"`
	AccountTypeID uint        `json:"accountTypeId"`
	AccountType   AccountType `json:"-"`
	Name          string      `gorm:"not null" json:"name"`
	Icon          string      `json:"icon"`
	Color         string      `json:"color"`
	Balance       float64     `json:"balance"`
	Currency      string      `gorm:"type:varchar(10);default:'VND'" json:"currency"`
	IsActive      bool        `gorm:"default:true" json:"isActive"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}
