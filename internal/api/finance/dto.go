package finance

import "time"

type MoneySourceDTO struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"userId"`
	AccountTypeID   uint      `json:"accountTypeId"`
	AccountTypeName string    `json:"accountTypeName"`
	Name            string    `json:"name"`
	Icon            string    `json:"icon"`
	Color           string    `json:"color"`
	Balance         float64   `json:"balance"`
	Currency        string    `json:"currency"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type MoneySourceGroupDTO struct {
	AccountTypeID   uint             `json:"accountTypeId"`
	AccountTypeName string           `json:"accountTypeName"`
	DisplayOrder    int              `json:"displayOrder"`
	TotalBalance    float64          `json:"totalBalance"`
	MoneySources    []MoneySourceDTO `json:"moneySources"`
}

type TransactionDTO struct {
	ID                   uint      `json:"id"`
	UserID               uint      `json:"userId"`
	TransactionTypeID    uint      `json:"transactionTypeId"`
	TransactionTypeName  string    `json:"transactionTypeName"`
	TransactionTypeColor string    `json:"transactionTypeColor"`
	IsIncome             bool      `json:"isIncome"`
	MoneySourceID        uint      `json:"moneySourceId"`
	MoneySourceName      string    `json:"moneySourceName"`
	MoneySourceIcon      string    `json:"moneySourceIcon"`
	CategoryID           uint      `json:"categoryId"`
	CategoryName         string    `json:"categoryName"`
	CategoryIcon         string    `json:"categoryIcon"`
	Amount               float64   `json:"amount"`
	TransactionDate      time.Time `json:"transactionDate"`
	Description          *string   `json:"description,omitempty"`
	IsFee                bool      `json:"isFee"`
	ExcludeFromReport    bool      `json:"excludeFromReport"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type TransactionListResponse struct {
	TotalCount   int64            `json:"totalCount"`
	Page         int              `json:"page"`
	PageSize     int              `json:"pageSize"`
	Transactions []TransactionDTO `json:"transactions"`
}

type CategoryStatDTO struct {
	CategoryID   uint    `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	CategoryIcon string  `json:"categoryIcon"`
	Amount       float64 `json:"amount"`
	Percentage   float64 `json:"percentage"`
	Color        string  `json:"color"`
}

type OverviewReportDTO struct {
	TotalIncome   float64           `json:"totalIncome"`
	TotalExpense  float64           `json:"totalExpense"`
	Difference    float64           `json:"difference"`
	CategoryStats []CategoryStatDTO `json:"categoryStats"`
}

type CreateTransactionRequest struct {
	TransactionTypeID uint    `json:"transactionTypeId" binding:"required"`
	CategoryID        uint    `json:"categoryId" binding:"required"`
	MoneySourceID     uint    `json:"moneySourceId" binding:"required"`
	Amount            float64 `json:"amount" binding:"required,gt=0"`
	TransactionDate   string  `json:"transactionDate" binding:"required"`
	Description       *string `json:"description"`
	IsFee             bool    `json:"isFee"`
	ExcludeFromReport bool    `json:"excludeFromReport"`
}
