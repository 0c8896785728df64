package finance

import "time"

// TransactionType: income vs expense flavors (Chi tiêu, Thu tiền, ...).
type TransactionType struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Color    string `json:"color"`
	IsIncome bool   `json:"isIncome"`
}

type Category struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	Name              string `gorm:"not null" json:"name"`
	Icon              string `json:"icon"`
	Color             string `json:"color"`
	TransactionTypeID uint   `gorm:"index" json:"transactionTypeId"`
}

type Transaction struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	UserID            uint            `gorm:"index:idx_transactions_user_id" json:"userId"`
	TransactionTypeID uint            `json:"transactionTypeId"`
	TransactionType   TransactionType `json:"-"`
	CategoryID        uint            `json:"categoryId"`
	Category          Category        `json:"-"`
	MoneySourceID     uint            `json:"moneySourceId"`
	MoneySource       MoneySource     `json:"-"`
	Amount            float64         `gorm:"not null" json:"amount"`
	TransactionDate   time.Time       `gorm:"index" json:"transactionDate"`
	Description       *string         `json:"description,omitempty"`
	IsFee             bool            `json:"isFee"`
	ExcludeFromReport bool            `json:"excludeFromReport"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// BalanceDelta is the signed effect of this transaction on its money source.
func (t *Transaction) BalanceDelta(isIncome bool) float64 {
	if isIncome {
		return t.Amount
	}
	return -t.Amount
}

// DefaultTransactionTypes / DefaultCategories seed the catalog on first boot.
func DefaultTransactionTypes() []TransactionType {
	return []TransactionType{
		{Name: "Expense", Color: "#ef4444", IsIncome: false},
		{Name: "Income", Color: "#22c55e", IsIncome: true},
	}
}

func DefaultCategories(expenseTypeID, incomeTypeID uint) []Category {
	return []Category{
		{Name: "Food & Drinks", Icon: "🍜", Color: "#f97316", TransactionTypeID: expenseTypeID},
		{Name: "Transport", Icon: "🚌", Color: "#3b82f6", TransactionTypeID: expenseTypeID},
		{Name: "Shopping", Icon: "🛍️", Color: "#a855f7", TransactionTypeID: expenseTypeID},
		{Name: "Bills", Icon: "🧾", Color: "#64748b", TransactionTypeID: expenseTypeID},
		{Name: "Entertainment", Icon: "🎬", Color: "#ec4899", TransactionTypeID: expenseTypeID},
		{Name: "Salary", Icon: "💼", Color: "#22c55e", TransactionTypeID: incomeTypeID},
		{Name: "Bonus", Icon: "🎁", Color: "#eab308", TransactionTypeID: incomeTypeID},
		{Name: "Other Income", Icon: "💰", Color: "#14b8a6", TransactionTypeID: incomeTypeID},
	}
}
