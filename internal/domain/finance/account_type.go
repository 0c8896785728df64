package finance

import "time"

// AccountType groups money sources on the balances page
// (cash, bank account, e-wallet, credit card, ...).
type AccountType struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null;uniqueIndex:idx_account_types_name" json:"name"`
	DisplayOrder int    `json:"displayOrder"`
	CreatedAt    time.Time
}

// DefaultAccountTypes seeds the catalog on first boot.
func DefaultAccountTypes() []AccountType {
	return []AccountType{
		{Name: "Cash", DisplayOrder: 1},
		{Name: "Bank Account", DisplayOrder: 2},
		{Name: "E-Wallet", DisplayOrder: 3},
		{Name: "Credit Card", DisplayOrder: 4},
		{Name: "Savings", DisplayOrder: 5},
	}
}
