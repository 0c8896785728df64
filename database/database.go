package database

import (
	"fmt"
	"log"
	"os"

	"finmate/internal/domain/billing"
	"finmate/internal/domain/finance"
	"finmate/internal/domain/posts"
	"finmate/internal/domain/premium"
	"finmate/internal/domain/users"
	"finmate/internal/domain/vouchers"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	if err := Seed(DB); err != nil {
		log.Fatal("❌ Seed error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

// Migrate runs AutoMigrate for all domain models. Split out so tests can
// point it at an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// core
		&users.User{},
		&users.VerificationToken{},
		&premium.Subscription{},
		&premium.PlanPricing{},
		&billing.Payment{},
		&vouchers.Voucher{},

		// finance
		&finance.AccountType{},
		&finance.MoneySource{},
		&finance.TransactionType{},
		&finance.Category{},
		&finance.Transaction{},
		&finance.SavingsGoal{},
		&finance.GoalContribution{},

		// content
		&posts.Post{},
	)
}

// Seed fills empty catalog tables (plan pricing, account types, transaction
// types + categories). Idempotent: only writes when a table is empty.
func Seed(db *gorm.DB) error {
	var count int64

	db.Model(&premium.PlanPricing{}).Count(&count)
	if count == 0 {
		pricing := premium.DefaultPricing()
		if err := db.Create(&pricing).Error; err != nil {
			return err
		}
	}

	db.Model(&finance.AccountType{}).Count(&count)
	if count == 0 {
		types := finance.DefaultAccountTypes()
		if err := db.Create(&types).Error; err != nil {
			return err
		}
	}

	db.Model(&finance.TransactionType{}).Count(&count)
	if count == 0 {
		txTypes := finance.DefaultTransactionTypes()
		if err := db.Create(&txTypes).Error; err != nil {
			return err
		}
		var expenseID, incomeID uint
		for _, tt := range txTypes {
			if tt.IsIncome {
				incomeID = tt.ID
			} else {
				expenseID = tt.ID
			}
		}
		cats := finance.DefaultCategories(expenseID, incomeID)
		if err := db.Create(&cats).Error; err != nil {
			return err
		}
	}

	return nil
}
