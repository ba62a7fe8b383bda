package db_models

import "github.com/google/uuid"

type BankAccount struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index"`

	Provider          string `gorm:"index"` // aggregation provider, e.g. "gocardless"
	ProviderAccountID string `gorm:"uniqueIndex"`
	DisplayName       string
	Currency          string `gorm:"size:3"`
	LastSyncedAt      *int64

	Account      Account       `gorm:"foreignKey:AccountID"`
	Transactions []Transaction `gorm:"foreignKey:BankAccountID"`
}
