package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Transaction struct {
	BaseModel
	AccountID     uuid.UUID `gorm:"index"`
	BankAccountID uuid.UUID `gorm:"index"`

	MerchantName    string          `gorm:"index"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2)"`
	Currency        string          `gorm:"size:3"`
	TransactionDate time.Time       `gorm:"type:date;index"`

	CategoryID *uuid.UUID `gorm:"index"`

	// Gateway fields
	Provider      string `gorm:"index"`
	ProviderTxnID string `gorm:"uniqueIndex"` // idempotency across sync runs

	// Raw provider payload, kept for re-categorization
	Raw datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Account     Account     `gorm:"foreignKey:AccountID"`
	BankAccount BankAccount `gorm:"foreignKey:BankAccountID"`
	Category    *Category   `gorm:"foreignKey:CategoryID"`
}
