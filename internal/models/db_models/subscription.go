package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SubscriptionStatus string

const (
	SubStatusActive    SubscriptionStatus = "active"
	SubStatusUnused    SubscriptionStatus = "unused"
	SubStatusCancelled SubscriptionStatus = "cancelled"
)

// Subscription is a recurring charge detected from a user's transaction
// history. One row per (account, merchant key); re-detection updates the
// existing row instead of inserting a new one.
type Subscription struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index;uniqueIndex:idx_subscriptions_account_merchant"`

	MerchantKey  string          `gorm:"uniqueIndex:idx_subscriptions_account_merchant"`
	MerchantName string          // last observed raw merchant name
	Amount       decimal.Decimal `gorm:"type:numeric(14,2)"` // last observed charge
	IntervalDays int

	Status    SubscriptionStatus `gorm:"index;default:active"`
	FirstSeen time.Time          `gorm:"type:date"`
	LastSeen  time.Time          `gorm:"type:date"`

	Account Account `gorm:"foreignKey:AccountID"`
}
