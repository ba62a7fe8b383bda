package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type ActionStatus string

const (
	ActionStatusSuggested ActionStatus = "suggested"
	ActionStatusAccepted  ActionStatus = "accepted"
	ActionStatusReduced   ActionStatus = "reduced"
	ActionStatusCancelled ActionStatus = "cancelled"
	ActionStatusKept      ActionStatus = "kept"
)

type ActionDifficulty string

const (
	DifficultyEasy   ActionDifficulty = "easy"
	DifficultyMedium ActionDifficulty = "medium"
	DifficultyHard   ActionDifficulty = "hard"
)

// SavingsTarget is a user's monthly savings goal. One live target per
// account; setting a new target soft-deletes the previous one together
// with its actions.
type SavingsTarget struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index"`

	MonthlyTarget decimal.Decimal `gorm:"type:numeric(14,2)"`
	Motivation    string          `gorm:"type:text"`

	Account Account             `gorm:"foreignKey:AccountID"`
	Actions []SavingsPlanAction `gorm:"foreignKey:SavingsTargetID"`
}

// SavingsPlanAction is one advisor-suggested saving measure. Created in
// bulk when a target is set, then only mutated through the response state
// machine in the savings service.
type SavingsPlanAction struct {
	BaseModel
	AccountID       uuid.UUID `gorm:"index"`
	SavingsTargetID uuid.UUID `gorm:"index"`

	Title       string
	Description string `gorm:"type:text"`
	HowTo       string `gorm:"type:text"`

	MonthlySavings      decimal.Decimal `gorm:"type:numeric(14,2)"`
	CurrentSpending     decimal.Decimal `gorm:"type:numeric(14,2)"`
	RecommendedSpending decimal.Decimal `gorm:"type:numeric(14,2)"`

	Category         string
	Difficulty       ActionDifficulty
	Impact           string
	Priority         int `gorm:"index"`
	IsEssentialCut   bool
	RelatedMerchants pq.StringArray `gorm:"type:text[]"`

	Status      ActionStatus `gorm:"index;default:suggested"`
	AcceptedAt  *int64
	RespondedAt *int64

	SavingsTarget SavingsTarget `gorm:"foreignKey:SavingsTargetID"`
}
