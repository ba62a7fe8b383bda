package response_models

import "github.com/shopspring/decimal"

type SavingsPlanActionResponse struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	HowTo               string          `json:"how_to"`
	MonthlySavings      decimal.Decimal `json:"monthly_savings"`
	CurrentSpending     decimal.Decimal `json:"current_spending"`
	RecommendedSpending decimal.Decimal `json:"recommended_spending"`
	Category            string          `json:"category"`
	Difficulty          string          `json:"difficulty"`
	Impact              string          `json:"impact"`
	Priority            int             `json:"priority"`
	IsEssentialCut      bool            `json:"is_essential_cut"`
	RelatedMerchants    []string        `json:"related_merchants"`
	Status              string          `json:"status"`
	AcceptedAt          *int64          `json:"accepted_at,omitempty"`
	RespondedAt         *int64          `json:"responded_at,omitempty"`
}

type SavingsTargetResponse struct {
	ID            string          `json:"id"`
	MonthlyTarget decimal.Decimal `json:"monthly_target"`
	Motivation    string          `json:"motivation"`
	CreatedAt     int64           `json:"created_at"`
}

type SavingsPlanResponse struct {
	Target           SavingsTargetResponse       `json:"target"`
	Actions          []SavingsPlanActionResponse `json:"actions"`
	ProjectedMonthly decimal.Decimal             `json:"projected_monthly"`
}
