package response_models

import "github.com/shopspring/decimal"

type SubscriptionResponse struct {
	ID           string          `json:"id"`
	MerchantKey  string          `json:"merchant_key"`
	MerchantName string          `json:"merchant_name"`
	Amount       decimal.Decimal `json:"amount"`
	IntervalDays int             `json:"interval_days"`
	Status       string          `json:"status"`
	FirstSeen    string          `json:"first_seen"`
	LastSeen     string          `json:"last_seen"`
}

type SubscriptionListResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
	TotalMonthly  decimal.Decimal        `json:"total_monthly"`
	TotalAnnual   decimal.Decimal        `json:"total_annual"`
}

type DetectionResponse struct {
	Detected int `json:"detected"`
}
