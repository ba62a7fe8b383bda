package request_models

import "github.com/shopspring/decimal"

type CreateSavingsTargetRequest struct {
	MonthlyTarget decimal.Decimal `json:"monthly_target" binding:"required"`
	Motivation    string          `json:"motivation" binding:"required,max=500"`
}

type RespondToActionRequest struct {
	Response      string           `json:"response" binding:"required"`
	ReducedAmount *decimal.Decimal `json:"reduced_amount"`
}
