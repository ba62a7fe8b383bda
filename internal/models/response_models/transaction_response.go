package response_models

import "github.com/shopspring/decimal"

type TransactionResponse struct {
	ID              string          `json:"id"`
	BankAccountID   string          `json:"bank_account_id"`
	MerchantName    string          `json:"merchant_name"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	TransactionDate string          `json:"transaction_date"`
	Category        string          `json:"category,omitempty"`
}

type CategorizationResponse struct {
	Categorized int `json:"categorized"`
}

type SyncResponse struct {
	Imported int `json:"imported"`
}
