package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"finsight/internal/models/db_models"
	"finsight/internal/repositories"
	"finsight/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type BankProviderConfig struct {
	BaseURL      string // aggregation API base, e.g. sandbox vs production
	APIKey       string
	ProviderName string // stored on Transaction.Provider
	Timeout      time.Duration
}

// ProviderTransaction is one row as returned by the aggregation provider.
type ProviderTransaction struct {
	ID           string          `json:"id"`
	MerchantName string          `json:"merchant_name"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Date         string          `json:"date"` // YYYY-MM-DD
}

// BankProviderInterface is the opaque bank-aggregation provider.
type BankProviderInterface interface {
	FetchTransactions(ctx context.Context, providerAccountID string, since *time.Time) ([]ProviderTransaction, error)
}

type httpBankProvider struct {
	cfg    BankProviderConfig
	client *http.Client
}

func NewHTTPBankProvider(cfg BankProviderConfig) BankProviderInterface {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &httpBankProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *httpBankProvider) FetchTransactions(ctx context.Context, providerAccountID string, since *time.Time) ([]ProviderTransaction, error) {

	url := fmt.Sprintf("%s/accounts/%s/transactions", p.cfg.BaseURL, providerAccountID)
	if since != nil {
		url += "?since=" + since.Format(utils.DateLayout)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bank provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("bank provider status %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Transactions []ProviderTransaction `json:"transactions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("bank provider payload: %w", err)
	}
	return payload.Transactions, nil
}

type BankSyncServiceInterface interface {
	// SyncBankAccount pulls new provider transactions for the bank account
	// and inserts the ones not seen before. Returns the number imported.
	SyncBankAccount(ctx context.Context, bankAccountID string, accountID uuid.UUID) (int, error)
}

type BankSyncService struct {
	bankAccountRepo repositories.BankAccountRepositoryInterface
	txRepo          repositories.TransactionRepositoryInterface
	provider        BankProviderInterface
	providerName    string
}

func NewBankSyncService(
	bankAccountRepo repositories.BankAccountRepositoryInterface,
	txRepo repositories.TransactionRepositoryInterface,
	provider BankProviderInterface,
	providerName string,
) BankSyncServiceInterface {
	return &BankSyncService{
		bankAccountRepo: bankAccountRepo,
		txRepo:          txRepo,
		provider:        provider,
		providerName:    providerName,
	}
}

func (s *BankSyncService) SyncBankAccount(ctx context.Context, bankAccountID string, accountID uuid.UUID) (int, error) {

	bankUUID, err := uuid.Parse(bankAccountID)
	if err != nil {
		return 0, utils.ErrBankAccountNotFound
	}

	bankAccount, err := s.bankAccountRepo.GetByIDForAccount(ctx, bankUUID, accountID)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	if bankAccount == nil {
		return 0, utils.ErrBankAccountNotFound
	}

	var since *time.Time
	if bankAccount.LastSyncedAt != nil {
		t := time.Unix(*bankAccount.LastSyncedAt, 0)
		since = &t
	}

	rows, err := s.provider.FetchTransactions(ctx, bankAccount.ProviderAccountID, since)
	if err != nil {
		log.Printf("Bank provider fetch failed for %s: %v", bankAccount.ProviderAccountID, err)
		return 0, utils.ErrBankProviderUnavailable
	}

	txns := make([]db_models.Transaction, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse(utils.DateLayout, row.Date)
		if err != nil {
			log.Printf("Skipping provider txn %s: bad date %q", row.ID, row.Date)
			continue
		}
		raw, _ := json.Marshal(row)
		txns = append(txns, db_models.Transaction{
			AccountID:       bankAccount.AccountID,
			BankAccountID:   bankAccount.ID,
			MerchantName:    row.MerchantName,
			Amount:          row.Amount,
			Currency:        row.Currency,
			TransactionDate: date,
			Provider:        s.providerName,
			ProviderTxnID:   fmt.Sprintf("%s:%s", s.providerName, row.ID),
			Raw:             datatypes.JSON(raw),
		})
	}

	imported, err := s.txRepo.InsertIgnoreDuplicates(ctx, txns)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}

	if err := s.bankAccountRepo.UpdateLastSyncedAt(ctx, bankAccount.ID, utils.NowUnixSeconds()); err != nil {
		log.Printf("Failed to update last_synced_at for %s: %v", bankAccount.ID, err)
	}

	return imported, nil
}
