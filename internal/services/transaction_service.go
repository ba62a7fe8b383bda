package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"finsight/internal/models/db_models"
	"finsight/internal/models/response_models"
	"finsight/internal/repositories"
	"finsight/pkg/utils"

	"github.com/google/uuid"
)

type TransactionServiceInterface interface {
	ListTransactions(ctx context.Context, accountID uuid.UUID, page int, pageSize int) ([]response_models.TransactionResponse, error)
	// CategorizeTransactions asks the advisor for a category per
	// uncategorized merchant and applies the suggestions. Returns the
	// number of transactions categorized.
	CategorizeTransactions(ctx context.Context, accountID uuid.UUID) (int, error)
}

type TransactionService struct {
	txRepo       repositories.TransactionRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	advisor      utils.AdvisorClientInterface
}

func NewTransactionService(
	txRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	advisor utils.AdvisorClientInterface,
) TransactionServiceInterface {
	return &TransactionService{
		txRepo:       txRepo,
		categoryRepo: categoryRepo,
		advisor:      advisor,
	}
}

func (t *TransactionService) ListTransactions(ctx context.Context, accountID uuid.UUID, page int, pageSize int) ([]response_models.TransactionResponse, error) {

	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	txns, err := t.txRepo.ListByAccountPaged(ctx, accountID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		resp := response_models.TransactionResponse{
			ID:              txn.ID.String(),
			BankAccountID:   txn.BankAccountID.String(),
			MerchantName:    txn.MerchantName,
			Amount:          txn.Amount,
			Currency:        txn.Currency,
			TransactionDate: utils.FormatDate(txn.TransactionDate),
		}
		if txn.Category != nil {
			resp.Category = txn.Category.Slug
		}
		out = append(out, resp)
	}
	return out, nil
}

const categorizationBatchSize = 50

func (t *TransactionService) CategorizeTransactions(ctx context.Context, accountID uuid.UUID) (int, error) {

	txns, err := t.txRepo.ListUncategorized(ctx, accountID, categorizationBatchSize)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	if len(txns) == 0 {
		return 0, nil
	}

	merchants := uniqueMerchants(txns)

	categories, err := t.categoryRepo.ListAll(ctx)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	slugs := make([]string, 0, len(categories))
	for _, c := range categories {
		slugs = append(slugs, c.Slug)
	}
	if len(slugs) == 0 {
		slugs = defaultCategorySlugs
	}

	raw, err := t.advisor.SuggestCategories(ctx, merchants, slugs)
	if err != nil {
		log.Printf("Advisor categorization failed: %v", err)
		return 0, utils.ErrAdvisorUnavailable
	}

	var assignments map[string]string
	if err := json.Unmarshal([]byte(raw), &assignments); err != nil {
		log.Printf("Advisor returned unusable categorization: %v", err)
		return 0, utils.ErrAdvisorUnavailable
	}

	categorized := 0
	for merchant, slug := range assignments {
		slug = strings.ToLower(strings.TrimSpace(slug))
		if slug == "" {
			continue
		}
		category, err := t.categoryRepo.EnsureBySlug(ctx, slug)
		if err != nil || category == nil {
			log.Printf("Skipping category %q: %v", slug, err)
			continue
		}
		if err := t.txRepo.AssignCategoryByMerchant(ctx, accountID, merchant, category.ID); err != nil {
			return categorized, utils.ErrDatabaseError
		}
		categorized++
	}

	return categorized, nil
}

var defaultCategorySlugs = []string{
	"groceries", "dining", "transport", "utilities", "entertainment",
	"subscriptions", "health", "shopping", "travel", "other",
}

func uniqueMerchants(txns []db_models.Transaction) []string {
	seen := make(map[string]bool)
	var merchants []string
	for _, txn := range txns {
		if seen[txn.MerchantName] {
			continue
		}
		seen[txn.MerchantName] = true
		merchants = append(merchants, txn.MerchantName)
	}
	return merchants
}
