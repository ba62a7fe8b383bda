package services

import (
	"context"
	"sort"
	"time"

	"finsight/internal/models/db_models"
	"finsight/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeTransactionRepo struct {
	txns map[uuid.UUID][]db_models.Transaction
	seen map[string]bool // provider txn ids already inserted
	err  error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{
		txns: make(map[uuid.UUID][]db_models.Transaction),
		seen: make(map[string]bool),
	}
}

func (f *fakeTransactionRepo) ListByAccountOrdered(_ context.Context, accountID uuid.UUID) ([]db_models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]db_models.Transaction, len(f.txns[accountID]))
	copy(out, f.txns[accountID])
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionDate.Before(out[j].TransactionDate) })
	return out, nil
}

func (f *fakeTransactionRepo) ListByAccountPaged(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]db_models.Transaction, error) {
	return f.ListByAccountOrdered(ctx, accountID)
}

func (f *fakeTransactionRepo) ListUncategorized(_ context.Context, accountID uuid.UUID, limit int) ([]db_models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []db_models.Transaction
	for _, txn := range f.txns[accountID] {
		if txn.CategoryID == nil {
			out = append(out, txn)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) InsertIgnoreDuplicates(_ context.Context, txns []db_models.Transaction) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	inserted := 0
	for _, txn := range txns {
		if f.seen[txn.ProviderTxnID] {
			continue
		}
		f.seen[txn.ProviderTxnID] = true
		txn.ID = uuid.New()
		f.txns[txn.AccountID] = append(f.txns[txn.AccountID], txn)
		inserted++
	}
	return inserted, nil
}

func (f *fakeTransactionRepo) AssignCategoryByMerchant(_ context.Context, accountID uuid.UUID, merchantName string, categoryID uuid.UUID) error {
	list := f.txns[accountID]
	for i := range list {
		if list[i].MerchantName == merchantName && list[i].CategoryID == nil {
			id := categoryID
			list[i].CategoryID = &id
		}
	}
	return f.err
}

type fakeSubscriptionRepo struct {
	rows    map[string]*db_models.Subscription // accountID|merchantKey
	created int
	updated int
	err     error
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{rows: make(map[string]*db_models.Subscription)}
}

func subKey(accountID uuid.UUID, merchantKey string) string {
	return accountID.String() + "|" + merchantKey
}

// Upsert mirrors the ON CONFLICT update set of the real repository:
// status and first_seen are never touched on an existing row.
func (f *fakeSubscriptionRepo) Upsert(_ context.Context, sub *db_models.Subscription) error {
	if f.err != nil {
		return f.err
	}
	key := subKey(sub.AccountID, sub.MerchantKey)
	if existing, ok := f.rows[key]; ok {
		existing.MerchantName = sub.MerchantName
		existing.Amount = sub.Amount
		existing.IntervalDays = sub.IntervalDays
		existing.LastSeen = sub.LastSeen
		f.updated++
		return nil
	}
	cp := *sub
	cp.ID = uuid.New()
	f.rows[key] = &cp
	f.created++
	return nil
}

func (f *fakeSubscriptionRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]db_models.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []db_models.Subscription
	for _, row := range f.rows {
		if row.AccountID == accountID {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MerchantKey < out[j].MerchantKey })
	return out, nil
}

func (f *fakeSubscriptionRepo) GetByIDForAccount(_ context.Context, subscriptionID uuid.UUID, accountID uuid.UUID) (*db_models.Subscription, error) {
	for _, row := range f.rows {
		if row.ID == subscriptionID && row.AccountID == accountID {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriptionRepo) UpdateStatus(_ context.Context, subscriptionID uuid.UUID, status db_models.SubscriptionStatus) error {
	for _, row := range f.rows {
		if row.ID == subscriptionID {
			row.Status = status
		}
	}
	return f.err
}

type fakeSavingsRepo struct {
	target   *db_models.SavingsTarget
	actions  map[uuid.UUID]*db_models.SavingsPlanAction
	replaced int
	err      error
}

func newFakeSavingsRepo() *fakeSavingsRepo {
	return &fakeSavingsRepo{actions: make(map[uuid.UUID]*db_models.SavingsPlanAction)}
}

func (f *fakeSavingsRepo) GetActiveTargetByAccount(_ context.Context, accountID uuid.UUID) (*db_models.SavingsTarget, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.target == nil || f.target.AccountID != accountID {
		return nil, nil
	}
	cp := *f.target
	cp.Actions = nil
	for _, a := range f.actions {
		if a.SavingsTargetID == f.target.ID {
			cp.Actions = append(cp.Actions, *a)
		}
	}
	sort.Slice(cp.Actions, func(i, j int) bool { return cp.Actions[i].Priority < cp.Actions[j].Priority })
	return &cp, nil
}

func (f *fakeSavingsRepo) ReplaceTarget(_ context.Context, target *db_models.SavingsTarget, actions []db_models.SavingsPlanAction) error {
	if f.err != nil {
		return f.err
	}
	f.replaced++
	target.ID = uuid.New()
	target.CreatedAt = time.Now().Unix()
	f.target = target
	f.actions = make(map[uuid.UUID]*db_models.SavingsPlanAction)
	for i := range actions {
		actions[i].ID = uuid.New()
		actions[i].SavingsTargetID = target.ID
		actions[i].AccountID = target.AccountID
		cp := actions[i]
		f.actions[cp.ID] = &cp
	}
	return nil
}

func (f *fakeSavingsRepo) UpdateActionResponse(_ context.Context, actionID uuid.UUID, accountID uuid.UUID, mutate func(*db_models.SavingsPlanAction) error) (*db_models.SavingsPlanAction, error) {
	if f.err != nil {
		return nil, f.err
	}
	action, ok := f.actions[actionID]
	if !ok || action.AccountID != accountID {
		return nil, nil
	}
	if err := mutate(action); err != nil {
		return nil, err
	}
	cp := *action
	return &cp, nil
}

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*db_models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*db_models.Account)}
}

func (f *fakeAccountRepo) GetByID(_ context.Context, accountID uuid.UUID) (*db_models.Account, error) {
	return f.accounts[accountID], nil
}

type fakeAdvisor struct {
	planJSON       string
	categoriesJSON string
	err            error
	planCalls      int
}

func (f *fakeAdvisor) GeneratePlanActions(_ context.Context, _ utils.SavingsTargetPrompt, _ []utils.MerchantSpend) (string, error) {
	f.planCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.planJSON, nil
}

func (f *fakeAdvisor) SuggestCategories(_ context.Context, _ []string, _ []string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.categoriesJSON, nil
}

type fakeMailService struct {
	sent []string
}

func (f *fakeMailService) SendPlanReadyNotification(to string, _ string, _ int) error {
	f.sent = append(f.sent, to)
	return nil
}

type fakeBankProvider struct {
	rows []ProviderTransaction
	err  error
}

func (f *fakeBankProvider) FetchTransactions(_ context.Context, _ string, _ *time.Time) ([]ProviderTransaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakeBankAccountRepo struct {
	accounts map[uuid.UUID]*db_models.BankAccount
	synced   map[uuid.UUID]int64
}

func newFakeBankAccountRepo() *fakeBankAccountRepo {
	return &fakeBankAccountRepo{
		accounts: make(map[uuid.UUID]*db_models.BankAccount),
		synced:   make(map[uuid.UUID]int64),
	}
}

func (f *fakeBankAccountRepo) ListAll(_ context.Context) ([]db_models.BankAccount, error) {
	var out []db_models.BankAccount
	for _, ba := range f.accounts {
		out = append(out, *ba)
	}
	return out, nil
}

func (f *fakeBankAccountRepo) GetByIDForAccount(_ context.Context, bankAccountID uuid.UUID, accountID uuid.UUID) (*db_models.BankAccount, error) {
	ba, ok := f.accounts[bankAccountID]
	if !ok || ba.AccountID != accountID {
		return nil, nil
	}
	cp := *ba
	return &cp, nil
}

func (f *fakeBankAccountRepo) UpdateLastSyncedAt(_ context.Context, bankAccountID uuid.UUID, ts int64) error {
	f.synced[bankAccountID] = ts
	return nil
}

func mustDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func txnOn(accountID uuid.UUID, merchant string, amount string, date string) db_models.Transaction {
	return db_models.Transaction{
		AccountID:       accountID,
		MerchantName:    merchant,
		Amount:          decimal.RequireFromString(amount),
		Currency:        "EUR",
		TransactionDate: mustDate(date),
	}
}
