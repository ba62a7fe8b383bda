package services

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"finsight/internal/models/db_models"
	"finsight/internal/models/response_models"
	"finsight/internal/repositories"
	"finsight/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SubscriptionServiceInterface interface {
	// DetectSubscriptions scans the account's full transaction history and
	// upserts one Subscription per recurring merchant group. Returns the
	// number of groups created or refreshed.
	DetectSubscriptions(ctx context.Context, accountID uuid.UUID) (int, error)
	ListSubscriptions(ctx context.Context, accountID uuid.UUID) (*response_models.SubscriptionListResponse, error)
	CancelSubscription(ctx context.Context, subscriptionID string, accountID uuid.UUID) (*response_models.SubscriptionResponse, error)
}

// IntervalRule is one accepted billing cadence. A merchant group matches
// when every inter-charge gap lands within Drift days of Days.
type IntervalRule struct {
	Days  int
	Drift int
}

type DetectorConfig struct {
	MinOccurrences  int
	AmountTolerance decimal.Decimal // allowed spread as a fraction of the median amount
	Intervals       []IntervalRule
}

func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		MinOccurrences:  3,
		AmountTolerance: decimal.NewFromFloat(0.05),
		Intervals: []IntervalRule{
			{Days: 7, Drift: 3},
			{Days: 14, Drift: 3},
			{Days: 30, Drift: 3},
			{Days: 90, Drift: 10},
			{Days: 365, Drift: 10},
		},
	}
}

type SubscriptionService struct {
	txRepo  repositories.TransactionRepositoryInterface
	subRepo repositories.SubscriptionRepositoryInterface
	cfg     DetectorConfig
}

func NewSubscriptionService(
	txRepo repositories.TransactionRepositoryInterface,
	subRepo repositories.SubscriptionRepositoryInterface,
	cfg DetectorConfig,
) SubscriptionServiceInterface {
	return &SubscriptionService{
		txRepo:  txRepo,
		subRepo: subRepo,
		cfg:     cfg,
	}
}

func (s *SubscriptionService) DetectSubscriptions(ctx context.Context, accountID uuid.UUID) (int, error) {

	txns, err := s.txRepo.ListByAccountOrdered(ctx, accountID)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	if len(txns) == 0 {
		return 0, nil
	}

	groups := make(map[string][]db_models.Transaction)
	for _, txn := range txns {
		key := NormalizeMerchantKey(txn.MerchantName)
		groups[key] = append(groups[key], txn)
	}

	detected := 0
	for key, group := range groups {
		intervalDays, ok := s.qualify(group)
		if !ok {
			continue
		}

		last := group[len(group)-1]
		sub := &db_models.Subscription{
			AccountID:    accountID,
			MerchantKey:  key,
			MerchantName: last.MerchantName,
			Amount:       last.Amount.Abs(),
			IntervalDays: intervalDays,
			Status:       db_models.SubStatusActive,
			FirstSeen:    group[0].TransactionDate,
			LastSeen:     last.TransactionDate,
		}
		if err := s.subRepo.Upsert(ctx, sub); err != nil {
			return detected, utils.ErrDatabaseError
		}
		detected++
	}

	return detected, nil
}

// qualify reports whether a merchant group charges on a recognized cadence
// with consistent amounts, and which cadence that is.
func (s *SubscriptionService) qualify(group []db_models.Transaction) (int, bool) {
	if len(group) < s.cfg.MinOccurrences {
		return 0, false
	}

	deltas := dayDeltas(group)
	if len(deltas) == 0 {
		return 0, false
	}

	intervalDays, ok := s.matchInterval(deltas)
	if !ok {
		return 0, false
	}
	if !s.amountsConsistent(group) {
		return 0, false
	}
	return intervalDays, true
}

func dayDeltas(group []db_models.Transaction) []int {
	deltas := make([]int, 0, len(group)-1)
	for i := 1; i < len(group); i++ {
		d := utils.DaysBetween(group[i-1].TransactionDate, group[i].TransactionDate)
		if d == 0 {
			// same-day duplicate charge, does not break the cadence
			continue
		}
		deltas = append(deltas, d)
	}
	return deltas
}

func (s *SubscriptionService) matchInterval(deltas []int) (int, bool) {
	med := medianInt(deltas)

	for _, rule := range s.cfg.Intervals {
		if absInt(med-rule.Days) > rule.Drift {
			continue
		}
		allWithin := true
		for _, d := range deltas {
			if absInt(d-rule.Days) > rule.Drift {
				allWithin = false
				break
			}
		}
		if allWithin {
			return rule.Days, true
		}
	}
	return 0, false
}

func (s *SubscriptionService) amountsConsistent(group []db_models.Transaction) bool {
	amounts := make([]decimal.Decimal, 0, len(group))
	for _, txn := range group {
		amounts = append(amounts, txn.Amount.Abs())
	}

	med := medianDecimal(amounts)
	if med.IsZero() {
		return false
	}

	allowed := med.Mul(s.cfg.AmountTolerance)
	for _, a := range amounts {
		if a.Sub(med).Abs().GreaterThan(allowed) {
			return false
		}
	}
	return true
}

func (s *SubscriptionService) ListSubscriptions(ctx context.Context, accountID uuid.UUID) (*response_models.SubscriptionListResponse, error) {

	subs, err := s.subRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := &response_models.SubscriptionListResponse{
		Subscriptions: make([]response_models.SubscriptionResponse, 0, len(subs)),
		TotalMonthly:  decimal.Zero,
		TotalAnnual:   decimal.Zero,
	}

	for _, sub := range subs {
		out.Subscriptions = append(out.Subscriptions, subscriptionToResponse(sub))
		if sub.Status == db_models.SubStatusCancelled {
			continue
		}
		out.TotalMonthly = out.TotalMonthly.Add(monthlyEquivalent(sub.Amount, sub.IntervalDays))
	}
	out.TotalMonthly = out.TotalMonthly.Round(2)
	out.TotalAnnual = out.TotalMonthly.Mul(decimal.NewFromInt(12)).Round(2)

	return out, nil
}

func (s *SubscriptionService) CancelSubscription(ctx context.Context, subscriptionID string, accountID uuid.UUID) (*response_models.SubscriptionResponse, error) {

	subUUID, err := uuid.Parse(subscriptionID)
	if err != nil {
		return nil, utils.ErrSubscriptionNotFound
	}

	sub, err := s.subRepo.GetByIDForAccount(ctx, subUUID, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if sub == nil {
		return nil, utils.ErrSubscriptionNotFound
	}

	if sub.Status != db_models.SubStatusCancelled {
		if err := s.subRepo.UpdateStatus(ctx, sub.ID, db_models.SubStatusCancelled); err != nil {
			return nil, utils.ErrDatabaseError
		}
		sub.Status = db_models.SubStatusCancelled
	}

	resp := subscriptionToResponse(*sub)
	return &resp, nil
}

var merchantNoisePattern = regexp.MustCompile(`[*#]`)

// NormalizeMerchantKey reduces a raw statement merchant name to a stable
// grouping key: lower-cased, separators collapsed, reference tokens that
// contain digits dropped ("NETFLIX.COM 0231" -> "netflix.com").
func NormalizeMerchantKey(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	lower = merchantNoisePattern.ReplaceAllString(lower, " ")

	fields := strings.Fields(lower)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.ContainsAny(f, "0123456789") {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		// name was all digits; keep it rather than collapsing to ""
		return strings.Join(fields, " ")
	}
	return strings.Join(kept, " ")
}

func monthlyEquivalent(amount decimal.Decimal, intervalDays int) decimal.Decimal {
	if intervalDays <= 0 {
		return decimal.Zero
	}
	return amount.
		Div(decimal.NewFromInt(int64(intervalDays))).
		Mul(decimal.NewFromInt(30))
}

func subscriptionToResponse(sub db_models.Subscription) response_models.SubscriptionResponse {
	return response_models.SubscriptionResponse{
		ID:           sub.ID.String(),
		MerchantKey:  sub.MerchantKey,
		MerchantName: sub.MerchantName,
		Amount:       sub.Amount,
		IntervalDays: sub.IntervalDays,
		Status:       string(sub.Status),
		FirstSeen:    utils.FormatDate(sub.FirstSeen),
		LastSeen:     utils.FormatDate(sub.LastSeen),
	}
}

func medianInt(values []int) int {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	return sorted[len(sorted)/2]
}

func medianDecimal(values []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	return sorted[len(sorted)/2]
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
