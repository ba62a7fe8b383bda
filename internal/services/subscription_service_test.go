package services

import (
	"context"
	"testing"

	"finsight/internal/models/db_models"
	"finsight/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDetector(txRepo *fakeTransactionRepo, subRepo *fakeSubscriptionRepo) SubscriptionServiceInterface {
	return NewSubscriptionService(txRepo, subRepo, DefaultDetectorConfig())
}

func TestDetectSubscriptions_MonthlyCharge(t *testing.T) {
	accountID := uuid.New()
	txRepo := newFakeTransactionRepo()
	subRepo := newFakeSubscriptionRepo()

	txRepo.txns[accountID] = []db_models.Transaction{
		txnOn(accountID, "NETFLIX.COM 0231", "15.99", "2025-01-15"),
		txnOn(accountID, "NETFLIX.COM 0232", "15.99", "2025-02-15"),
		txnOn(accountID, "NETFLIX.COM 0233", "15.99", "2025-03-15"),
		txnOn(accountID, "NETFLIX.COM 0234", "15.99", "2025-04-15"),
	}

	detected, err := newDetector(txRepo, subRepo).DetectSubscriptions(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, 1, detected)
	require.Equal(t, 1, subRepo.created)

	sub := subRepo.rows[subKey(accountID, "netflix.com")]
	require.NotNil(t, sub)
	assert.Equal(t, "netflix.com", sub.MerchantKey)
	assert.Equal(t, 30, sub.IntervalDays)
	assert.Equal(t, db_models.SubStatusActive, sub.Status)
	assert.True(t, sub.Amount.Equal(decimal.RequireFromString("15.99")))
	assert.Equal(t, mustDate("2025-01-15"), sub.FirstSeen)
	assert.Equal(t, mustDate("2025-04-15"), sub.LastSeen)
}

func TestDetectSubscriptions_Idempotent(t *testing.T) {
	accountID := uuid.New()
	txRepo := newFakeTransactionRepo()
	subRepo := newFakeSubscriptionRepo()

	txRepo.txns[accountID] = []db_models.Transaction{
		txnOn(accountID, "Spotify AB", "9.99", "2025-01-03"),
		txnOn(accountID, "Spotify AB", "9.99", "2025-02-03"),
		txnOn(accountID, "Spotify AB", "9.99", "2025-03-03"),
	}

	svc := newDetector(txRepo, subRepo)

	detected, err := svc.DetectSubscriptions(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, 1, detected)

	detected, err = svc.DetectSubscriptions(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, 1, detected)

	// second run refreshed the existing row instead of inserting another
	assert.Equal(t, 1, subRepo.created)
	assert.Equal(t, 1, subRepo.updated)
	assert.Len(t, subRepo.rows, 1)
}

func TestDetectSubscriptions_NoTransactions(t *testing.T) {
	accountID := uuid.New()
	txRepo := newFakeTransactionRepo()
	subRepo := newFakeSubscriptionRepo()

	detected, err := newDetector(txRepo, subRepo).DetectSubscriptions(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, 0, detected)
	assert.Empty(t, subRepo.rows)
}

func TestDetectSubscriptions_TooFewOccurrences(t *testing.T) {
	accountID := uuid.New()
	txRepo := newFakeTransactionRepo()
	subRepo := newFakeSubscriptionRepo()

	txRepo.txns[accountID] = []db_models.Transaction{
		txnOn(accountID, "Audible", "9.95", "2025-01-10"),
		txnOn(accountID, "Audible", "9.95", "2025-02-10"),
	}

	detected, err := newDetector(txRepo, subRepo).DetectSubscriptions(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, 0, detected)
}

func TestDetectSubscriptions_AmountVarianceRejected(t *testing.T) {
	accountID := uuid.New()
	txRepo := newFakeTransactionRepo()
	subRepo := newFakeSubscriptionRepo()

	// monthly cadence but wildly varying amounts: groceries, not a subscription
	txRepo.txns[accountID] = []db_models.Transaction{
		txnOn(accountID, "REWE Markt", "54.20", "2025-01-05"),
		txnOn(accountID, "REWE Markt", "87.10", "2025-02-05"),
		txnOn(accountID, "REWE Markt", "41.95", "2025-03-05"),
		txnOn(accountID, "REWE Markt", "63.30", "2025-04-05"),
	}

	detected, err := newDetector(txRepo, subRepo).DetectSubscriptions(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, 0, detected)
	assert.Empty(t, subRepo.rows)
}

func TestDetectSubscriptions_IrregularIntervalsRejected(t *testing.T) {
	accountID := uuid.New()
	txRepo := newFakeTransactionRepo()
	subRepo := newFakeSubscriptionRepo()

	txRepo.txns[accountID] = []db_models.Transaction{
		txnOn(accountID, "Shell Station", "45.00", "2025-01-02"),
		txnOn(accountID, "Shell Station", "45.00", "2025-01-21"),
		txnOn(accountID, "Shell Station", "45.00", "2025-03-14"),
		txnOn(accountID, "Shell Station", "45.00", "2025-03-20"),
	}

	detected, err := newDetector(txRepo, subRepo).DetectSubscriptions(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, 0, detected)
}

func TestDetectSubscriptions_WeeklyAndAnnual(t *testing.T) {
	accountID := uuid.New()
	txRepo := newFakeTransactionRepo()
	subRepo := newFakeSubscriptionRepo()

	txRepo.txns[accountID] = []db_models.Transaction{
		txnOn(accountID, "HelloFresh", "49.99", "2025-03-07"),
		txnOn(accountID, "HelloFresh", "49.99", "2025-03-14"),
		txnOn(accountID, "HelloFresh", "49.99", "2025-03-21"),
		txnOn(accountID, "HelloFresh", "49.99", "2025-03-28"),
		txnOn(accountID, "AWS EMEA", "119.00", "2023-05-02"),
		txnOn(accountID, "AWS EMEA", "119.00", "2024-05-01"),
		txnOn(accountID, "AWS EMEA", "119.00", "2025-05-03"),
	}

	detected, err := newDetector(txRepo, subRepo).DetectSubscriptions(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, 2, detected)

	weekly := subRepo.rows[subKey(accountID, "hellofresh")]
	require.NotNil(t, weekly)
	assert.Equal(t, 7, weekly.IntervalDays)

	annual := subRepo.rows[subKey(accountID, "aws emea")]
	require.NotNil(t, annual)
	assert.Equal(t, 365, annual.IntervalDays)
}

func TestDetectSubscriptions_CancelledStaysCancelled(t *testing.T) {
	accountID := uuid.New()
	txRepo := newFakeTransactionRepo()
	subRepo := newFakeSubscriptionRepo()

	existing := &db_models.Subscription{
		AccountID:    accountID,
		MerchantKey:  "netflix.com",
		MerchantName: "NETFLIX.COM",
		Amount:       decimal.RequireFromString("15.99"),
		IntervalDays: 30,
		Status:       db_models.SubStatusCancelled,
		FirstSeen:    mustDate("2024-10-15"),
		LastSeen:     mustDate("2024-12-15"),
	}
	existing.ID = uuid.New()
	subRepo.rows[subKey(accountID, "netflix.com")] = existing

	txRepo.txns[accountID] = []db_models.Transaction{
		txnOn(accountID, "NETFLIX.COM 0231", "15.99", "2025-01-15"),
		txnOn(accountID, "NETFLIX.COM 0232", "15.99", "2025-02-15"),
		txnOn(accountID, "NETFLIX.COM 0233", "15.99", "2025-03-15"),
	}

	detected, err := newDetector(txRepo, subRepo).DetectSubscriptions(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, 1, detected)

	sub := subRepo.rows[subKey(accountID, "netflix.com")]
	assert.Equal(t, db_models.SubStatusCancelled, sub.Status)
	assert.Equal(t, mustDate("2025-03-15"), sub.LastSeen)
	assert.Equal(t, 0, subRepo.created)
}

func TestMatchInterval_DriftBounds(t *testing.T) {
	tests := []struct {
		name     string
		rule     IntervalRule
		deltas   []int
		wantDays int
		wantOK   bool
	}{
		{"monthly within default drift", IntervalRule{Days: 30, Drift: 3}, []int{31, 28, 31, 30}, 30, true},
		{"monthly beyond drift", IntervalRule{Days: 30, Drift: 3}, []int{30, 35, 28}, 0, false},
		{"same deltas pass with wider drift", IntervalRule{Days: 30, Drift: 7}, []int{30, 35, 28}, 30, true},
		{"quarterly with wide drift", IntervalRule{Days: 90, Drift: 10}, []int{89, 92, 98}, 90, true},
		{"median far off rule", IntervalRule{Days: 7, Drift: 3}, []int{20, 21, 22}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &SubscriptionService{cfg: DetectorConfig{Intervals: []IntervalRule{tt.rule}}}
			days, ok := svc.matchInterval(tt.deltas)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDays, days)
		})
	}
}

func TestNormalizeMerchantKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"NETFLIX.COM 0231", "netflix.com"},
		{"PAYPAL *SPOTIFY 12345", "paypal spotify"},
		{"Spotify AB", "spotify ab"},
		{"  AMZN Mktp DE #8841  ", "amzn mktp de"},
		{"123456", "123456"},
		{"REWE SAGT DANKE. 44301", "rewe sagt danke."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeMerchantKey(tt.in), "input %q", tt.in)
	}
}

func TestListSubscriptions_TotalsExcludeCancelled(t *testing.T) {
	accountID := uuid.New()
	subRepo := newFakeSubscriptionRepo()

	active := &db_models.Subscription{
		AccountID: accountID, MerchantKey: "netflix.com",
		Amount: decimal.RequireFromString("15.00"), IntervalDays: 30,
		Status: db_models.SubStatusActive,
	}
	active.ID = uuid.New()
	cancelled := &db_models.Subscription{
		AccountID: accountID, MerchantKey: "spotify ab",
		Amount: decimal.RequireFromString("9.99"), IntervalDays: 30,
		Status: db_models.SubStatusCancelled,
	}
	cancelled.ID = uuid.New()
	subRepo.rows[subKey(accountID, "netflix.com")] = active
	subRepo.rows[subKey(accountID, "spotify ab")] = cancelled

	resp, err := newDetector(newFakeTransactionRepo(), subRepo).ListSubscriptions(context.Background(), accountID)
	require.NoError(t, err)

	assert.Len(t, resp.Subscriptions, 2)
	assert.True(t, resp.TotalMonthly.Equal(decimal.RequireFromString("15.00")), "got %s", resp.TotalMonthly)
	assert.True(t, resp.TotalAnnual.Equal(decimal.RequireFromString("180.00")), "got %s", resp.TotalAnnual)
}

func TestCancelSubscription(t *testing.T) {
	accountID := uuid.New()
	subRepo := newFakeSubscriptionRepo()

	sub := &db_models.Subscription{
		AccountID: accountID, MerchantKey: "netflix.com",
		Amount: decimal.RequireFromString("15.99"), IntervalDays: 30,
		Status: db_models.SubStatusActive,
	}
	sub.ID = uuid.New()
	subRepo.rows[subKey(accountID, "netflix.com")] = sub

	svc := newDetector(newFakeTransactionRepo(), subRepo)

	resp, err := svc.CancelSubscription(context.Background(), sub.ID.String(), accountID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, db_models.SubStatusCancelled, subRepo.rows[subKey(accountID, "netflix.com")].Status)

	// cancelling again is a no-op, not an error
	resp, err = svc.CancelSubscription(context.Background(), sub.ID.String(), accountID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
}

func TestCancelSubscription_ForeignAccount(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	owner := uuid.New()

	sub := &db_models.Subscription{
		AccountID: owner, MerchantKey: "netflix.com",
		Status: db_models.SubStatusActive,
	}
	sub.ID = uuid.New()
	subRepo.rows[subKey(owner, "netflix.com")] = sub

	svc := newDetector(newFakeTransactionRepo(), subRepo)

	_, err := svc.CancelSubscription(context.Background(), sub.ID.String(), uuid.New())
	assert.ErrorIs(t, err, utils.ErrSubscriptionNotFound)
	assert.Equal(t, db_models.SubStatusActive, sub.Status)
}
