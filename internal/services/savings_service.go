package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"finsight/internal/models/db_models"
	"finsight/internal/models/request_models"
	"finsight/internal/models/response_models"
	"finsight/internal/repositories"
	"finsight/pkg/memcache"
	"finsight/pkg/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type SavingsServiceInterface interface {
	// CreateTarget replaces the account's savings target, asks the advisor
	// for a plan and stores its actions.
	CreateTarget(ctx context.Context, accountID uuid.UUID, req request_models.CreateSavingsTargetRequest) (*response_models.SavingsPlanResponse, error)
	GetPlan(ctx context.Context, accountID uuid.UUID) (*response_models.SavingsPlanResponse, error)
	// RespondToAction applies a user response (accept/reduce/reject/keep)
	// to a plan action.
	RespondToAction(ctx context.Context, actionID string, accountID uuid.UUID, req request_models.RespondToActionRequest) (*response_models.SavingsPlanActionResponse, error)
}

type SavingsService struct {
	savingsRepo repositories.SavingsRepositoryInterface
	txRepo      repositories.TransactionRepositoryInterface
	accountRepo repositories.AccountRepositoryInterface
	advisor     utils.AdvisorClientInterface
	mail        IMailService
	locks       memcache.GenerationGuard
}

func NewSavingsService(
	savingsRepo repositories.SavingsRepositoryInterface,
	txRepo repositories.TransactionRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	advisor utils.AdvisorClientInterface,
	mail IMailService,
	locks memcache.GenerationGuard,
) SavingsServiceInterface {
	return &SavingsService{
		savingsRepo: savingsRepo,
		txRepo:      txRepo,
		accountRepo: accountRepo,
		advisor:     advisor,
		mail:        mail,
		locks:       locks,
	}
}

const planGenerationTTL = 2 * time.Minute

func (s *SavingsService) CreateTarget(ctx context.Context, accountID uuid.UUID, req request_models.CreateSavingsTargetRequest) (*response_models.SavingsPlanResponse, error) {

	if !req.MonthlyTarget.IsPositive() {
		return nil, utils.ErrInvalidTarget
	}

	lockKey := "plan:" + accountID.String()
	if !s.locks.TryAcquire(lockKey, planGenerationTTL) {
		return nil, utils.ErrPlanGenerationInFlight
	}
	defer s.locks.Release(lockKey)

	txns, err := s.txRepo.ListByAccountOrdered(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	spending, currency := spendingSummary(txns)

	raw, err := s.advisor.GeneratePlanActions(ctx, utils.SavingsTargetPrompt{
		MonthlyTarget: req.MonthlyTarget.StringFixed(2),
		Currency:      currency,
		Motivation:    req.Motivation,
	}, spending)
	if err != nil {
		log.Printf("Advisor plan generation failed: %v", err)
		return nil, utils.ErrAdvisorUnavailable
	}

	actions, err := parsePlanActions(raw)
	if err != nil {
		log.Printf("Advisor returned unusable plan: %v", err)
		return nil, utils.ErrAdvisorUnavailable
	}

	target := &db_models.SavingsTarget{
		AccountID:     accountID,
		MonthlyTarget: req.MonthlyTarget,
		Motivation:    req.Motivation,
	}
	if err := s.savingsRepo.ReplaceTarget(ctx, target, actions); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.notifyPlanReady(ctx, accountID, req.Motivation, len(actions))

	target.Actions = actions
	return planToResponse(target), nil
}

// notifyPlanReady is best-effort: a failed mail never fails the request.
func (s *SavingsService) notifyPlanReady(ctx context.Context, accountID uuid.UUID, motivation string, actionCount int) {
	if s.mail == nil {
		return
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil || account == nil || account.Email == "" {
		return
	}
	if err := s.mail.SendPlanReadyNotification(account.Email, motivation, actionCount); err != nil {
		log.Printf("Plan notification mail failed for %s: %v", accountID, err)
	}
}

func (s *SavingsService) GetPlan(ctx context.Context, accountID uuid.UUID) (*response_models.SavingsPlanResponse, error) {

	target, err := s.savingsRepo.GetActiveTargetByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if target == nil {
		return nil, utils.ErrTargetNotFound
	}

	return planToResponse(target), nil
}

func (s *SavingsService) RespondToAction(ctx context.Context, actionID string, accountID uuid.UUID, req request_models.RespondToActionRequest) (*response_models.SavingsPlanActionResponse, error) {

	response := strings.ToLower(strings.TrimSpace(req.Response))
	switch response {
	case "accept", "reduce", "reject", "cancel", "keep":
	default:
		return nil, utils.ErrInvalidResponse
	}

	actionUUID, err := uuid.Parse(actionID)
	if err != nil {
		return nil, utils.ErrActionNotFound
	}

	action, err := s.savingsRepo.UpdateActionResponse(ctx, actionUUID, accountID, func(a *db_models.SavingsPlanAction) error {
		return applyResponse(a, response, req.ReducedAmount)
	})
	if err != nil {
		if errors.Is(err, utils.ErrInvalidTransition) {
			return nil, err
		}
		return nil, utils.ErrDatabaseError
	}
	if action == nil {
		// also covers actions owned by another account
		return nil, utils.ErrActionNotFound
	}

	resp := actionToResponse(*action)
	return &resp, nil
}

// applyResponse is the response state machine. suggested and reduced accept
// further responses; accepted, cancelled and kept are terminal.
func applyResponse(a *db_models.SavingsPlanAction, response string, reducedAmount *decimal.Decimal) error {
	switch a.Status {
	case db_models.ActionStatusSuggested, db_models.ActionStatusReduced:
	default:
		return utils.ErrInvalidTransition
	}

	now := utils.NowUnixSeconds()

	switch response {
	case "accept":
		a.Status = db_models.ActionStatusAccepted
		a.AcceptedAt = &now
	case "reduce":
		a.Status = db_models.ActionStatusReduced
		if reducedAmount != nil && reducedAmount.IsPositive() {
			a.MonthlySavings = *reducedAmount
		}
	case "reject", "cancel":
		a.Status = db_models.ActionStatusCancelled
	case "keep":
		if a.Status != db_models.ActionStatusSuggested {
			return utils.ErrInvalidTransition
		}
		a.Status = db_models.ActionStatusKept
	}

	a.RespondedAt = &now
	return nil
}

type planActionPayload struct {
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
}

// parsePlanActions accepts either the documented {"actions":[...]} wrapper
// or a bare array, since providers differ on top-level shape.
func parsePlanActions(raw string) ([]db_models.SavingsPlanAction, error) {
	trimmed := strings.TrimSpace(raw)

	var payloads []planActionPayload
	if strings.HasPrefix(trimmed, "{") {
		var wrapper struct {
			Actions []planActionPayload `json:"actions"`
		}
		if err := json.Unmarshal([]byte(trimmed), &wrapper); err != nil {
			return nil, err
		}
		payloads = wrapper.Actions
	} else {
		if err := json.Unmarshal([]byte(trimmed), &payloads); err != nil {
			return nil, err
		}
	}
	if len(payloads) == 0 {
		return nil, fmt.Errorf("empty plan")
	}

	sort.SliceStable(payloads, func(i, j int) bool { return payloads[i].Priority < payloads[j].Priority })

	actions := make([]db_models.SavingsPlanAction, 0, len(payloads))
	for i, p := range payloads {
		priority := p.Priority
		if priority == 0 {
			priority = i + 1
		}
		actions = append(actions, db_models.SavingsPlanAction{
			Title:               p.Title,
			Description:         p.Description,
			HowTo:               p.HowTo,
			MonthlySavings:      p.MonthlySavings,
			CurrentSpending:     p.CurrentSpending,
			RecommendedSpending: p.RecommendedSpending,
			Category:            p.Category,
			Difficulty:          normalizeDifficulty(p.Difficulty),
			Impact:              p.Impact,
			Priority:            priority,
			IsEssentialCut:      p.IsEssentialCut,
			RelatedMerchants:    pq.StringArray(p.RelatedMerchants),
			Status:              db_models.ActionStatusSuggested,
		})
	}
	return actions, nil
}

func normalizeDifficulty(d string) db_models.ActionDifficulty {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "easy":
		return db_models.DifficultyEasy
	case "hard":
		return db_models.DifficultyHard
	default:
		return db_models.DifficultyMedium
	}
}

const spendingSummaryMerchants = 10

// spendingSummary condenses a transaction history into average monthly
// spend per merchant over the last 90 days, largest first.
func spendingSummary(txns []db_models.Transaction) ([]utils.MerchantSpend, string) {
	currency := "EUR"
	cutoff := time.Now().AddDate(0, 0, -90)

	totals := make(map[string]decimal.Decimal)
	names := make(map[string]string)
	for _, txn := range txns {
		if txn.Currency != "" {
			currency = txn.Currency
		}
		if txn.TransactionDate.Before(cutoff) {
			continue
		}
		key := NormalizeMerchantKey(txn.MerchantName)
		totals[key] = totals[key].Add(txn.Amount.Abs())
		names[key] = txn.MerchantName
	}

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return totals[keys[i]].GreaterThan(totals[keys[j]]) })
	if len(keys) > spendingSummaryMerchants {
		keys = keys[:spendingSummaryMerchants]
	}

	three := decimal.NewFromInt(3)
	spending := make([]utils.MerchantSpend, 0, len(keys))
	for _, key := range keys {
		spending = append(spending, utils.MerchantSpend{
			Merchant:       names[key],
			MonthlyAverage: totals[key].Div(three).StringFixed(2),
		})
	}
	return spending, currency
}

func planToResponse(target *db_models.SavingsTarget) *response_models.SavingsPlanResponse {
	out := &response_models.SavingsPlanResponse{
		Target: response_models.SavingsTargetResponse{
			ID:            target.ID.String(),
			MonthlyTarget: target.MonthlyTarget,
			Motivation:    target.Motivation,
			CreatedAt:     target.CreatedAt,
		},
		Actions:          make([]response_models.SavingsPlanActionResponse, 0, len(target.Actions)),
		ProjectedMonthly: decimal.Zero,
	}

	for _, action := range target.Actions {
		out.Actions = append(out.Actions, actionToResponse(action))
		switch action.Status {
		case db_models.ActionStatusAccepted, db_models.ActionStatusReduced:
			out.ProjectedMonthly = out.ProjectedMonthly.Add(action.MonthlySavings)
		}
	}
	out.ProjectedMonthly = out.ProjectedMonthly.Round(2)

	return out
}

func actionToResponse(action db_models.SavingsPlanAction) response_models.SavingsPlanActionResponse {
	return response_models.SavingsPlanActionResponse{
		ID:                  action.ID.String(),
		Title:               action.Title,
		Description:         action.Description,
		HowTo:               action.HowTo,
		MonthlySavings:      action.MonthlySavings,
		CurrentSpending:     action.CurrentSpending,
		RecommendedSpending: action.RecommendedSpending,
		Category:            action.Category,
		Difficulty:          string(action.Difficulty),
		Impact:              action.Impact,
		Priority:            action.Priority,
		IsEssentialCut:      action.IsEssentialCut,
		RelatedMerchants:    []string(action.RelatedMerchants),
		Status:              string(action.Status),
		AcceptedAt:          action.AcceptedAt,
		RespondedAt:         action.RespondedAt,
	}
}
