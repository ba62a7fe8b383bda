package repositories

import (
	"context"
	"errors"

	"finsight/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SavingsRepositoryInterface interface {
	// GetActiveTargetByAccount returns the account's live target with its
	// actions preloaded in priority order, or nil when none exists.
	GetActiveTargetByAccount(ctx context.Context, accountID uuid.UUID) (*db_models.SavingsTarget, error)

	// ReplaceTarget soft-deletes the account's previous target and its
	// actions, then creates the new target with its actions, all in one
	// transaction.
	ReplaceTarget(ctx context.Context, target *db_models.SavingsTarget, actions []db_models.SavingsPlanAction) error

	// UpdateActionResponse loads the action with a row lock, applies mutate
	// and saves the result. The lock serializes concurrent responses: the
	// loser observes the post-transition status inside mutate. Returns
	// nil, nil when the action does not exist or belongs to another account.
	UpdateActionResponse(ctx context.Context, actionID uuid.UUID, accountID uuid.UUID, mutate func(*db_models.SavingsPlanAction) error) (*db_models.SavingsPlanAction, error)
}

func NewSavingsRepository(db *gorm.DB) SavingsRepositoryInterface {
	return &SavingsRepository{db: db}
}

type SavingsRepository struct {
	db *gorm.DB
}

func (s SavingsRepository) GetActiveTargetByAccount(ctx context.Context, accountID uuid.UUID) (*db_models.SavingsTarget, error) {

	var target db_models.SavingsTarget
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Preload("Actions", func(db *gorm.DB) *gorm.DB {
			return db.Order("priority ASC")
		}).
		First(&target).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &target, nil
}

func (s SavingsRepository) ReplaceTarget(ctx context.Context, target *db_models.SavingsTarget, actions []db_models.SavingsPlanAction) error {

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Wipe the previous target and its actions (soft delete keeps the
		// audit trail).
		subTargetIDs := tx.Model(&db_models.SavingsTarget{}).
			Select("id").
			Where("account_id = ?", target.AccountID)

		if err := tx.Where("savings_target_id IN (?)", subTargetIDs).
			Delete(&db_models.SavingsPlanAction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", target.AccountID).
			Delete(&db_models.SavingsTarget{}).Error; err != nil {
			return err
		}

		if err := tx.Create(target).Error; err != nil {
			return err
		}

		for i := range actions {
			actions[i].SavingsTargetID = target.ID
			actions[i].AccountID = target.AccountID
		}
		if len(actions) > 0 {
			if err := tx.Create(&actions).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (s SavingsRepository) UpdateActionResponse(ctx context.Context, actionID uuid.UUID, accountID uuid.UUID, mutate func(*db_models.SavingsPlanAction) error) (*db_models.SavingsPlanAction, error) {

	var action db_models.SavingsPlanAction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND account_id = ?", actionID, accountID).
			First(&action).Error; err != nil {
			return err
		}

		if err := mutate(&action); err != nil {
			return err
		}

		return tx.Save(&action).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &action, nil
}
