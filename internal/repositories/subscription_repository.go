package repositories

import (
	"context"
	"errors"

	"finsight/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepositoryInterface interface {
	// Upsert inserts the subscription or, when one already exists for
	// (account_id, merchant_key), refreshes its observed fields. Status is
	// deliberately not part of the update set: a cancelled subscription
	// stays cancelled across detection runs.
	Upsert(ctx context.Context, sub *db_models.Subscription) error

	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Subscription, error)
	GetByIDForAccount(ctx context.Context, subscriptionID uuid.UUID, accountID uuid.UUID) (*db_models.Subscription, error)
	UpdateStatus(ctx context.Context, subscriptionID uuid.UUID, status db_models.SubscriptionStatus) error
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepositoryInterface {
	return &SubscriptionRepository{db: db}
}

type SubscriptionRepository struct {
	db *gorm.DB
}

func (s SubscriptionRepository) Upsert(ctx context.Context, sub *db_models.Subscription) error {

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "account_id"}, {Name: "merchant_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"merchant_name", "amount", "interval_days", "last_seen", "updated_at",
			}),
		}).
		Create(sub).Error
}

func (s SubscriptionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Subscription, error) {

	var subs []db_models.Subscription
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("merchant_key ASC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (s SubscriptionRepository) GetByIDForAccount(ctx context.Context, subscriptionID uuid.UUID, accountID uuid.UUID) (*db_models.Subscription, error) {

	var sub db_models.Subscription
	err := s.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", subscriptionID, accountID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (s SubscriptionRepository) UpdateStatus(ctx context.Context, subscriptionID uuid.UUID, status db_models.SubscriptionStatus) error {

	return s.db.WithContext(ctx).
		Model(&db_models.Subscription{}).
		Where("id = ?", subscriptionID).
		Update("status", status).Error
}
