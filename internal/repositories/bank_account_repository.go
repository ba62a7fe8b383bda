package repositories

import (
	"context"
	"errors"

	"finsight/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BankAccountRepositoryInterface interface {
	ListAll(ctx context.Context) ([]db_models.BankAccount, error)
	GetByIDForAccount(ctx context.Context, bankAccountID uuid.UUID, accountID uuid.UUID) (*db_models.BankAccount, error)
	UpdateLastSyncedAt(ctx context.Context, bankAccountID uuid.UUID, ts int64) error
}

func NewBankAccountRepository(db *gorm.DB) BankAccountRepositoryInterface {
	return &BankAccountRepository{db: db}
}

type BankAccountRepository struct {
	db *gorm.DB
}

func (b BankAccountRepository) ListAll(ctx context.Context) ([]db_models.BankAccount, error) {

	var accounts []db_models.BankAccount
	err := b.db.WithContext(ctx).Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (b BankAccountRepository) GetByIDForAccount(ctx context.Context, bankAccountID uuid.UUID, accountID uuid.UUID) (*db_models.BankAccount, error) {

	var account db_models.BankAccount
	err := b.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", bankAccountID, accountID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (b BankAccountRepository) UpdateLastSyncedAt(ctx context.Context, bankAccountID uuid.UUID, ts int64) error {

	return b.db.WithContext(ctx).
		Model(&db_models.BankAccount{}).
		Where("id = ?", bankAccountID).
		Update("last_synced_at", ts).Error
}
