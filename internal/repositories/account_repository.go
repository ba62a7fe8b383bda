package repositories

import (
	"context"
	"errors"

	"finsight/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepositoryInterface interface {
	GetByID(ctx context.Context, accountID uuid.UUID) (*db_models.Account, error)
}

func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &AccountRepository{db: db}
}

type AccountRepository struct {
	db *gorm.DB
}

func (a AccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*db_models.Account, error) {

	var account db_models.Account
	err := a.db.WithContext(ctx).Where("id = ?", accountID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}
