package repositories

import (
	"context"

	"finsight/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepositoryInterface interface {
	// ListByAccountOrdered returns the account's full transaction history
	// ordered by transaction date ascending.
	ListByAccountOrdered(ctx context.Context, accountID uuid.UUID) ([]db_models.Transaction, error)
	ListByAccountPaged(ctx context.Context, accountID uuid.UUID, page int, pageSize int) ([]db_models.Transaction, error)
	ListUncategorized(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.Transaction, error)

	// InsertIgnoreDuplicates inserts the batch, skipping rows whose
	// provider txn id already exists. Returns the number inserted.
	InsertIgnoreDuplicates(ctx context.Context, txns []db_models.Transaction) (int, error)

	AssignCategoryByMerchant(ctx context.Context, accountID uuid.UUID, merchantName string, categoryID uuid.UUID) error
}

func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &TransactionRepository{db: db}
}

type TransactionRepository struct {
	db *gorm.DB
}

func (t TransactionRepository) ListByAccountOrdered(ctx context.Context, accountID uuid.UUID) ([]db_models.Transaction, error) {

	var txns []db_models.Transaction
	err := t.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("transaction_date ASC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (t TransactionRepository) ListByAccountPaged(ctx context.Context, accountID uuid.UUID, page int, pageSize int) ([]db_models.Transaction, error) {

	var txns []db_models.Transaction
	err := t.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("transaction_date DESC").
		Preload("Category").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (t TransactionRepository) ListUncategorized(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.Transaction, error) {

	var txns []db_models.Transaction
	err := t.db.WithContext(ctx).
		Where("account_id = ? AND category_id IS NULL", accountID).
		Order("transaction_date DESC").
		Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (t TransactionRepository) InsertIgnoreDuplicates(ctx context.Context, txns []db_models.Transaction) (int, error) {
	if len(txns) == 0 {
		return 0, nil
	}

	res := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider_txn_id"}},
			DoNothing: true,
		}).
		Create(&txns)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (t TransactionRepository) AssignCategoryByMerchant(ctx context.Context, accountID uuid.UUID, merchantName string, categoryID uuid.UUID) error {

	return t.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("account_id = ? AND merchant_name = ? AND category_id IS NULL", accountID, merchantName).
		Update("category_id", categoryID).Error
}
