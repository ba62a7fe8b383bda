package transactions_fx

import (
	"finsight/internal/repositories"
	"finsight/internal/services"
	"finsight/pkg/utils"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideCategoryRepo, provideTransactionService)

func provideCategoryRepo(db *gorm.DB) repositories.CategoryRepositoryInterface {
	return repositories.NewCategoryRepository(db)
}

func provideTransactionService(
	txRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	advisor utils.AdvisorClientInterface,
) services.TransactionServiceInterface {
	return services.NewTransactionService(txRepo, categoryRepo, advisor)
}
