package subscriptions_fx

import (
	"finsight/internal/repositories"
	"finsight/internal/services"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideSubscriptionRepo, provideTransactionRepo, provideSubscriptionService)

func provideSubscriptionRepo(db *gorm.DB) repositories.SubscriptionRepositoryInterface {
	return repositories.NewSubscriptionRepository(db)
}

func provideTransactionRepo(db *gorm.DB) repositories.TransactionRepositoryInterface {
	return repositories.NewTransactionRepository(db)
}

func provideSubscriptionService(
	txRepo repositories.TransactionRepositoryInterface,
	subRepo repositories.SubscriptionRepositoryInterface,
) services.SubscriptionServiceInterface {
	return services.NewSubscriptionService(txRepo, subRepo, services.DefaultDetectorConfig())
}
