package savings_fx

import (
	"finsight/internal/repositories"
	"finsight/internal/services"
	mem "finsight/pkg/memcache"
	"finsight/pkg/utils"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideSavingsRepo, provideAccountRepo, providePlanLocks, provideSavingsService)

func provideSavingsRepo(db *gorm.DB) repositories.SavingsRepositoryInterface {
	return repositories.NewSavingsRepository(db)
}

func provideAccountRepo(db *gorm.DB) repositories.AccountRepositoryInterface {
	return repositories.NewAccountRepository(db)
}

func providePlanLocks() mem.GenerationGuard {
	return mem.NewPlanLocks()
}

func provideSavingsService(
	savingsRepo repositories.SavingsRepositoryInterface,
	txRepo repositories.TransactionRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	advisor utils.AdvisorClientInterface,
	mail services.IMailService,
	locks mem.GenerationGuard,
) services.SavingsServiceInterface {
	return services.NewSavingsService(savingsRepo, txRepo, accountRepo, advisor, mail, locks)
}
