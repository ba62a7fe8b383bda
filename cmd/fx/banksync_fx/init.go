package banksync_fx

import (
	"os"
	"time"

	"finsight/internal/repositories"
	"finsight/internal/services"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var providerCfg = services.BankProviderConfig{
	BaseURL:      os.Getenv("BANK_PROVIDER_URL"),
	APIKey:       os.Getenv("BANK_PROVIDER_API_KEY"),
	ProviderName: "gocardless",
	Timeout:      30 * time.Second,
}

var Module = fx.Provide(
	provideBankAccountRepo, provideBankProvider, provideBankSyncService)

func provideBankAccountRepo(db *gorm.DB) repositories.BankAccountRepositoryInterface {
	return repositories.NewBankAccountRepository(db)
}

func provideBankProvider() services.BankProviderInterface {
	return services.NewHTTPBankProvider(providerCfg)
}

func provideBankSyncService(
	bankAccountRepo repositories.BankAccountRepositoryInterface,
	txRepo repositories.TransactionRepositoryInterface,
	provider services.BankProviderInterface,
) services.BankSyncServiceInterface {
	return services.NewBankSyncService(bankAccountRepo, txRepo, provider, providerCfg.ProviderName)
}
