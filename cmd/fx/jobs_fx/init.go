package jobs_fx

import (
	"os"

	"finsight/internal/jobs"
	"finsight/internal/repositories"
	"finsight/internal/services"

	"go.uber.org/fx"
)

var Module = fx.Provide(
	provideScheduler)

func provideScheduler(
	bankAccountRepo repositories.BankAccountRepositoryInterface,
	bankSync services.BankSyncServiceInterface,
	subscriptions services.SubscriptionServiceInterface,
) *jobs.Scheduler {
	return jobs.NewScheduler(os.Getenv("SWEEP_CRON"), bankAccountRepo, bankSync, subscriptions)
}
