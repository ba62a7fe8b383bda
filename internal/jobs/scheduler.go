package jobs

import (
	"context"
	"log"
	"time"

	"finsight/internal/repositories"
	"finsight/internal/services"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the nightly sweep: sync every linked bank account, then
// re-run subscription detection for each affected user.
type Scheduler struct {
	cron            *cron.Cron
	spec            string
	bankAccountRepo repositories.BankAccountRepositoryInterface
	bankSync        services.BankSyncServiceInterface
	subscriptions   services.SubscriptionServiceInterface
}

func NewScheduler(
	spec string,
	bankAccountRepo repositories.BankAccountRepositoryInterface,
	bankSync services.BankSyncServiceInterface,
	subscriptions services.SubscriptionServiceInterface,
) *Scheduler {
	if spec == "" {
		spec = "0 3 * * *"
	}
	return &Scheduler{
		cron:            cron.New(),
		spec:            spec,
		bankAccountRepo: bankAccountRepo,
		bankSync:        bankSync,
		subscriptions:   subscriptions,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.RunSweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("Scheduler started (spec %q)", s.spec)
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

// RunSweep is also callable directly from tooling. Per-account failures are
// logged and do not abort the remaining accounts.
func (s *Scheduler) RunSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	bankAccounts, err := s.bankAccountRepo.ListAll(ctx)
	if err != nil {
		log.Printf("Sweep aborted, cannot list bank accounts: %v", err)
		return
	}

	owners := make(map[uuid.UUID]bool)
	for _, ba := range bankAccounts {
		imported, err := s.bankSync.SyncBankAccount(ctx, ba.ID.String(), ba.AccountID)
		if err != nil {
			log.Printf("Sweep: sync failed for bank account %s: %v", ba.ID, err)
			continue
		}
		log.Printf("Sweep: bank account %s imported %d transactions", ba.ID, imported)
		owners[ba.AccountID] = true
	}

	for accountID := range owners {
		detected, err := s.subscriptions.DetectSubscriptions(ctx, accountID)
		if err != nil {
			log.Printf("Sweep: detection failed for account %s: %v", accountID, err)
			continue
		}
		log.Printf("Sweep: account %s has %d recurring subscriptions", accountID, detected)
	}
}
