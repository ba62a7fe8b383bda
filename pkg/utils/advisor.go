package utils

import "context"

// SavingsTargetPrompt is the read-only summary of a target handed to the
// advisor when generating a plan.
type SavingsTargetPrompt struct {
	MonthlyTarget string
	Currency      string
	Motivation    string
}

// MerchantSpend is one merchant's average monthly spend, used to ground the
// advisor's suggestions in actual spending.
type MerchantSpend struct {
	Merchant       string
	MonthlyAverage string
}

// AdvisorClientInterface abstracts the AI provider. Both methods return raw
// JSON; parsing and validation happen in the calling service.
type AdvisorClientInterface interface {
	// GeneratePlanActions returns a JSON document with an "actions" array of
	// suggested saving measures for the given target.
	GeneratePlanActions(ctx context.Context, target SavingsTargetPrompt, spending []MerchantSpend) (string, error)

	// SuggestCategories returns a JSON object mapping each merchant name to
	// one of the given category slugs.
	SuggestCategories(ctx context.Context, merchants []string, categories []string) (string, error)
}
