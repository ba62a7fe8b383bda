package utils

import "errors"

var (
	ErrDatabaseError = errors.New("database error")

	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")

	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrBankAccountNotFound  = errors.New("bank account not found")
	ErrTargetNotFound       = errors.New("savings target not found")
	ErrActionNotFound       = errors.New("savings plan action not found")

	ErrInvalidTarget     = errors.New("monthly target must be positive")
	ErrInvalidResponse   = errors.New("invalid response value")
	ErrInvalidTransition = errors.New("action already responded")

	ErrPlanGenerationInFlight = errors.New("plan generation already running")

	ErrAdvisorUnavailable      = errors.New("advisor provider unavailable")
	ErrBankProviderUnavailable = errors.New("bank provider unavailable")
)
