package controllers_fx

import (
	"finsight/internal/api/controllers"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(controllers.NewSubscriptionController),
	fx.Provide(controllers.NewSavingsController),
	fx.Provide(controllers.NewTransactionController),
	fx.Provide(controllers.NewBankSyncController))
