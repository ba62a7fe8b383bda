package main

import (
	"context"
	"log"
	"os"

	"finsight/cmd/fx/advisor_fx"
	"finsight/cmd/fx/banksync_fx"
	"finsight/cmd/fx/controllers_fx"
	"finsight/cmd/fx/db_fx"
	"finsight/cmd/fx/jobs_fx"
	"finsight/cmd/fx/mail_fx"
	"finsight/cmd/fx/savings_fx"
	"finsight/cmd/fx/subscriptions_fx"
	"finsight/cmd/fx/transactions_fx"
	"finsight/internal/api/controllers"
	"finsight/internal/infra"
	"finsight/internal/jobs"
	"finsight/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	app := fx.New(
		db_fx.Module,
		advisor_fx.Module,
		mail_fx.Module,
		subscriptions_fx.Module,
		savings_fx.Module,
		transactions_fx.Module,
		banksync_fx.Module,
		jobs_fx.Module,
		controllers_fx.Module,

		fx.Invoke(Migrate),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
		fx.Invoke(StartScheduler),
	)

	app.Run()
}

func Migrate(db *gorm.DB) {
	if err := infra.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func StartScheduler(lc fx.Lifecycle, scheduler *jobs.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return scheduler.Start()
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}

func ProvideRouter(
	subscriptionController *controllers.SubscriptionController,
	savingsController *controllers.SavingsController,
	transactionController *controllers.TransactionController,
	bankSyncController *controllers.BankSyncController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, subscriptionController, savingsController, transactionController, bankSyncController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	subscriptionController *controllers.SubscriptionController,
	savingsController *controllers.SavingsController,
	transactionController *controllers.TransactionController,
	bankSyncController *controllers.BankSyncController) {

	api := r.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	subscriptions := api.Group("/subscriptions")
	subscriptions.POST("/detect", subscriptionController.Detect)
	subscriptions.GET("", subscriptionController.List)
	subscriptions.POST("/:id/cancel", subscriptionController.Cancel)

	savings := api.Group("/savings")
	savings.POST("/target", savingsController.CreateTarget)
	savings.GET("/plan", savingsController.GetPlan)
	savings.POST("/plan/:actionId/respond", savingsController.RespondToAction)

	transactions := api.Group("/transactions")
	transactions.GET("", transactionController.List)
	transactions.POST("/categorize", transactionController.Categorize)

	bankAccounts := api.Group("/bank-accounts")
	bankAccounts.POST("/:id/sync", bankSyncController.Sync)
}
