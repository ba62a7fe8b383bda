package infra

import (
	"log"
	"os"

	"finsight/internal/models/db_models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitPostgresql() *gorm.DB {

	dsn := os.Getenv("POSTGRES_URL")

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	return connectionPool
}

// AutoMigrate keeps the schema current. The unique index on
// (account_id, merchant_key) is what makes detection upserts safe under
// concurrent runs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&db_models.Account{},
		&db_models.BankAccount{},
		&db_models.Category{},
		&db_models.Transaction{},
		&db_models.Subscription{},
		&db_models.SavingsTarget{},
		&db_models.SavingsPlanAction{},
	)
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
