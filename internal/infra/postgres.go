package infra

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tradewise/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {
	dsn := os.Getenv("POSTGRES_URL")

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := AutoMigrate(connectionPool); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return connectionPool
}

// AutoMigrate keeps the schema in step with the model structs. Order matters
// for foreign keys.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&db_models.User{},
		&db_models.Plan{},
		&db_models.Setting{},
		&db_models.Subscription{},
		&db_models.Transaction{},
		&db_models.Commission{},
		&db_models.Analysis{},
		&db_models.Tutorial{},
		&db_models.FAQ{},
		&db_models.DownloadFile{},
		&db_models.DownloadLog{},
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
