package database

import (
	"fmt"
	"log"
	"os"

	"trainvault/config"
	"trainvault/models"
	"trainvault/models/training"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to the configured database driver
func ConnectDb() {
	db, err := openDb()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	// Run database migrations
	runMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// openDb opens a GORM connection for the driver selected by DB_DRIVER.
// Postgres is the production default; sqlite is kept for local setups.
func openDb() (*gorm.DB, error) {
	switch config.AppConfig.DBDriver {
	case "sqlite":
		return gorm.Open(sqlite.Open(config.AppConfig.DBName+".db"), &gorm.Config{})
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			config.AppConfig.DBName,
		)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			config.AppConfig.DBName,
			os.Getenv("DB_PORT"),
		)
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.Permission{},
		&models.Group{},
		&models.GroupMember{},
		&models.AuditEvent{},
		&training.ContentItem{},
		&training.QuizQuestion{},
		&training.QuizOption{},
		&training.QuizAttempt{},
		&training.Curriculum{},
		&training.CurriculumSection{},
		&training.CurriculumItem{},
		&training.Assignment{},
		&training.Enrollment{},
		&training.EnrollmentItemProgress{},
		&training.AttestationSignature{},
		&training.FormResponse{},
		&training.CertificateTemplate{},
		&training.CertificateIssued{},
		&training.CompletionVaultRecord{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}
