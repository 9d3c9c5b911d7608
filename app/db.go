package app

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/shihabsss1/portfolio/models"
	"github.com/shihabsss1/portfolio/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func postgresDSN() string {
	port, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		port = 5432
	}

	return fmt.Sprintf(
		"postgres://%[4]s:%[5]s@%[1]s:%[2]d/%[3]s",
		os.Getenv("DB_HOST"),
		port,
		os.Getenv("DB_NAME"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASS"),
	)
}

// NewDB connects to PostgreSQL and migrates the account and content tables.
func NewDB() (*gorm.DB, error) {
	logLevel := logger.Warn

	if utils.IsDebug() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(postgresDSN()), &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("Could not connect to PostgreSQL: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.SiteDocument{},
	); err != nil {
		return fmt.Errorf("Could not migrate models: %w", err)
	}

	return nil
}

// SetupDefaultData creates the roles referenced by the access policy.
func SetupDefaultData(db *gorm.DB) {
	for _, r := range models.DefaultRoles() {
		role := &models.Role{}

		if err := db.Where(&models.Role{Name: r.Name}).Attrs(&models.Role{Title: r.Title}).FirstOrCreate(role).Error; err != nil {
			slog.Error(fmt.Sprintf("Could not create %s role: %v", r.Name, err))
			continue
		}
	}
}
