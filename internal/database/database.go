// Package database opens the record store and prepares its schema.
package database

import (
	"fmt"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/noah-isme/gema-reportcard/internal/models"
)

const (
	// DriverSQLite stores records in a local file.
	DriverSQLite = "sqlite"
	// DriverPostgres stores records in a PostgreSQL database.
	DriverPostgres = "postgres"
)

// Connect opens the configured driver and bootstraps the schema.
func Connect(driver, dsn string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch driver {
	case DriverSQLite, "":
		db, err = ConnectSQLite(dsn)
	case DriverPostgres:
		db, err = ConnectPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		_ = Close(db)
		return nil, err
	}

	return db, nil
}

// Migrate creates the students table and its indexes when they are missing.
// Existing rows are left untouched, so calling it repeatedly is safe.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.StudentRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database handle: %w", err)
	}
	return sqlDB.Close()
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// Unique violations come back as gorm.ErrDuplicatedKey.
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}
}
