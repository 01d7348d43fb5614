package db

import (
	"fmt"
	"time"

	"github.com/foodreco/foodreco-backend/config"
	appLogger "github.com/foodreco/foodreco-backend/pkg/logger"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database. Postgres is used for hosted
// deployments; SQLite (pure Go driver) for local and embedded runs.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		appLogger.Info("Connecting to database", map[string]interface{}{
			"driver":   cfg.Driver,
			"host":     cfg.Host,
			"port":     cfg.Port,
			"database": cfg.DBName,
			"user":     cfg.User,
		})
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		appLogger.Info("Opening database", map[string]interface{}{
			"driver": cfg.Driver,
			"path":   cfg.SQLitePath,
		})
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Use silent mode, we'll use our own logger
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	maxOpen := 100
	if cfg.Driver == "sqlite" {
		// SQLite serializes writers; a single connection avoids SQLITE_BUSY.
		maxOpen = 1
		db.Exec("PRAGMA journal_mode=WAL;")
		db.Exec("PRAGMA busy_timeout=5000;")
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	appLogger.Info("Database connection established successfully", map[string]interface{}{
		"driver":         cfg.Driver,
		"max_open_conns": maxOpen,
	})
	return db, nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
