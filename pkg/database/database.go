// Package database owns the shared gorm connection used by every handler.
package database

import (
	"fmt"

	"github.com/faturaime/admin-api/pkg/config"
	"github.com/faturaime/admin-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB opens the postgres connection, verifies it responds, and applies the
// configured pool limits. The connection is process-wide; handlers reach it
// through GetDB.
func InitDB(dbConfig *config.DBConfig) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.New(postgres.Config{
		DSN: dbConfig.GetDSN(),
		// Disables implicit prepared statement usage
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(dbConfig.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying connection: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database did not respond to ping: %w", err)
	}

	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	logger.GetLogger().Info("Database connection pool configured",
		zap.Int("max_idle_conns", dbConfig.MaxIdleConns),
		zap.Int("max_open_conns", dbConfig.MaxOpenConns))

	db = conn
	return db, nil
}

// MigrateModels auto-migrates the given models on the shared connection
func MigrateModels(models ...any) error {
	if db == nil {
		return fmt.Errorf("database is not initialized")
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return nil
}

// GetDB returns the shared connection
func GetDB() *gorm.DB {
	return db
}
