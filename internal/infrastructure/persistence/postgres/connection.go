// Package postgres provides PostgreSQL database connection and management
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mealsmith/planner/internal/infrastructure/config"
	gormModels "github.com/mealsmith/planner/internal/infrastructure/persistence/gorm"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// ConnectionManager manages PostgreSQL database connections
type ConnectionManager struct {
	db     *gorm.DB
	config *config.Config
	logger *zap.Logger
}

// NewConnectionManager creates a new database connection manager
func NewConnectionManager(cfg *config.Config, log *zap.Logger) (*ConnectionManager, error) {
	manager := &ConnectionManager{
		config: cfg,
		logger: log.Named("postgres"),
	}

	if err := manager.connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return manager, nil
}

// connect establishes the database connection with optimized settings
func (cm *ConnectionManager) connect() error {
	dsn := cm.config.GetDSN()

	gormConfig := &gorm.Config{
		Logger:                 cm.createGORMLogger(),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cm.config.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cm.config.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cm.config.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cm.config.Database.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if len(cm.config.Database.Replicas) > 0 {
		if err := cm.setupReadReplicas(db); err != nil {
			cm.logger.Warn("Failed to setup read replicas", zap.Error(err))
		}
	}

	if cm.config.Database.AutoMigrate {
		if err := cm.autoMigrate(db); err != nil {
			return fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	cm.db = db
	cm.logger.Info("Database connection established",
		zap.String("host", cm.config.Database.Host),
		zap.Int("port", cm.config.Database.Port),
		zap.String("database", cm.config.Database.Database),
		zap.Int("max_open_conns", cm.config.Database.MaxOpenConns),
	)

	return nil
}

// setupReadReplicas configures read replica connections
func (cm *ConnectionManager) setupReadReplicas(db *gorm.DB) error {
	replicas := make([]gorm.Dialector, 0, len(cm.config.Database.Replicas))
	for _, host := range cm.config.Database.Replicas {
		replicaDSN := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			host,
			cm.config.Database.Port,
			cm.config.Database.Username,
			cm.config.Database.Password,
			cm.config.Database.Database,
			cm.config.Database.SSLMode,
		)
		replicas = append(replicas, postgres.Open(replicaDSN))
	}

	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	}))
	if err != nil {
		return fmt.Errorf("failed to register read replicas: %w", err)
	}

	cm.logger.Info("Read replicas configured", zap.Int("count", len(replicas)))
	return nil
}

// autoMigrate keeps the schema in sync for deployments without the
// migration CLI. Production should run versioned migrations instead.
func (cm *ConnectionManager) autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&gormModels.RecipeModel{},
		&gormModels.RecipeRatingModel{},
		&gormModels.HouseholdProfileModel{},
		&gormModels.GroceryItemModel{},
	)
}

// createGORMLogger creates a GORM logger that writes through zap
func (cm *ConnectionManager) createGORMLogger() logger.Interface {
	logLevel := logger.Warn
	switch cm.config.Database.LogLevel {
	case "info":
		logLevel = logger.Info
	case "error":
		logLevel = logger.Error
	case "silent":
		logLevel = logger.Silent
	}

	return logger.New(
		&gormLogWriter{logger: cm.logger},
		logger.Config{
			SlowThreshold:             cm.config.Database.SlowQueryThreshold,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// gormLogWriter adapts zap to GORM's logger interface
type gormLogWriter struct {
	logger *zap.Logger
}

func (w *gormLogWriter) Printf(format string, args ...interface{}) {
	w.logger.Info(fmt.Sprintf(format, args...))
}

// GetDB returns the GORM database instance
func (cm *ConnectionManager) GetDB() *gorm.DB {
	return cm.db
}

// HealthCheck verifies database connectivity
func (cm *ConnectionManager) HealthCheck(ctx context.Context) error {
	sqlDB, err := cm.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// Close closes the database connection
func (cm *ConnectionManager) Close() error {
	sqlDB, err := cm.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	cm.logger.Info("Closing database connection")
	return sqlDB.Close()
}
