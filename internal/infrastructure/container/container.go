// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"
	"fmt"

	"github.com/mealsmith/planner/internal/application/planning"
	"github.com/mealsmith/planner/internal/infrastructure/ai/local"
	"github.com/mealsmith/planner/internal/infrastructure/ai/openai"
	"github.com/mealsmith/planner/internal/infrastructure/cache"
	"github.com/mealsmith/planner/internal/infrastructure/config"
	"github.com/mealsmith/planner/internal/infrastructure/monitoring"
	gormRepo "github.com/mealsmith/planner/internal/infrastructure/persistence/gorm"
	"github.com/mealsmith/planner/internal/infrastructure/persistence/memory"
	"github.com/mealsmith/planner/internal/infrastructure/persistence/postgres"
	"github.com/mealsmith/planner/internal/infrastructure/persistence/redis"
	"github.com/mealsmith/planner/internal/infrastructure/persistence/sqlite"
	"github.com/mealsmith/planner/internal/ports/outbound"
	"github.com/mealsmith/planner/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	MetricsModule,
	DatabaseModule,
	CacheModule,

	// Repository modules
	RepositoryModule,

	// Service modules
	SearchModule,
	GeneratorModule,
	ServiceModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// MetricsModule provides the Prometheus collector
var MetricsModule = fx.Provide(
	func() *monitoring.MetricsCollector {
		return monitoring.NewMetricsCollector(nil)
	},
)

// DatabaseModule provides database connections
var DatabaseModule = fx.Provide(
	NewDatabase,
)

// NewDatabase opens the configured backend. The memory driver needs no
// database and returns nil; the repository providers never touch it.
func NewDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "memory":
		log.Info("Using in-memory repositories")
		return nil, nil

	case "sqlite":
		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		dbPath := ""
		if cfg.Database.Database != "" {
			dbPath = cfg.Database.Database + ".db"
		}

		db, err := sqlite.SetupDatabase(dbPath, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		if cfg.IsDevelopment() {
			if err := sqlite.SeedDatabase(db); err != nil {
				log.Warn("Failed to seed database", zap.Error(err))
			}
		}

		log.Info("Connected to SQLite database",
			zap.String("path", dbPath),
			zap.Bool("in_memory", dbPath == ""),
		)
		return db, nil

	default:
		manager, err := postgres.NewConnectionManager(cfg, log)
		if err != nil {
			return nil, err
		}
		return manager.GetDB(), nil
	}
}

// CacheModule provides the cache backend
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if cfg.Redis.Enabled {
			return redis.NewCacheRepository(cfg, log)
		}
		log.Info("Using in-memory cache")
		return memory.NewCacheRepository(), nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	func(cfg *config.Config, db *gorm.DB) outbound.RecipeRepository {
		if cfg.Database.Driver == "memory" {
			return memory.NewRecipeRepository()
		}
		return gormRepo.NewRecipeRepository(db)
	},

	func(cfg *config.Config, db *gorm.DB) outbound.HouseholdRepository {
		if cfg.Database.Driver == "memory" {
			return memory.NewHouseholdRepository()
		}
		return gormRepo.NewHouseholdRepository(db)
	},

	// Ratings are read on every plan generation, so they get the
	// cache-first decorator whatever the backend
	func(
		cfg *config.Config,
		db *gorm.DB,
		cacheRepo outbound.CacheRepository,
		metrics *monitoring.MetricsCollector,
		log *zap.Logger,
	) outbound.RatingRepository {
		var source outbound.RatingRepository
		if cfg.Database.Driver == "memory" {
			source = memory.NewRatingRepository()
		} else {
			source = gormRepo.NewRatingRepository(db)
		}
		return cache.NewCachedRatingRepository(source, cacheRepo, cfg.Planner.RatingCacheTTL, metrics, log)
	},
)

// SearchModule provides similarity search when enabled. A nil service
// means the planner uses keyword search only.
var SearchModule = fx.Provide(
	func(cfg *config.Config, metrics *monitoring.MetricsCollector, log *zap.Logger) (outbound.SimilaritySearchService, error) {
		if !cfg.Search.Enabled {
			log.Info("Similarity search disabled, keyword ranking only")
			return nil, nil
		}

		pool, err := postgres.NewPgxPool(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create search pool: %w", err)
		}

		embedder := openai.NewClient(cfg, metrics, log)
		return postgres.NewSimilaritySearch(pool, embedder, log), nil
	},
)

// GeneratorModule provides the plan generator for the configured
// provider
var GeneratorModule = fx.Provide(
	func(cfg *config.Config, metrics *monitoring.MetricsCollector, log *zap.Logger) outbound.PlanGeneratorService {
		if cfg.Generator.Provider == "openai" {
			return openai.NewClient(cfg, metrics, log)
		}
		log.Info("Using deterministic local plan generator")
		return local.NewGenerator(metrics, log)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	planning.NewPlanningService,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	cacheRepo outbound.CacheRepository,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting meal planner",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("database", cfg.Database.Driver),
				zap.String("generator", cfg.Generator.Provider),
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down meal planner")

			switch c := cacheRepo.(type) {
			case interface{ Close() error }:
				if err := c.Close(); err != nil {
					log.Error("Failed to close cache", zap.Error(err))
				}
			case interface{ Close() }:
				c.Close()
			}

			if db != nil {
				sqlDB, err := db.DB()
				if err == nil {
					if err := sqlDB.Close(); err != nil {
						log.Error("Failed to close database connection", zap.Error(err))
					}
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
