// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	gormModels "github.com/mealsmith/planner/internal/infrastructure/persistence/gorm"
	"github.com/mealsmith/planner/internal/infrastructure/persistence/migrations"
)

// SetupSQLiteDatabase creates an in-memory SQLite database with the
// planner schema migrated. Fast enough for package-level repository
// tests; the postgres container below is for integration tests only.
func SetupSQLiteDatabase(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory sqlite")

	err = db.AutoMigrate(
		&gormModels.RecipeModel{},
		&gormModels.RecipeRatingModel{},
		&gormModels.HouseholdProfileModel{},
		&gormModels.GroceryItemModel{},
	)
	require.NoError(t, err, "Failed to migrate sqlite schema")

	return db
}

// TestDatabase provides a test database instance with cleanup
type TestDatabase struct {
	Container testcontainers.Container
	DB        *sql.DB
	GormDB    *gorm.DB
	PgxPool   *pgxpool.Pool
	DSN       string
	t         *testing.T
}

// DatabaseConfig holds test database configuration
type DatabaseConfig struct {
	Image    string
	Database string
	Username string
	Password string
	Port     string
}

// DefaultDatabaseConfig returns the default test database configuration.
// The pgvector image is needed because the embedding migration creates
// the vector extension.
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Image:    "pgvector/pgvector:pg16",
		Database: "mealsmith_test",
		Username: "test_user",
		Password: "test_password",
		Port:     "5432",
	}
}

// SetupTestDatabase creates a new test database using testcontainers
func SetupTestDatabase(t *testing.T) *TestDatabase {
	return SetupTestDatabaseWithConfig(t, DefaultDatabaseConfig())
}

// SetupTestDatabaseWithConfig creates a test database with custom configuration
func SetupTestDatabaseWithConfig(t *testing.T, cfg DatabaseConfig) *TestDatabase {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        cfg.Image,
				ExposedPorts: []string{cfg.Port + "/tcp"},
				Env: map[string]string{
					"POSTGRES_DB":               cfg.Database,
					"POSTGRES_USER":             cfg.Username,
					"POSTGRES_PASSWORD":         cfg.Password,
					"POSTGRES_HOST_AUTH_METHOD": "trust",
				},
				WaitingFor: wait.ForAll(
					wait.ForLog("database system is ready to accept connections").
						WithOccurrence(2).
						WithStartupTimeout(60*time.Second),
					wait.ForSQL(nat.Port(cfg.Port+"/tcp"), "pgx", func(host string, port nat.Port) string {
						return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
							cfg.Username, cfg.Password, host, port.Port(), cfg.Database)
					}),
				),
				Tmpfs: map[string]string{
					"/var/lib/postgresql/data": "rw,noexec,nosuid,size=1024m",
				},
			},
			Started: true,
		})
	require.NoError(t, err, "Failed to start postgres container")

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, nat.Port(cfg.Port))
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Username, cfg.Password, host, port.Port(), cfg.Database)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err, "Failed to connect to test database")

	err = db.Ping()
	require.NoError(t, err, "Failed to ping test database")

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to create GORM connection")

	pgxConfig, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err, "Failed to parse pgx config")

	pgxConfig.MaxConns = 10
	pgxConfig.MinConns = 1

	pgxPool, err := pgxpool.NewWithConfig(ctx, pgxConfig)
	require.NoError(t, err, "Failed to create pgx pool")

	testDB := &TestDatabase{
		Container: container,
		DB:        db,
		GormDB:    gormDB,
		PgxPool:   pgxPool,
		DSN:       dsn,
		t:         t,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// RunMigrations applies the embedded schema migrations to the test
// database
func (td *TestDatabase) RunMigrations() error {
	migrator, err := migrations.New(td.DB, zap.NewNop())
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	return migrator.Up()
}

// TruncateAllTables removes all data from tables while preserving structure
func (td *TestDatabase) TruncateAllTables() error {
	tables := []string{
		"recipe_embeddings",
		"recipe_ratings",
		"recipes",
		"grocery_items",
		"household_profiles",
	}

	for _, table := range tables {
		_, err := td.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return nil
}

// Cleanup closes all connections and stops the container
func (td *TestDatabase) Cleanup() {
	ctx := context.Background()

	if td.PgxPool != nil {
		td.PgxPool.Close()
	}
	if td.DB != nil {
		td.DB.Close()
	}
	if td.Container != nil {
		if err := td.Container.Terminate(ctx); err != nil {
			td.t.Logf("failed to terminate postgres container: %v", err)
		}
	}
}
