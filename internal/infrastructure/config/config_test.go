package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Act: no config file anywhere, defaults carry the whole load
	cfg, err := Load("")

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "mealsmith-planner", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "json", cfg.App.LogFormat)

	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)

	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 6379, cfg.Redis.Port)

	assert.Equal(t, "local", cfg.Generator.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Generator.Model)
	assert.Equal(t, 4096, cfg.Generator.MaxTokens)
	assert.Equal(t, 60*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, 20, cfg.Generator.RequestsPerMinute)

	assert.False(t, cfg.Search.Enabled)
	assert.Equal(t, 40, cfg.Search.MaxResults)
	assert.Equal(t, "text-embedding-3-small", cfg.Search.EmbeddingModel)

	assert.Equal(t, 15, cfg.Planner.TargetCandidates)
	assert.Equal(t, 2, cfg.Planner.MinPerCoreType)
	assert.Equal(t, 5, cfg.Planner.AlternativeLimit)
	assert.Equal(t, 2, cfg.Planner.ExpiryWindowDays)
	assert.Equal(t, 2, cfg.Planner.CoverageThreshold)
	assert.Equal(t, 5*time.Minute, cfg.Planner.RatingCacheTTL)
}

func TestLoad_FromFile(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, `
app:
  name: planner-test
  environment: staging
database:
  driver: postgres
  database: planner
  host: db.internal
planner:
  target_candidates: 25
search:
  enabled: true
`)

	// Act
	cfg, err := Load(path)

	// Assert: file values override defaults, untouched keys keep theirs
	require.NoError(t, err)
	assert.Equal(t, "planner-test", cfg.App.Name)
	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 25, cfg.Planner.TargetCandidates)
	assert.True(t, cfg.Search.Enabled)
	assert.Equal(t, 2, cfg.Planner.MinPerCoreType)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	// Arrange
	t.Setenv("MEALSMITH_APP_LOG_LEVEL", "debug")
	t.Setenv("MEALSMITH_PLANNER_TARGET_CANDIDATES", "30")

	// Act
	cfg, err := Load("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 30, cfg.Planner.TargetCandidates)
}

func TestLoad_InvalidFileRejected(t *testing.T) {
	// Arrange: unknown environment fails struct validation
	path := writeConfigFile(t, `
app:
  environment: qa
`)

	// Act
	cfg, err := Load(path)

	// Assert
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidate_CrossChecks(t *testing.T) {
	baseline := func(t *testing.T) *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	t.Run("PostgresWithoutDatabaseName_ShouldFail", func(t *testing.T) {
		cfg := baseline(t)
		cfg.Database.Driver = "postgres"
		cfg.Database.Database = ""

		err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.database is required")
	})

	t.Run("SearchWithoutPostgres_ShouldFail", func(t *testing.T) {
		cfg := baseline(t)
		cfg.Search.Enabled = true

		err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search requires the postgres driver")
	})

	t.Run("SearchWithPostgres_ShouldPass", func(t *testing.T) {
		cfg := baseline(t)
		cfg.Search.Enabled = true
		cfg.Database.Driver = "postgres"

		assert.NoError(t, cfg.Validate())
	})

	t.Run("OpenAIInProductionWithoutKey_ShouldFail", func(t *testing.T) {
		cfg := baseline(t)
		cfg.App.Environment = "production"
		cfg.Generator.Provider = "openai"
		cfg.Generator.APIKey = ""

		err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "generator.api_key is required")
	})

	t.Run("OpenAIInDevelopmentWithoutKey_ShouldPass", func(t *testing.T) {
		cfg := baseline(t)
		cfg.Generator.Provider = "openai"
		cfg.Generator.APIKey = ""

		assert.NoError(t, cfg.Validate())
	})

	t.Run("UnknownProvider_ShouldFail", func(t *testing.T) {
		cfg := baseline(t)
		cfg.Generator.Provider = "anthropic"

		assert.Error(t, cfg.Validate())
	})

	t.Run("ZeroTargetCandidates_ShouldFail", func(t *testing.T) {
		cfg := baseline(t)
		cfg.Planner.TargetCandidates = 0

		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_EnvironmentHelpers(t *testing.T) {
	cfg := &Config{}

	cfg.App.Environment = "production"
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())

	cfg.App.Environment = "development"
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.IsDevelopment())
}

func TestConfig_ConnectionStrings(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "db.internal",
			Port:     5433,
			Username: "planner",
			Password: "secret",
			Database: "mealsmith",
			SSLMode:  "require",
		},
		Redis: RedisConfig{
			Host: "cache.internal",
			Port: 6380,
		},
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=planner password=secret dbname=mealsmith sslmode=require",
		cfg.GetDSN(),
	)
	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
}

func TestLoadWithWatcher_ReloadsOnRewrite(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, `
planner:
  target_candidates: 15
`)

	changes := make(chan *Config, 4)
	cfg, err := LoadWithWatcher(path, func(c *Config) {
		changes <- c
	})
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Planner.TargetCandidates)

	// Act
	require.NoError(t, os.WriteFile(path, []byte(`
planner:
  target_candidates: 21
`), 0o644))

	// Assert
	select {
	case refreshed := <-changes:
		assert.Equal(t, 21, refreshed.Planner.TargetCandidates)
	case <-time.After(5 * time.Second):
		t.Fatal("config rewrite was not observed")
	}
}
