// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Search    SearchConfig    `mapstructure:"search"`
	Planner   PlannerConfig   `mapstructure:"planner"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment" validate:"oneof=development staging production"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat   string `mapstructure:"log_format" validate:"oneof=json console"`
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver             string        `mapstructure:"driver" validate:"oneof=postgres sqlite memory"`
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port" validate:"min=0,max=65535"`
	Database           string        `mapstructure:"database"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	SSLMode            string        `mapstructure:"ssl_mode"`
	Replicas           []string      `mapstructure:"replicas"`
	MaxOpenConns       int           `mapstructure:"max_open_conns" validate:"min=1"`
	MaxIdleConns       int           `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime    time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime    time.Duration `mapstructure:"conn_max_idle_time"`
	LogLevel           string        `mapstructure:"log_level"`
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
	AutoMigrate        bool          `mapstructure:"auto_migrate"`
	MigrationsPath     string        `mapstructure:"migrations_path"`
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port" validate:"min=0,max=65535"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database" validate:"min=0"`
	MaxRetries   int           `mapstructure:"max_retries"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolSize     int           `mapstructure:"pool_size" validate:"min=1"`
}

// GeneratorConfig contains plan generator configuration
type GeneratorConfig struct {
	Provider          string        `mapstructure:"provider" validate:"oneof=openai local"`
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	Model             string        `mapstructure:"model"`
	MaxTokens         int           `mapstructure:"max_tokens" validate:"min=1"`
	Temperature       float64       `mapstructure:"temperature" validate:"min=0,max=2"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute" validate:"min=1"`
	Burst             int           `mapstructure:"burst" validate:"min=1"`
}

// SearchConfig contains similarity search configuration
type SearchConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	MaxResults     int    `mapstructure:"max_results" validate:"min=1"`
	EmbeddingModel string `mapstructure:"embedding_model"`
}

// PlannerConfig contains candidate selection and scoring knobs
type PlannerConfig struct {
	TargetCandidates  int           `mapstructure:"target_candidates" validate:"min=1"`
	MinPerCoreType    int           `mapstructure:"min_per_core_type" validate:"min=1"`
	AlternativeLimit  int           `mapstructure:"alternative_limit" validate:"min=1"`
	ExpiryWindowDays  int           `mapstructure:"expiry_window_days" validate:"min=0"`
	CoverageThreshold int           `mapstructure:"coverage_threshold" validate:"min=1"`
	RatingCacheTTL    time.Duration `mapstructure:"rating_cache_ttl"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := newViper(configPath)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	config, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	return config, nil
}

// LoadWithWatcher loads configuration and re-unmarshals it whenever the
// config file is rewritten. onChange receives the refreshed configuration;
// a rewrite that fails validation is dropped and the previous configuration
// stays in effect.
func LoadWithWatcher(configPath string, onChange func(*Config)) (*Config, error) {
	v := newViper(configPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	config, err := unmarshal(v)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(event fsnotify.Event) {
		if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		refreshed, err := unmarshal(v)
		if err != nil {
			return
		}
		onChange(refreshed)
	})
	v.WatchConfig()

	return config, nil
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/mealsmith")
	}

	v.SetEnvPrefix("MEALSMITH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "mealsmith-planner")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	// Database defaults
	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.database", "mealsmith")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("database.slow_query_threshold", "100ms")
	v.SetDefault("database.migrations_path", "internal/infrastructure/persistence/migrations/sql")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.pool_size", 10)

	// Generator defaults
	v.SetDefault("generator.provider", "local")
	v.SetDefault("generator.base_url", "https://api.openai.com/v1")
	v.SetDefault("generator.model", "gpt-4o-mini")
	v.SetDefault("generator.max_tokens", 4096)
	v.SetDefault("generator.temperature", 0.4)
	v.SetDefault("generator.timeout", "60s")
	v.SetDefault("generator.requests_per_minute", 20)
	v.SetDefault("generator.burst", 5)

	// Search defaults
	v.SetDefault("search.enabled", false)
	v.SetDefault("search.max_results", 40)
	v.SetDefault("search.embedding_model", "text-embedding-3-small")

	// Planner defaults
	v.SetDefault("planner.target_candidates", 15)
	v.SetDefault("planner.min_per_core_type", 2)
	v.SetDefault("planner.alternative_limit", 5)
	v.SetDefault("planner.expiry_window_days", 2)
	v.SetDefault("planner.coverage_threshold", 2)
	v.SetDefault("planner.rating_cache_ttl", "5m")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Database.Driver == "postgres" && c.Database.Database == "" {
		return fmt.Errorf("database.database is required for the postgres driver")
	}

	if c.Generator.Provider == "openai" && c.Generator.APIKey == "" && c.IsProduction() {
		return fmt.Errorf("generator.api_key is required in production")
	}

	if c.Search.Enabled && c.Database.Driver != "postgres" {
		return fmt.Errorf("search requires the postgres driver")
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Username,
		c.Database.Password,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// RedisAddr returns the Redis connection address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
