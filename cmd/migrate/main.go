// Package main provides the database migration CLI
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/mealsmith/planner/internal/infrastructure/config"
	"github.com/mealsmith/planner/internal/infrastructure/persistence/migrations"
	"github.com/mealsmith/planner/pkg/logger"
)

func main() {
	var (
		command    = flag.String("command", "up", "migration command: up, down, reset, status, force, steps")
		version    = flag.Int("version", 0, "target version for the force command")
		steps      = flag.Int("steps", 0, "step count for the steps command, negative rolls back")
		configPath = flag.String("config", "", "path to config file")
	)
	flag.Parse()

	if err := run(*command, *version, *steps, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, version, steps int, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Database.Driver != "postgres" {
		return fmt.Errorf("migrations require the postgres driver, got %q", cfg.Database.Driver)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.App.Debug,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	db, err := sql.Open("pgx", cfg.GetDSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	migrator, err := migrations.New(db, log)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer migrator.Close()

	switch command {
	case "up":
		return migrator.Up()
	case "down":
		return migrator.Down()
	case "reset":
		return migrator.Reset()
	case "status":
		status, err := migrator.Status()
		if err != nil {
			return err
		}
		fmt.Printf("version: %d dirty: %v\n", status.Version, status.Dirty)
		return nil
	case "force":
		if version <= 0 {
			return fmt.Errorf("force requires -version")
		}
		return migrator.Force(version)
	case "steps":
		if steps == 0 {
			return fmt.Errorf("steps requires a non-zero -steps")
		}
		return migrator.Steps(steps)
	default:
		log.Error("Unknown migration command", zap.String("command", command))
		return fmt.Errorf("unknown command %q", command)
	}
}
