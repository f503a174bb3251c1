// cmd/dbtools/migrate/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/leagueapi/internal/config"
	appdb "github.com/codr1/leagueapi/internal/db"
)

func main() {
	var (
		configPath     = flag.String("config", config.PathFromEnv(), "Path to app.yaml")
		dbPath         = flag.String("db", "", "Path to SQLite database (overrides config)")
		migrationsPath = flag.String("migrations", "", "Migrations directory (defaults to the embedded set)")
		command        = flag.String("command", "", "Command to run (up, down, steps, version)")
		steps          = flag.Int("n", 1, "Number of steps for the steps command")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *command == "" {
		flag.Usage()
		os.Exit(1)
	}

	path, err := resolveDBPath(*configPath, *dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Fatal().Err(err).Str("db", path).Msg("Failed to create database directory")
	}

	m, err := openMigrator(path, *migrationsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Migration init failed")
	}
	defer m.Close()

	if err := execute(m, *command, *steps); err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("Migration failed")
	}
}

func resolveDBPath(configPath, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return "", err
	}
	return cfg.Database.Filename, nil
}

func openMigrator(dbPath, migrationsPath string) (*migrate.Migrate, error) {
	if migrationsPath == "" {
		return appdb.OpenMigrator(dbPath)
	}
	absMigrations, err := filepath.Abs(migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("invalid migrations path: %w", err)
	}
	return migrate.New("file://"+filepath.ToSlash(absMigrations), "sqlite3://"+filepath.ToSlash(dbPath))
}

func execute(m *migrate.Migrate, command string, steps int) error {
	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "steps":
		if err := m.Steps(steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("Version: none")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("Version: %d, Dirty: %v\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown command: %s", command)
	}

	log.Info().Str("command", command).Msg("Migration complete")
	return nil
}
