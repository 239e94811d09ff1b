// Command migrate applies or rolls back the embedded Postgres migrations.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/classroom/scheduler/internal/infrastructure/config"
	"github.com/classroom/scheduler/internal/infrastructure/db/postgres"
	"github.com/classroom/scheduler/pkg/logger"
)

func main() {
	command := flag.String("command", "up", "migrate command (up|status|down)")
	timeout := flag.Duration("timeout", time.Minute, "command timeout")
	target := flag.Int64("target", 0, "target version for down command (optional)")
	flag.Parse()

	log := logger.Init(logger.Options{Level: os.Getenv("LOG_LEVEL"), Service: "scheduler-migrate"})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	dbCfg, err := config.LoadDatabaseFrom(ctx, envconfig.OsLookuper())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load database configuration")
	}
	dsn := dbCfg.ResolveURL()
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	db, err := postgres.Connect(ctx, postgres.Config{DSN: dsn})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	switch *command {
	case "up":
		err = postgres.Migrate(ctx, db)
	case "status":
		err = postgres.MigrationStatus(ctx, db)
	case "down":
		err = postgres.Rollback(ctx, db, *target)
	default:
		log.Error().Str("command", *command).Msg("unsupported command")
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Str("command", *command).Msg("migration command failed")
		os.Exit(1)
	}

	log.Info().Str("command", *command).Msg("migration command completed")
}
