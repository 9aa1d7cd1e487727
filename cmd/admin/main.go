// Copyright (c) 2026 Ambutrack. All rights reserved.

// Command admin is the operator tool for the Ambutrack account authority.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Run database migrations (idempotent).
//  5. Execute the requested subcommand.
//
// The only subcommand today is create-site-admin, which bootstraps the
// first ownerless account. Every other account is created through the
// authority by an authenticated owner.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/emsgrid/ambutrack/internal/accounts"
	"github.com/emsgrid/ambutrack/internal/platform/config"
	"github.com/emsgrid/ambutrack/internal/platform/constants"
	"github.com/emsgrid/ambutrack/internal/platform/migration"
	pgstore "github.com/emsgrid/ambutrack/internal/platform/postgres"
	redisstore "github.com/emsgrid/ambutrack/internal/platform/redis"
	"github.com/emsgrid/ambutrack/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	username := flag.String("username", "", "username for the new site admin")
	flag.Parse()

	if flag.Arg(0) != "create-site-admin" || *username == "" {
		fmt.Fprintln(os.Stderr, "usage: admin -username <name> create-site-admin")
		os.Exit(2)
	}

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	// Root context for startup. A deadline keeps misconfiguration from
	// hanging the tool indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	accountStore := accounts.NewPostgresAccountStore(pool)

	var sessionStore accounts.SessionStore = accounts.NewPostgresSessionStore(pool)
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer rdb.Close()

		sessionStore = accounts.NewRedisSessionStore(rdb, accountStore)
	}

	authority := accounts.NewAuthority(accountStore, sessionStore, sec.NewCodec())

	// ── 6. Subcommand ─────────────────────────────────────────────────────
	id, tempPassword, err := authority.CreateSiteAdmin(startupCtx, *username)
	must(log, err, "create site admin")

	log.Info("site_admin_created",
		slog.String("id", id),
		slog.String("username", *username),
	)

	// The temporary password is shown exactly once and never logged.
	fmt.Printf("site admin %s created\nid:       %s\npassword: %s\n", *username, id, tempPassword)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
