// Copyright (c) 2026 HGS. All rights reserved.

// Command api is the entry point for the SIAGS HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Seed the role and permission catalogue.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hgs/siags/internal/api"
	"github.com/hgs/siags/internal/clinical/admission"
	"github.com/hgs/siags/internal/clinical/consultation"
	"github.com/hgs/siags/internal/clinical/dailyrecord"
	"github.com/hgs/siags/internal/clinical/department"
	"github.com/hgs/siags/internal/clinical/medicalrecord"
	"github.com/hgs/siags/internal/clinical/patient"
	"github.com/hgs/siags/internal/iam/account"
	"github.com/hgs/siags/internal/iam/auth"
	"github.com/hgs/siags/internal/iam/rbac"
	"github.com/hgs/siags/internal/platform/config"
	"github.com/hgs/siags/internal/platform/constants"
	"github.com/hgs/siags/internal/platform/metrics"
	"github.com/hgs/siags/internal/platform/migration"
	pgstore "github.com/hgs/siags/internal/platform/postgres"
	redisstore "github.com/hgs/siags/internal/platform/redis"
	"github.com/hgs/siags/internal/platform/sec"
	"github.com/hgs/siags/internal/system/auditlog"
	"github.com/hgs/siags/internal/system/report"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[SIAGS] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Role Catalogue ─────────────────────────────────────────────────
	roleRepository := rbac.NewRoleRepository(pool)
	permissionRepository := rbac.NewPermissionRepository(pool)
	must(log, rbac.Seed(startupCtx, roleRepository, permissionRepository, log), "seed role catalogue")

	// ── 7. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, constants.AuthIssuer, log)
	must(log, err, "initialize jwt service")

	metrics.Init()

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	auditRepository := auditlog.NewPostgresRepository(pool)
	auditService := auditlog.NewService(auditRepository, log)

	accountRepository := account.NewRepository(pool, roleRepository)
	resetTokenRepository := account.NewResetTokenRepository(rdb)
	accountService := account.NewService(accountRepository, roleRepository, resetTokenRepository, auditService, log)

	authService := auth.NewService(
		accountRepository, roleRepository, jwtSvc, auditService, log,
		cfg.MaxFailedAttempts, cfg.LockDuration,
	)

	patientService := patient.NewService(patient.NewPostgresRepository(pool), auditService, log)
	departmentService := department.NewService(department.NewPostgresRepository(pool), log)
	admissionService := admission.NewService(admission.NewPostgresRepository(pool), auditService, log)
	consultationService := consultation.NewService(consultation.NewPostgresRepository(pool), auditService, log)
	dailyRecordService := dailyrecord.NewService(dailyrecord.NewPostgresRepository(pool), auditService, log)
	medicalRecordService := medicalrecord.NewService(medicalrecord.NewPostgresRepository(pool), auditService, log)
	reportService := report.NewService(report.NewPostgresRepository(pool))

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:      liveness,
		Readiness:     readiness,
		Auth:          auth.NewHandler(authService),
		Account:       account.NewHandler(accountService),
		Patient:       patient.NewHandler(patientService),
		Department:    department.NewHandler(departmentService),
		Admission:     admission.NewHandler(admissionService),
		Consultation:  consultation.NewHandler(consultationService),
		DailyRecord:   dailyrecord.NewHandler(dailyRecordService),
		MedicalRecord: medicalrecord.NewHandler(medicalRecordService),
		AuditLog:      auditlog.NewHandler(auditService),
		Report:        report.NewHandler(reportService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, authService, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
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
