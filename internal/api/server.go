// Copyright (c) 2026 HGS. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hgs/siags/internal/clinical/admission"
	"github.com/hgs/siags/internal/clinical/consultation"
	"github.com/hgs/siags/internal/clinical/dailyrecord"
	"github.com/hgs/siags/internal/clinical/department"
	"github.com/hgs/siags/internal/clinical/medicalrecord"
	"github.com/hgs/siags/internal/clinical/patient"
	"github.com/hgs/siags/internal/iam/account"
	"github.com/hgs/siags/internal/iam/auth"
	"github.com/hgs/siags/internal/platform/config"
	"github.com/hgs/siags/internal/platform/constants"
	"github.com/hgs/siags/internal/platform/metrics"
	"github.com/hgs/siags/internal/platform/middleware"
	"github.com/hgs/siags/internal/system/auditlog"
	"github.com/hgs/siags/internal/system/report"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles sign-in, sign-up and the role catalogue.
	Auth *auth.Handler

	// Account handles staff account administration.
	Account *account.Handler

	// Patient handles the patient registry.
	Patient *patient.Handler

	// Department handles hospital departments.
	Department *department.Handler

	// Admission handles hospital stays and discharges.
	Admission *admission.Handler

	// Consultation handles medical consultations.
	Consultation *consultation.Handler

	// DailyRecord handles daily nursing observation sheets.
	DailyRecord *dailyrecord.Handler

	// MedicalRecord handles patient dossiers and medical events.
	MedicalRecord *medicalrecord.Handler

	// AuditLog exposes the audit trail to administrators.
	AuditLog *auditlog.Handler

	// Report exposes aggregate statistics for dashboards.
	Report *report.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	verifier middleware.TokenVerifier,
	resolver middleware.IdentityResolver,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(metrics.Instrument)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier, resolver))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes and the Prometheus scrape target.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/metrics", metrics.Handler())

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Account.Routes())
		api.Route("/patients", h.Patient.RegisterRoutes)
		api.Route("/departments", h.Department.RegisterRoutes)
		api.Route("/admissions", h.Admission.RegisterRoutes)
		api.Route("/consultations", h.Consultation.RegisterRoutes)
		api.Route("/daily-records", h.DailyRecord.RegisterRoutes)
		api.Route("/medical-records", h.MedicalRecord.RegisterRoutes)
		api.Route("/audit", h.AuditLog.RegisterRoutes)
		api.Route("/reports", h.Report.RegisterRoutes)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
