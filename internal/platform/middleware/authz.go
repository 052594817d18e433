// Copyright (c) 2026 HGS. All rights reserved.

// Identity and access control middleware for the SIAGS API server.
//
// # Architecture
//
// Authentication and authorization are split into two stages. [Authenticate]
// runs once per request: it verifies the bearer token and resolves the full
// principal, authorities included, from the database. [Require] runs per
// route: it evaluates a declarative [rbac.Requirement] against the resolved
// principal. Handlers never inspect tokens or roles themselves.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hgs/siags/internal/iam/rbac"
	"github.com/hgs/siags/internal/platform/apperr"
	"github.com/hgs/siags/internal/platform/constants"
	"github.com/hgs/siags/internal/platform/ctxutil"
	"github.com/hgs/siags/internal/platform/metrics"
	"github.com/hgs/siags/internal/platform/respond"
)

// TokenVerifier defines the interface needed to verify bearer tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// token service, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {

	// Validate reports whether the token is well-formed, correctly signed
	// and not expired. Diagnostics are logged by the implementation.
	Validate(token string) bool

	// Subject returns the username embedded in a valid token.
	Subject(token string) (string, error)
}

// IdentityResolver loads the full principal for a token subject.
//
// Implementations must read authorities fresh from the store on every call:
// role and permission changes take effect on the next request, not on the
// next sign-in.
type IdentityResolver interface {
	ResolveAccount(ctx context.Context, username string) (*rbac.Principal, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent or malformed, the request proceeds as anonymous.
//  3. If present, verify the token via [TokenVerifier].
//  4. Resolve the subject into a [*rbac.Principal] via [IdentityResolver].
//  5. Inject the principal into the request context for downstream use.
//
// # Failure semantics
//
// A bad token never aborts the request here. Every failure path downgrades
// the request to anonymous and lets [Require] produce the 401 on protected
// routes. Public routes stay reachable with a stale token in the header.
func Authenticate(verifier TokenVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			logger := ctxutil.GetLogger(ctx)

			// ── 1. Header Extraction ──────────────────────────────────────────
			authHeader := request.Header.Get(constants.HeaderAuthorization)
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], constants.BearerSchema) {
				logger.WarnContext(ctx, "auth_header_malformed")
				next.ServeHTTP(writer, request)
				return
			}
			token := strings.TrimSpace(parts[1])

			// ── 2. Token Verification ─────────────────────────────────────────
			if !verifier.Validate(token) {
				// Diagnostics already logged by the verifier
				next.ServeHTTP(writer, request)
				return
			}

			subject, err := verifier.Subject(token)
			if err != nil {
				logger.WarnContext(ctx, "auth_subject_unreadable", slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Principal Resolution ───────────────────────────────────────
			principal, err := resolver.ResolveAccount(ctx, subject)
			if err != nil {
				logger.WarnContext(ctx, "auth_principal_unresolved",
					slog.String("subject", subject),
					slog.Any("error", err),
				)
				next.ServeHTTP(writer, request)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithPrincipal(ctx, principal)))
		})
	}
}

// Require blocks requests whose principal does not satisfy the requirement.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. One Require per
// route group is the norm:
//
//	r.With(middleware.Require(rbac.RequiresPermission(rbac.PermPatientRead))).Get("/", handler.List)
//
// # Flow
//  1. No principal in context means the caller is anonymous: HTTP 401.
//  2. A principal whose authority set does not satisfy the requirement: HTTP 403.
func Require(requirement rbac.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if principal == nil {
				metrics.ObserveDenial("unauthenticated")
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !requirement.SatisfiedBy(principal.Authorities) {
				metrics.ObserveDenial("forbidden")
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "authz_denied",
					slog.String("username", principal.Username),
					slog.String("requirement", requirement.String()),
				)
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
