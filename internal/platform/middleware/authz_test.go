// Copyright (c) 2026 HGS. All rights reserved.

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hgs/siags/internal/iam/rbac"
	"github.com/hgs/siags/internal/platform/ctxutil"
	"github.com/hgs/siags/internal/platform/middleware"
)

// # Test Doubles

type fakeVerifier struct {
	valid   bool
	subject string
}

func (v fakeVerifier) Validate(token string) bool { return v.valid }

func (v fakeVerifier) Subject(token string) (string, error) {
	if v.subject == "" {
		return "", errors.New("no subject")
	}
	return v.subject, nil
}

type fakeResolver struct {
	principal *rbac.Principal
	err       error
}

func (r fakeResolver) ResolveAccount(ctx context.Context, username string) (*rbac.Principal, error) {
	return r.principal, r.err
}

func doctorPrincipal() *rbac.Principal {
	return &rbac.Principal{
		AccountID: 42,
		Username:  "dr.diop",
		Roles:     []rbac.RoleName{rbac.RoleMedecin},
		Authorities: rbac.EffectiveAuthorities([]rbac.Role{
			{Name: rbac.RoleMedecin, Permissions: []rbac.Permission{{Name: rbac.PermPatientRead}}},
		}),
	}
}

// capturePrincipal runs the Authenticate middleware and returns whatever
// principal the downstream handler observed.
func capturePrincipal(t *testing.T, verifier middleware.TokenVerifier, resolver middleware.IdentityResolver, header string) *rbac.Principal {
	t.Helper()

	var seen *rbac.Principal
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetPrincipal(request.Context())
		writer.WriteHeader(http.StatusOK)
	})

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		request.Header.Set("Authorization", header)
	}
	recorder := httptest.NewRecorder()

	middleware.Authenticate(verifier, resolver)(next).ServeHTTP(recorder, request)

	// Authenticate never aborts: downstream always runs.
	require.Equal(t, http.StatusOK, recorder.Code)
	return seen
}

// # Authenticate Tests

func TestAuthenticate_ValidTokenInjectsPrincipal(t *testing.T) {
	principal := doctorPrincipal()
	seen := capturePrincipal(t,
		fakeVerifier{valid: true, subject: "dr.diop"},
		fakeResolver{principal: principal},
		"Bearer some-token",
	)

	require.NotNil(t, seen)
	assert.Equal(t, "dr.diop", seen.Username)
}

func TestAuthenticate_DowngradesToAnonymous(t *testing.T) {
	tests := []struct {
		name     string
		verifier fakeVerifier
		resolver fakeResolver
		header   string
	}{
		{"missing_header", fakeVerifier{valid: true, subject: "dr.diop"}, fakeResolver{principal: doctorPrincipal()}, ""},
		{"malformed_header", fakeVerifier{valid: true, subject: "dr.diop"}, fakeResolver{principal: doctorPrincipal()}, "NotBearer"},
		{"wrong_scheme", fakeVerifier{valid: true, subject: "dr.diop"}, fakeResolver{principal: doctorPrincipal()}, "Basic dXNlcjpwYXNz"},
		{"invalid_token", fakeVerifier{valid: false}, fakeResolver{principal: doctorPrincipal()}, "Bearer bad-token"},
		{"unreadable_subject", fakeVerifier{valid: true, subject: ""}, fakeResolver{principal: doctorPrincipal()}, "Bearer some-token"},
		{"resolver_failure", fakeVerifier{valid: true, subject: "dr.diop"}, fakeResolver{err: errors.New("db down")}, "Bearer some-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := capturePrincipal(t, tt.verifier, tt.resolver, tt.header)
			assert.Nil(t, seen)
		})
	}
}

func TestAuthenticate_SchemeIsCaseInsensitive(t *testing.T) {
	seen := capturePrincipal(t,
		fakeVerifier{valid: true, subject: "dr.diop"},
		fakeResolver{principal: doctorPrincipal()},
		"bearer some-token",
	)
	require.NotNil(t, seen)
}

// # Require Tests

func runRequire(requirement rbac.Requirement, principal *rbac.Principal) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if principal != nil {
		request = request.WithContext(ctxutil.WithPrincipal(request.Context(), principal))
	}
	recorder := httptest.NewRecorder()

	middleware.Require(requirement)(next).ServeHTTP(recorder, request)
	return recorder
}

func TestRequire_AnonymousGets401(t *testing.T) {
	recorder := runRequire(rbac.RequiresAuthentication(), nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequire_InsufficientAuthoritiesGet403(t *testing.T) {
	recorder := runRequire(rbac.RequiresPermission(rbac.PermUserDelete), doctorPrincipal())
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestRequire_SatisfiedRequirementPasses(t *testing.T) {
	tests := []struct {
		name        string
		requirement rbac.Requirement
	}{
		{"authenticated", rbac.RequiresAuthentication()},
		{"permission", rbac.RequiresPermission(rbac.PermPatientRead)},
		{"any_role", rbac.RequiresAnyRole(rbac.RoleAdmin, rbac.RoleMedecin)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := runRequire(tt.requirement, doctorPrincipal())
			assert.Equal(t, http.StatusOK, recorder.Code)
		})
	}
}
