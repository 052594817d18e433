// Copyright (c) 2026 HGS. All rights reserved.

package sec

import (
	"encoding/base64"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSecret is 32 zero bytes, base64-encoded. Only used in tests.
var testSecret = base64.StdEncoding.EncodeToString(make([]byte, 32))

func newTestService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service, err := NewTokenService(testSecret, ttl, "siags.hgs.sn", logger)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_RejectsBadSecrets verifies the startup guard rails:
an empty, undecodable, or short secret must prevent construction.
*/
func TestNewTokenService_RejectsBadSecrets(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		secret string
	}{
		{"empty_secret", ""},
		{"not_base64", "!!not-base64!!"},
		{"too_short", base64.StdEncoding.EncodeToString([]byte("short"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenService(tt.secret, time.Hour, "siags.hgs.sn", logger)
			assert.Error(t, err)
		})
	}
}

/*
TestTokenService_IssueAndValidate checks the happy path: a freshly issued
token validates and yields its subject back.
*/
func TestTokenService_IssueAndValidate(t *testing.T) {
	service := newTestService(t, time.Hour)

	token, err := service.Issue("dr.diop")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, service.Validate(token))

	subject, err := service.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "dr.diop", subject)
}

/*
TestTokenService_ExpiryBoundary pins the exact validity window: a token is
accepted strictly before its expiresAt claim and rejected from that instant
on. The service clock is swapped so no sleeping is involved.
*/
func TestTokenService_ExpiryBoundary(t *testing.T) {
	const ttl = 15 * time.Minute
	service := newTestService(t, ttl)

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issuedAt }

	token, err := service.Issue("dr.diop")
	require.NoError(t, err)

	expiresAt := issuedAt.Add(ttl)

	// One second before expiry: accepted.
	service.now = func() time.Time { return expiresAt.Add(-time.Second) }
	assert.True(t, service.Validate(token))

	// Exactly at expiry: rejected.
	service.now = func() time.Time { return expiresAt }
	assert.False(t, service.Validate(token))

	// After expiry: still rejected, and the subject is unreachable.
	service.now = func() time.Time { return expiresAt.Add(time.Second) }
	assert.False(t, service.Validate(token))

	_, err = service.Subject(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsForeignSignature verifies that a token signed with
a different key never validates.
*/
func TestTokenService_RejectsForeignSignature(t *testing.T) {
	service := newTestService(t, time.Hour)

	otherSecret := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 32)))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	other, err := NewTokenService(otherSecret, time.Hour, "siags.hgs.sn", logger)
	require.NoError(t, err)

	token, err := other.Issue("dr.diop")
	require.NoError(t, err)

	assert.False(t, service.Validate(token))
}

/*
TestTokenService_RejectsGarbage covers malformed token strings.
*/
func TestTokenService_RejectsGarbage(t *testing.T) {
	service := newTestService(t, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c", "Bearer abc"} {
		assert.False(t, service.Validate(token), "token %q must not validate", token)
	}
}
