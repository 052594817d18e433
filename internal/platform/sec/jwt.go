// Copyright (c) 2026 HGS. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces (TokenIssuer, TokenVerifier).
package sec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minKeyBytes is the minimum decoded secret length accepted for HS256.
const minKeyBytes = 32

// TokenService issues and validates HS256-signed bearer tokens.
//
// # Statelessness
//
// A token binds only {subject=username, issuedAt, expiresAt}. Roles and
// permissions are deliberately NOT embedded: the authorization middleware
// reloads the caller's authority set from the database on every request so
// that a revoked role or permission takes effect immediately, without
// waiting for the token to expire.
//
// The signing key is derived once at construction and never mutated — the
// service is safe for concurrent use.
type TokenService struct {
	key    []byte
	ttl    time.Duration
	issuer string
	logger *slog.Logger

	// now is swapped in tests to pin the validity window boundaries.
	now func() time.Time
}

// NewTokenService derives the symmetric signing key from a base64-encoded
// secret. It fails when the secret is missing, undecodable, or too short;
// callers must treat that error as fatal at startup.
func NewTokenService(encodedSecret string, ttl time.Duration, issuer string, logger *slog.Logger) (*TokenService, error) {
	if encodedSecret == "" {
		return nil, errors.New("sec: jwt secret is empty")
	}

	key, err := base64.StdEncoding.DecodeString(encodedSecret)
	if err != nil {
		return nil, fmt.Errorf("sec: jwt secret is not valid base64: %w", err)
	}

	if len(key) < minKeyBytes {
		return nil, fmt.Errorf("sec: jwt secret too short: need at least %d bytes, got %d", minKeyBytes, len(key))
	}

	if ttl <= 0 {
		return nil, fmt.Errorf("sec: token ttl must be positive, got %s", ttl)
	}

	return &TokenService{
		key:    key,
		ttl:    ttl,
		issuer: issuer,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Issue creates a signed compact token for the given username.
func (service *TokenService) Issue(username string) (string, error) {
	now := service.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    service.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(service.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.key)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Validate checks the signature and expiry of a token string.
//
// # Contract
//
// Validate never returns an error for expected failure modes. Each failure
// category (malformed, expired, unsupported algorithm, bad signature, empty
// claims) is logged with its own diagnostic tag, but the caller only learns
// pass/fail — the distinction must never reach a client.
func (service *TokenService) Validate(tokenString string) bool {
	_, err := service.parse(tokenString)

	switch {
	case err == nil:
		return true
	case errors.Is(err, jwt.ErrTokenMalformed):
		service.logger.Warn("token_malformed", slog.String("error", err.Error()))
	case errors.Is(err, jwt.ErrTokenExpired):
		service.logger.Warn("token_expired", slog.String("error", err.Error()))
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		service.logger.Warn("token_signature_invalid", slog.String("error", err.Error()))
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		service.logger.Warn("token_unsupported", slog.String("error", err.Error()))
	case errors.Is(err, errEmptyClaims):
		service.logger.Warn("token_claims_empty", slog.String("error", err.Error()))
	default:
		service.logger.Warn("token_invalid", slog.String("error", err.Error()))
	}

	return false
}

// Subject extracts the username from a verified token.
//
// Callers are expected to have passed the token through [TokenService.Validate]
// first. Subject still re-verifies the signature internally: an unvalidated
// token must never yield a usable identity, so a bad token returns an error
// here rather than garbage.
func (service *TokenService) Subject(tokenString string) (string, error) {
	claims, err := service.parse(tokenString)
	if err != nil {
		return "", fmt.Errorf("sec: subject of invalid token: %w", err)
	}
	return claims.Subject, nil
}

// errEmptyClaims marks a structurally valid token with no usable subject.
var errEmptyClaims = errors.New("sec: token claims are empty")

// parse verifies the signature, algorithm, and validity window, and returns
// the registered claims.
func (service *TokenService) parse(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return service.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" {
		return nil, errEmptyClaims
	}

	return claims, nil
}
