// Copyright (c) 2026 HGS. All rights reserved.

package auth

import "time"

// # Brute-Force Lockout Policy

const (
	// DefaultMaxFailedAttempts is the number of consecutive failed sign-ins
	// that locks an account.
	DefaultMaxFailedAttempts = 5

	// DefaultLockDuration is how long a locked account stays locked before
	// the automatic unlock takes effect.
	DefaultLockDuration = 15 * time.Minute
)

// # Client Messages

const (
	// msgBadCredentials is returned for unknown usernames and wrong
	// passwords alike. A distinct message would let callers probe which
	// usernames exist.
	msgBadCredentials = "Invalid username or password"

	// msgAccountLocked is returned while the lock window is active.
	msgAccountLocked = "Your account has been locked due to too many failed login attempts. Please try again later."
)
