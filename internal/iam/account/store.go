// Copyright (c) 2026 HGS. All rights reserved.

package account

import (
	"context"
	"time"
)

// # Repository Contracts

// Repository defines the persistence operations for staff accounts.
type Repository interface {

	/*
		Create persists a new account and assigns its generated ID.

		Parameters:
		  - ctx: context.Context
		  - account: *Account (Entity to persist; ID is set on success)

		Returns:
		  - error: Constraint violations or connectivity errors
	*/
	Create(ctx context.Context, account *Account) error

	/*
		FindByID retrieves an account by its primary key, roles included.

		Returns:
		  - *Account: Hydrated account entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(ctx context.Context, id int64) (*Account, error)

	/*
		FindByUsername retrieves an account by its exact username.

		Description: The lookup is case-sensitive. "Bob" and "bob" are
		distinct accounts.

		Returns:
		  - *Account: Hydrated account entity with roles
		  - error: apperr.NotFound or database errors
	*/
	FindByUsername(ctx context.Context, username string) (*Account, error)

	/*
		ExistsByUsername reports whether the username is already taken.
	*/
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	/*
		ExistsByEmail reports whether the email is already registered.
	*/
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	/*
		List returns a page of accounts ordered by ID, with the total count.
	*/
	List(ctx context.Context, limit, offset int) ([]*Account, int, error)

	/*
		Update persists changes to an account's mutable profile fields
		(username, email).
	*/
	Update(ctx context.Context, account *Account) error

	/*
		UpdatePassword replaces only the password hash for an account.
	*/
	UpdatePassword(ctx context.Context, id int64, newHash string) error

	/*
		Delete permanently removes an account and its role assignments.
	*/
	Delete(ctx context.Context, id int64) error

	/*
		ReplaceRoles atomically replaces the account's role set.

		Parameters:
		  - ctx: context.Context
		  - accountID: int64
		  - roleIDs: []int64 (Complete new role set)

		Returns:
		  - error: Transaction failures
	*/
	ReplaceRoles(ctx context.Context, accountID int64, roleIDs []int64) error

	/*
		RecordFailedAttempt atomically increments the failed-attempt counter
		and applies the lock when the counter reaches maxAttempts.

		Description: The increment and the lock decision happen in a single
		UPDATE so that concurrent failed sign-ins cannot race past the
		threshold.

		Parameters:
		  - ctx: context.Context
		  - id: int64
		  - maxAttempts: int (Lock threshold)
		  - now: time.Time (Lock timestamp when the threshold is crossed)

		Returns:
		  - locked: bool (True if the account is locked after this attempt)
		  - attempts: int (Counter value after the increment)
		  - error: Execution errors
	*/
	RecordFailedAttempt(ctx context.Context, id int64, maxAttempts int, now time.Time) (locked bool, attempts int, err error)

	/*
		ResetFailedAttempts zeroes the failed-attempt counter.

		Description: Called after a successful sign-in. The write is skipped
		when the counter is already zero.
	*/
	ResetFailedAttempts(ctx context.Context, id int64) error

	/*
		Unlock clears the lock flag, lock timestamp and failed-attempt
		counter in one write.
	*/
	Unlock(ctx context.Context, id int64) error
}

// ResetTokenRepository stores short-lived password reset tokens.
type ResetTokenRepository interface {

	/*
		Set stores a reset token mapped to an account ID with a TTL.
	*/
	Set(ctx context.Context, token string, accountID int64, ttl time.Duration) error

	/*
		Get resolves a reset token back to its account ID.

		Returns:
		  - int64: Account ID
		  - error: apperr.NotFound if the token is absent or expired
	*/
	Get(ctx context.Context, token string) (int64, error)

	/*
		Delete invalidates a reset token after use.
	*/
	Delete(ctx context.Context, token string) error
}
