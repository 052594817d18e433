// Copyright (c) 2026 HGS. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hgs/siags/internal/iam/rbac"
	"github.com/hgs/siags/internal/platform/apperr"
	"github.com/hgs/siags/internal/platform/sec"
	"github.com/hgs/siags/internal/platform/validate"
)

// # Contracts & Types

// Auditor records administrative actions in the audit trail.
//
// Implementations must never fail the calling operation: recording errors
// are logged and swallowed.
type Auditor interface {
	Record(ctx context.Context, actorID int64, action, resource string, resourceID int64, details string)
}

// Service implements administrative account management use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to role assignment,
// lockout management, or password reset logic must be reviewed by the
// security team.
type Service struct {
	repository  Repository
	roles       rbac.RoleRepository
	resetTokens ResetTokenRepository
	auditor     Auditor
	logger      *slog.Logger
}

// NewService constructs a new account [Service] with necessary dependencies.
func NewService(
	repository Repository,
	roles rbac.RoleRepository,
	resetTokens ResetTokenRepository,
	auditor Auditor,
	logger *slog.Logger,
) *Service {
	return &Service{
		repository:  repository,
		roles:       roles,
		resetTokens: resetTokens,
		auditor:     auditor,
		logger:      logger,
	}
}

// # Account Administration

// CreateInput holds the data required to provision a staff account.
type CreateInput struct {
	Username string
	Email    string
	Password string
	Roles    []string // Catalog role names, e.g. "ROLE_MEDECIN"
}

/*
CreateAccount validates, hashes, and persists a new staff account with an
explicit role set.

Description: Unlike self-service sign-up, this administrative path accepts
catalog role names directly and requires at least one.

Parameters:
  - ctx: context.Context
  - actorID: int64 (Administrator performing the action)
  - input: CreateInput

Returns:
  - *Account: Created entity with roles hydrated
  - error: Validation, Conflict (if identity exists) or storage errors
*/
func (service *Service) CreateAccount(ctx context.Context, actorID int64, input CreateInput) (*Account, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).MinLen(FieldUsername, input.Username, 3).MaxLen(FieldUsername, input.Username, 50)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, 8)
	validator.Custom(FieldRoles, len(input.Roles) == 0, "At least one role is required")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	roleIDs, err := service.resolveRoleNames(ctx, input.Roles)
	if err != nil {
		return nil, err
	}

	if taken, err := service.repository.ExistsByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflict("Username is already taken")
	}

	if taken, err := service.repository.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflict("Email is already registered")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("account_service_hash_failed: %w", err)
	}

	acc := &Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	if err := service.repository.Create(ctx, acc); err != nil {
		return nil, err
	}
	if err := service.repository.ReplaceRoles(ctx, acc.ID, roleIDs); err != nil {
		return nil, err
	}

	created, err := service.repository.FindByID(ctx, acc.ID)
	if err != nil {
		return nil, err
	}

	service.auditor.Record(ctx, actorID, "CREATE", "USER", created.ID, "Account provisioned")
	service.logger.Info("account_created",
		slog.Int64("account_id", created.ID),
		slog.String("username", created.Username),
	)

	return created, nil
}

/*
GetAccount retrieves a single account by ID, roles included.
*/
func (service *Service) GetAccount(ctx context.Context, id int64) (*Account, error) {
	return service.repository.FindByID(ctx, id)
}

/*
ListAccounts returns a page of accounts with the total count.
*/
func (service *Service) ListAccounts(ctx context.Context, limit, offset int) ([]*Account, int, error) {
	return service.repository.List(ctx, limit, offset)
}

// UpdateInput holds the mutable profile fields of an account.
type UpdateInput struct {
	Username string
	Email    string
}

/*
UpdateAccount modifies an account's profile fields.

Parameters:
  - ctx: context.Context
  - actorID: int64
  - id: int64
  - input: UpdateInput

Returns:
  - *Account: Updated entity
  - error: Validation, NotFound or storage errors
*/
func (service *Service) UpdateAccount(ctx context.Context, actorID, id int64, input UpdateInput) (*Account, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).MinLen(FieldUsername, input.Username, 3).MaxLen(FieldUsername, input.Username, 50)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	acc, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	acc.Username = input.Username
	acc.Email = input.Email
	if err := service.repository.Update(ctx, acc); err != nil {
		return nil, err
	}

	service.auditor.Record(ctx, actorID, "UPDATE", "USER", id, "Account profile updated")
	service.logger.Info("account_updated", slog.Int64("account_id", id))

	return acc, nil
}

/*
DeleteAccount permanently removes an account.

Description: Administrators cannot delete their own account, preventing a
hospital from locking itself out of user management entirely.
*/
func (service *Service) DeleteAccount(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return apperr.Forbidden("You cannot delete your own account")
	}

	if err := service.repository.Delete(ctx, id); err != nil {
		return err
	}

	service.auditor.Record(ctx, actorID, "DELETE", "USER", id, "Account deleted")
	service.logger.Warn("account_deleted", slog.Int64("account_id", id))

	return nil
}

// # Role Assignment

/*
AssignRoles replaces an account's role set with the given catalog names.

Description: The assignment takes effect on the target's next request, not
their next sign-in, because authorities are loaded fresh per request.

Parameters:
  - ctx: context.Context
  - actorID: int64
  - id: int64
  - roleNames: []string

Returns:
  - *Account: Updated entity with new roles
  - error: Validation, NotFound or storage errors
*/
func (service *Service) AssignRoles(ctx context.Context, actorID, id int64, roleNames []string) (*Account, error) {
	if len(roleNames) == 0 {
		return nil, validate.RequiredError(FieldRoles, "At least one role is required")
	}

	roleIDs, err := service.resolveRoleNames(ctx, roleNames)
	if err != nil {
		return nil, err
	}

	if _, err := service.repository.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if err := service.repository.ReplaceRoles(ctx, id, roleIDs); err != nil {
		return nil, err
	}

	acc, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	service.auditor.Record(ctx, actorID, "UPDATE", "USER", id, "Roles reassigned")
	service.logger.Info("account_roles_assigned",
		slog.Int64("account_id", id),
		slog.Any("roles", roleNames),
	)

	return acc, nil
}

// # Lockout Management

/*
UnlockAccount clears a brute-force lock ahead of its automatic expiry.
*/
func (service *Service) UnlockAccount(ctx context.Context, actorID, id int64) error {
	if err := service.repository.Unlock(ctx, id); err != nil {
		return err
	}

	service.auditor.Record(ctx, actorID, "UPDATE", "USER", id, "Account unlocked by administrator")
	service.logger.Info("account_unlocked", slog.Int64("account_id", id))

	return nil
}

// # Password Management

/*
ChangePassword rotates the caller's own password after verifying the
current one.

Parameters:
  - ctx: context.Context
  - accountID: int64
  - currentPassword: string
  - newPassword: string

Returns:
  - error: Unauthorized if the current password is wrong
*/
func (service *Service) ChangePassword(ctx context.Context, accountID int64, currentPassword, newPassword string) error {
	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, currentPassword)
	validator.Required(FieldNewPassword, newPassword).MinLen(FieldNewPassword, newPassword, 8)

	if err := validator.Err(); err != nil {
		return err
	}

	acc, err := service.repository.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, acc.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("account_service_hash_failed: %w", err)
	}

	if err := service.repository.UpdatePassword(ctx, accountID, hashedPassword); err != nil {
		return err
	}

	service.logger.Info("account_password_changed", slog.Int64("account_id", accountID))
	return nil
}

/*
InitiatePasswordReset issues a short-lived reset token for an account.

Description: Reset tokens are handed to staff by an administrator, not
emailed. The token is opaque and stored only in Redis with a TTL.

Parameters:
  - ctx: context.Context
  - actorID: int64
  - id: int64

Returns:
  - string: The opaque reset token
  - error: NotFound or storage errors
*/
func (service *Service) InitiatePasswordReset(ctx context.Context, actorID, id int64) (string, error) {
	acc, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("account_service_reset_token_failed: %w", err)
	}

	if err := service.resetTokens.Set(ctx, token, acc.ID, ResetTokenTTL); err != nil {
		return "", err
	}

	service.auditor.Record(ctx, actorID, "UPDATE", "USER", id, "Password reset initiated")
	service.logger.Info("account_reset_initiated", slog.Int64("account_id", id))

	return token, nil
}

/*
CompletePasswordReset consumes a reset token and sets the new password.

Description: The token is deleted before the password write; a token can
never be replayed even if the subsequent update fails.

Parameters:
  - ctx: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: NotFound (invalid token), validation or storage errors
*/
func (service *Service) CompletePasswordReset(ctx context.Context, token, newPassword string) error {
	validator := &validate.Validator{}
	validator.Required(FieldToken, token)
	validator.Required(FieldNewPassword, newPassword).MinLen(FieldNewPassword, newPassword, 8)

	if err := validator.Err(); err != nil {
		return err
	}

	accountID, err := service.resetTokens.Get(ctx, token)
	if err != nil {
		return err
	}

	if err := service.resetTokens.Delete(ctx, token); err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("account_service_hash_failed: %w", err)
	}

	if err := service.repository.UpdatePassword(ctx, accountID, hashedPassword); err != nil {
		return err
	}

	service.logger.Info("account_reset_completed", slog.Int64("account_id", accountID))
	return nil
}

// resolveRoleNames maps catalog role names to IDs, rejecting unknown names.
func (service *Service) resolveRoleNames(ctx context.Context, names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		roleName := rbac.RoleName(name)
		if !roleName.IsValid() {
			return nil, apperr.Unprocessable("Unknown role: " + name)
		}

		role, err := service.roles.FindByName(ctx, roleName)
		if err != nil {
			return nil, err
		}
		ids = append(ids, role.ID)
	}
	return ids, nil
}
