// Copyright (c) 2026 HGS. All rights reserved.

package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hgs/siags/internal/iam/account"
	"github.com/hgs/siags/internal/iam/rbac"
	"github.com/hgs/siags/internal/platform/apperr"
	"github.com/hgs/siags/internal/platform/sec"
)

// # Test Doubles

// fakeAccountRepository is an in-memory account store that mirrors the
// SQL lockout bookkeeping of the Postgres repository.
type fakeAccountRepository struct {
	accounts      map[string]*account.Account
	resetWrites   int
	assignedRoles []int64
}

func newFakeAccountRepository(accounts ...*account.Account) *fakeAccountRepository {
	repo := &fakeAccountRepository{accounts: map[string]*account.Account{}}
	for _, acc := range accounts {
		repo.accounts[acc.Username] = acc
	}
	return repo
}

func (repo *fakeAccountRepository) byID(id int64) *account.Account {
	for _, acc := range repo.accounts {
		if acc.ID == id {
			return acc
		}
	}
	return nil
}

func (repo *fakeAccountRepository) Create(ctx context.Context, acc *account.Account) error {
	acc.ID = int64(len(repo.accounts) + 1)
	acc.AccountNonLocked = true
	repo.accounts[acc.Username] = acc
	return nil
}

func (repo *fakeAccountRepository) FindByID(ctx context.Context, id int64) (*account.Account, error) {
	if acc := repo.byID(id); acc != nil {
		return acc, nil
	}
	return nil, apperr.NotFound("Account")
}

func (repo *fakeAccountRepository) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	if acc, ok := repo.accounts[username]; ok {
		return acc, nil
	}
	return nil, apperr.NotFound("Account")
}

func (repo *fakeAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := repo.accounts[username]
	return ok, nil
}

func (repo *fakeAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, acc := range repo.accounts {
		if acc.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeAccountRepository) List(ctx context.Context, limit, offset int) ([]*account.Account, int, error) {
	return nil, 0, nil
}

func (repo *fakeAccountRepository) Update(ctx context.Context, acc *account.Account) error {
	return nil
}

func (repo *fakeAccountRepository) UpdatePassword(ctx context.Context, id int64, newHash string) error {
	if acc := repo.byID(id); acc != nil {
		acc.PasswordHash = newHash
		return nil
	}
	return apperr.NotFound("Account")
}

func (repo *fakeAccountRepository) Delete(ctx context.Context, id int64) error {
	return nil
}

func (repo *fakeAccountRepository) ReplaceRoles(ctx context.Context, accountID int64, roleIDs []int64) error {
	repo.assignedRoles = roleIDs
	return nil
}

func (repo *fakeAccountRepository) RecordFailedAttempt(ctx context.Context, id int64, maxAttempts int, now time.Time) (bool, int, error) {
	acc := repo.byID(id)
	if acc == nil {
		return false, 0, apperr.NotFound("Account")
	}

	acc.FailedAttempts++
	if acc.FailedAttempts >= maxAttempts {
		acc.AccountNonLocked = false
		if acc.LockTime == nil {
			lockTime := now
			acc.LockTime = &lockTime
		}
	}
	return !acc.AccountNonLocked, acc.FailedAttempts, nil
}

func (repo *fakeAccountRepository) ResetFailedAttempts(ctx context.Context, id int64) error {
	acc := repo.byID(id)
	if acc == nil {
		return apperr.NotFound("Account")
	}
	// Mirrors the store: a counter already at zero produces no row write.
	if acc.FailedAttempts > 0 {
		acc.FailedAttempts = 0
		repo.resetWrites++
	}
	return nil
}

func (repo *fakeAccountRepository) Unlock(ctx context.Context, id int64) error {
	acc := repo.byID(id)
	if acc == nil {
		return apperr.NotFound("Account")
	}
	acc.AccountNonLocked = true
	acc.LockTime = nil
	acc.FailedAttempts = 0
	return nil
}

type fakeRoleRepository struct {
	roles map[rbac.RoleName]*rbac.Role
}

func (repo *fakeRoleRepository) FindByName(ctx context.Context, name rbac.RoleName) (*rbac.Role, error) {
	if role, ok := repo.roles[name]; ok {
		return role, nil
	}
	return nil, apperr.NotFound("Role")
}

func (repo *fakeRoleRepository) ListRoles(ctx context.Context) ([]*rbac.Role, error) {
	all := make([]*rbac.Role, 0, len(repo.roles))
	for _, role := range repo.roles {
		all = append(all, role)
	}
	return all, nil
}

func (repo *fakeRoleRepository) RolesForAccount(ctx context.Context, accountID int64) ([]rbac.Role, error) {
	return nil, nil
}

func (repo *fakeRoleRepository) EnsureRole(ctx context.Context, name rbac.RoleName) (*rbac.Role, error) {
	return repo.FindByName(ctx, name)
}

func (repo *fakeRoleRepository) ReplaceRolePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	return nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(username string) (string, error) {
	return "token-for-" + username, nil
}

type nopAuditor struct{}

func (nopAuditor) Record(ctx context.Context, actorID int64, action, resource string, resourceID int64, details string) {
}

// # Fixtures

const testPassword = "correct-horse"

func newTestAccount(t *testing.T) *account.Account {
	t.Helper()
	hash, err := sec.HashPassword(testPassword)
	require.NoError(t, err)

	return &account.Account{
		ID:               1,
		Username:         "dr.diop",
		Email:            "dr.diop@hgs.sn",
		PasswordHash:     hash,
		AccountNonLocked: true,
		Roles: []rbac.Role{
			{ID: 2, Name: rbac.RoleMedecin, Permissions: []rbac.Permission{{Name: rbac.PermPatientRead}}},
		},
	}
}

func newTestService(repo *fakeAccountRepository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, &fakeRoleRepository{}, fakeTokenIssuer{}, nopAuditor{}, logger,
		DefaultMaxFailedAttempts, DefaultLockDuration)
}

func unauthorizedMessage(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 401, appError.HTTPStatus)
	return appError.Message
}

func TestLockoutPolicyDefaults(t *testing.T) {
	// Sign-in counting and per-request resolution share these values.
	assert.Equal(t, 5, DefaultMaxFailedAttempts)
	assert.Equal(t, 15*time.Minute, DefaultLockDuration)
}

// # Sign-In Tests

func TestSignIn_Success(t *testing.T) {
	acc := newTestAccount(t)
	acc.FailedAttempts = 3
	repo := newFakeAccountRepository(acc)
	service := newTestService(repo)

	result, err := service.SignIn(context.Background(), SignInInput{Username: "dr.diop", Password: testPassword})
	require.NoError(t, err)

	assert.Equal(t, "token-for-dr.diop", result.Token)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, int64(1), result.UserID)
	assert.Equal(t, []string{"ROLE_MEDECIN"}, result.Roles)

	// A successful sign-in clears the failure counter.
	assert.Equal(t, 0, acc.FailedAttempts)
	assert.Equal(t, 1, repo.resetWrites)
}

func TestSignIn_CleanCounterSkipsResetWrite(t *testing.T) {
	repo := newFakeAccountRepository(newTestAccount(t))
	service := newTestService(repo)

	_, err := service.SignIn(context.Background(), SignInInput{Username: "dr.diop", Password: testPassword})
	require.NoError(t, err)

	// A counter already at zero must not touch the row.
	assert.Equal(t, 0, repo.resetWrites)
}

func TestSignIn_UnknownUserGetsGenericMessage(t *testing.T) {
	service := newTestService(newFakeAccountRepository())

	_, err := service.SignIn(context.Background(), SignInInput{Username: "ghost", Password: "whatever"})

	// Same message as a wrong password so usernames cannot be probed.
	assert.Equal(t, msgBadCredentials, unauthorizedMessage(t, err))
}

func TestSignIn_WrongPasswordGetsGenericMessage(t *testing.T) {
	repo := newFakeAccountRepository(newTestAccount(t))
	service := newTestService(repo)

	_, err := service.SignIn(context.Background(), SignInInput{Username: "dr.diop", Password: "wrong"})

	assert.Equal(t, msgBadCredentials, unauthorizedMessage(t, err))
	assert.Equal(t, 1, repo.accounts["dr.diop"].FailedAttempts)
}

func TestSignIn_FifthFailureLocksAccount(t *testing.T) {
	acc := newTestAccount(t)
	repo := newFakeAccountRepository(acc)
	service := newTestService(repo)

	for attempt := 1; attempt <= DefaultMaxFailedAttempts; attempt++ {
		_, err := service.SignIn(context.Background(), SignInInput{Username: "dr.diop", Password: "wrong"})
		message := unauthorizedMessage(t, err)

		if attempt < DefaultMaxFailedAttempts {
			assert.Equal(t, msgBadCredentials, message, "attempt %d", attempt)
		} else {
			assert.Equal(t, msgAccountLocked, message, "attempt %d", attempt)
		}
	}

	assert.False(t, acc.AccountNonLocked)
	require.NotNil(t, acc.LockTime)

	// While locked, even the correct password is rejected with the locked message.
	_, err := service.SignIn(context.Background(), SignInInput{Username: "dr.diop", Password: testPassword})
	assert.Equal(t, msgAccountLocked, unauthorizedMessage(t, err))
}

func TestSignIn_ExpiredLockClearsPassively(t *testing.T) {
	acc := newTestAccount(t)
	lockTime := time.Now().Add(-time.Hour)
	acc.AccountNonLocked = false
	acc.LockTime = &lockTime
	acc.FailedAttempts = DefaultMaxFailedAttempts

	repo := newFakeAccountRepository(acc)
	service := newTestService(repo)

	result, err := service.SignIn(context.Background(), SignInInput{Username: "dr.diop", Password: testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	assert.True(t, acc.AccountNonLocked)
	assert.Nil(t, acc.LockTime)
	assert.Equal(t, 0, acc.FailedAttempts)
}

func TestSignIn_ActiveLockStaysLocked(t *testing.T) {
	acc := newTestAccount(t)
	lockTime := time.Now().Add(-time.Minute)
	acc.AccountNonLocked = false
	acc.LockTime = &lockTime
	acc.FailedAttempts = DefaultMaxFailedAttempts

	service := newTestService(newFakeAccountRepository(acc))

	_, err := service.SignIn(context.Background(), SignInInput{Username: "dr.diop", Password: testPassword})
	assert.Equal(t, msgAccountLocked, unauthorizedMessage(t, err))
	assert.False(t, acc.AccountNonLocked)
}

func TestSignIn_LockWindowBoundary(t *testing.T) {
	acc := newTestAccount(t)
	lockTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	acc.AccountNonLocked = false
	acc.LockTime = &lockTime
	acc.FailedAttempts = DefaultMaxFailedAttempts

	service := newTestService(newFakeAccountRepository(acc))

	// One second before the window closes: still locked.
	service.now = func() time.Time { return lockTime.Add(DefaultLockDuration - time.Second) }
	_, err := service.SignIn(context.Background(), SignInInput{Username: "dr.diop", Password: testPassword})
	assert.Equal(t, msgAccountLocked, unauthorizedMessage(t, err))

	// Exactly at the window's last instant: still locked.
	service.now = func() time.Time { return lockTime.Add(DefaultLockDuration) }
	_, err = service.SignIn(context.Background(), SignInInput{Username: "dr.diop", Password: testPassword})
	assert.Equal(t, msgAccountLocked, unauthorizedMessage(t, err))

	// Past the window: the lock clears and sign-in proceeds.
	service.now = func() time.Time { return lockTime.Add(DefaultLockDuration + time.Second) }
	result, err := service.SignIn(context.Background(), SignInInput{Username: "dr.diop", Password: testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestSignIn_MissingCredentialsFailValidation(t *testing.T) {
	service := newTestService(newFakeAccountRepository())

	_, err := service.SignIn(context.Background(), SignInInput{})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

// # Identity Resolution Tests

func TestResolveAccount_BuildsFreshAuthorities(t *testing.T) {
	acc := newTestAccount(t)
	service := newTestService(newFakeAccountRepository(acc))

	principal, err := service.ResolveAccount(context.Background(), "dr.diop")
	require.NoError(t, err)

	assert.Equal(t, int64(1), principal.AccountID)
	assert.True(t, principal.HasRole(rbac.RoleMedecin))
	assert.True(t, principal.HasPermission(rbac.PermPatientRead))
	assert.False(t, principal.HasPermission(rbac.PermUserDelete))
}

func TestResolveAccount_SeesGrantsAndRevocationsImmediately(t *testing.T) {
	acc := newTestAccount(t)
	service := newTestService(newFakeAccountRepository(acc))

	principal, err := service.ResolveAccount(context.Background(), "dr.diop")
	require.NoError(t, err)
	assert.True(t, principal.HasPermission(rbac.PermPatientRead))

	// Strip the doctor's permissions; the next resolution must reflect it.
	acc.Roles[0].Permissions = nil

	principal, err = service.ResolveAccount(context.Background(), "dr.diop")
	require.NoError(t, err)
	assert.False(t, principal.HasPermission(rbac.PermPatientRead))
	assert.True(t, principal.HasRole(rbac.RoleMedecin))
}

func TestResolveAccount_LockedAccountIsRejected(t *testing.T) {
	acc := newTestAccount(t)
	lockTime := time.Now()
	acc.AccountNonLocked = false
	acc.LockTime = &lockTime

	service := newTestService(newFakeAccountRepository(acc))

	_, err := service.ResolveAccount(context.Background(), "dr.diop")
	assert.Equal(t, msgAccountLocked, unauthorizedMessage(t, err))
}

func TestResolveAccount_ExpiredLockUnlocks(t *testing.T) {
	acc := newTestAccount(t)
	lockTime := time.Now().Add(-2 * DefaultLockDuration)
	acc.AccountNonLocked = false
	acc.LockTime = &lockTime

	service := newTestService(newFakeAccountRepository(acc))

	principal, err := service.ResolveAccount(context.Background(), "dr.diop")
	require.NoError(t, err)
	assert.Equal(t, "dr.diop", principal.Username)
	assert.True(t, acc.AccountNonLocked)
}

// # Sign-Up Tests

func TestSignUp_DefaultsToReceptionist(t *testing.T) {
	repo := newFakeAccountRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	roles := &fakeRoleRepository{roles: map[rbac.RoleName]*rbac.Role{
		rbac.RoleReceptionniste: {ID: 4, Name: rbac.RoleReceptionniste},
	}}
	service := NewService(repo, roles, fakeTokenIssuer{}, nopAuditor{}, logger,
		DefaultMaxFailedAttempts, DefaultLockDuration)

	created, err := service.SignUp(context.Background(), SignUpInput{
		Username: "front.desk",
		Email:    "front.desk@hgs.sn",
		Password: "long-enough-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "front.desk", created.Username)
	assert.True(t, created.AccountNonLocked)
}

func TestSignUp_RejectsTakenUsername(t *testing.T) {
	service := newTestService(newFakeAccountRepository(newTestAccount(t)))

	_, err := service.SignUp(context.Background(), SignUpInput{
		Username: "dr.diop",
		Email:    "someone.else@hgs.sn",
		Password: "long-enough-password",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 409, appError.HTTPStatus)
}

func TestSignUp_UnknownAliasFallsBackToReceptionist(t *testing.T) {
	repo := newFakeAccountRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	roles := &fakeRoleRepository{roles: map[rbac.RoleName]*rbac.Role{
		rbac.RoleReceptionniste: {ID: 4, Name: rbac.RoleReceptionniste},
	}}
	service := NewService(repo, roles, fakeTokenIssuer{}, nopAuditor{}, logger,
		DefaultMaxFailedAttempts, DefaultLockDuration)

	created, err := service.SignUp(context.Background(), SignUpInput{
		Username: "new.user",
		Email:    "new.user@hgs.sn",
		Password: "long-enough-password",
		Roles:    []string{"janitor"},
	})
	require.NoError(t, err)
	assert.Equal(t, "new.user", created.Username)

	// The unrecognized alias resolves to the default role.
	assert.Equal(t, []int64{4}, repo.assignedRoles)
}

func TestSignUp_CollapsesDuplicateAliases(t *testing.T) {
	repo := newFakeAccountRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	roles := &fakeRoleRepository{roles: map[rbac.RoleName]*rbac.Role{
		rbac.RoleReceptionniste: {ID: 4, Name: rbac.RoleReceptionniste},
		rbac.RoleInfirmier:      {ID: 3, Name: rbac.RoleInfirmier},
	}}
	service := NewService(repo, roles, fakeTokenIssuer{}, nopAuditor{}, logger,
		DefaultMaxFailedAttempts, DefaultLockDuration)

	_, err := service.SignUp(context.Background(), SignUpInput{
		Username: "ward.nurse",
		Email:    "ward.nurse@hgs.sn",
		Password: "long-enough-password",
		Roles:    []string{"infirmier", "janitor", "receptionniste", "infirmier"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, repo.assignedRoles)
}
