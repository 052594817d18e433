// Copyright (c) 2026 HGS. All rights reserved.

/*
HTTP delivery layer for staff account administration.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Every route is guarded by a declarative requirement.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package account

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hgs/siags/internal/iam/rbac"
	"github.com/hgs/siags/internal/platform/middleware"
	requestutil "github.com/hgs/siags/internal/platform/request"
	"github.com/hgs/siags/internal/platform/respond"
	"github.com/hgs/siags/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements account administration HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with account administration routes.
//
// # Endpoints
//   - GET    /                 : Lists accounts (USER_READ).
//   - POST   /                 : Provisions an account (USER_WRITE).
//   - GET    /{id}             : Fetches one account (USER_READ).
//   - PUT    /{id}             : Updates profile fields (USER_WRITE).
//   - DELETE /{id}             : Removes an account (USER_DELETE).
//   - PUT    /{id}/roles       : Replaces the role set (USER_ASSIGN_ROLE).
//   - POST   /{id}/unlock      : Clears a brute-force lock (USER_WRITE).
//   - POST   /{id}/reset-token : Issues a password reset token (USER_WRITE).
//   - POST   /change-password  : Rotates the caller's password (authenticated).
//   - POST   /reset-password   : Consumes a reset token (public).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public: the reset token itself is the credential
	router.Post("/reset-password", handler.resetPassword)

	router.With(middleware.Require(rbac.RequiresAuthentication())).
		Post("/change-password", handler.changePassword)

	router.Group(func(r chi.Router) {
		r.With(middleware.Require(rbac.RequiresPermission(rbac.PermUserRead))).Get("/", handler.list)
		r.With(middleware.Require(rbac.RequiresPermission(rbac.PermUserRead))).Get("/{id}", handler.get)

		r.With(middleware.Require(rbac.RequiresPermission(rbac.PermUserWrite))).Post("/", handler.create)
		r.With(middleware.Require(rbac.RequiresPermission(rbac.PermUserWrite))).Put("/{id}", handler.update)
		r.With(middleware.Require(rbac.RequiresPermission(rbac.PermUserWrite))).Post("/{id}/unlock", handler.unlock)
		r.With(middleware.Require(rbac.RequiresPermission(rbac.PermUserWrite))).Post("/{id}/reset-token", handler.resetToken)

		r.With(middleware.Require(rbac.RequiresPermission(rbac.PermUserDelete))).Delete("/{id}", handler.delete)
		r.With(middleware.Require(rbac.RequiresPermission(rbac.PermUserAssignRole))).Put("/{id}/roles", handler.assignRoles)
	})

	return router
}

// # Request & Response Payloads

type createRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type updateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type assignRolesRequest struct {
	Roles []string `json:"roles"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// accountResponse is the client-facing projection of an Account.
type accountResponse struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Roles            []string  `json:"roles"`
	AccountNonLocked bool      `json:"account_non_locked"`
	CreatedAt        time.Time `json:"created_at"`
}

func toResponse(acc *Account) accountResponse {
	roles := make([]string, 0, len(acc.Roles))
	for _, role := range acc.Roles {
		roles = append(roles, string(role.Name))
	}

	return accountResponse{
		ID:               acc.ID,
		Username:         acc.Username,
		Email:            acc.Email,
		Roles:            roles,
		AccountNonLocked: acc.AccountNonLocked,
		CreatedAt:        acc.CreatedAt,
	}
}

// # Handlers

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	accounts, total, err := handler.accountService.ListAccounts(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	responses := make([]accountResponse, 0, len(accounts))
	for _, acc := range accounts {
		responses = append(responses, toResponse(acc))
	}

	respond.Paginated(writer, responses, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	acc, err := handler.accountService.GetAccount(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, toResponse(acc))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	acc, err := handler.accountService.CreateAccount(request.Context(), principal.AccountID, CreateInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Roles:    input.Roles,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, toResponse(acc))
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	acc, err := handler.accountService.UpdateAccount(request.Context(), principal.AccountID, id, UpdateInput{
		Username: input.Username,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, toResponse(acc))
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), principal.AccountID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) assignRoles(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input assignRolesRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	acc, err := handler.accountService.AssignRoles(request.Context(), principal.AccountID, id, input.Roles)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, toResponse(acc))
}

func (handler *Handler) unlock(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.UnlockAccount(request.Context(), principal.AccountID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Account unlocked"})
}

func (handler *Handler) resetToken(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.accountService.InitiatePasswordReset(request.Context(), principal.AccountID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldToken: token})
}

func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(request.Context(), principal.AccountID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Password updated"})
}

func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.CompletePasswordReset(request.Context(), input.Token, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Password has been reset"})
}
