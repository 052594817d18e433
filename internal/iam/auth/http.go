// Copyright (c) 2026 HGS. All rights reserved.

/*
HTTP delivery layer for the authentication lifecycle.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Sign-in and sign-up are public; the role catalog is admin-only.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hgs/siags/internal/iam/rbac"
	"github.com/hgs/siags/internal/platform/middleware"
	requestutil "github.com/hgs/siags/internal/platform/request"
	"github.com/hgs/siags/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /signin : Authenticates and returns a JWT.
//   - POST /signup : Creates a new staff account.
//   - GET  /roles  : Lists the role catalog (ROLE_ADMIN only).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signin", handler.signIn)
	router.Post("/signup", handler.signUp)

	// Admin-only catalog inspection
	router.With(middleware.Require(rbac.RequiresAnyRole(rbac.RoleAdmin))).
		Get("/roles", handler.listRoles)

	return router
}

// # Request Payloads

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

/*
signIn authenticates a staff member.

POST /api/v1/auth/signin

Request:
  - Body: signInRequest (Username, Password)

Response:
  - 200: SignInResult (token, tokenType, userId, username, email, roles)
  - 401: Bad credentials or locked account
*/
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	var input signInRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.SignIn(request.Context(), SignInInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
signUp registers a new staff account.

POST /api/v1/auth/signup

Request:
  - Body: signUpRequest (Username, Email, Password, optional role aliases)

Response:
  - 201: Created account summary
  - 409: Username or email already registered
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var input signUpRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.authService.SignUp(request.Context(), SignUpInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Roles:    input.Roles,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
listRoles returns the role catalog with permissions.

GET /api/v1/auth/roles
*/
func (handler *Handler) listRoles(writer http.ResponseWriter, request *http.Request) {
	roles, err := handler.authService.ListRoles(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, roles)
}
