package department

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hgs/siags/internal/iam/rbac"
	"github.com/hgs/siags/internal/platform/middleware"
	requestutil "github.com/hgs/siags/internal/platform/request"
	"github.com/hgs/siags/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	read := middleware.Require(rbac.RequiresPermission(rbac.PermDepartmentRead))
	write := middleware.Require(rbac.RequiresPermission(rbac.PermDepartmentWrite))

	router.With(read).Get("/", handler.listDepartments)
	router.With(read).Get("/{id}", handler.getDepartment)

	router.With(write).Post("/", handler.createDepartment)
	router.With(write).Put("/{id}", handler.updateDepartment)

	router.With(middleware.Require(rbac.RequiresPermission(rbac.PermDepartmentDelete))).
		Delete("/{id}", handler.deleteDepartment)
}

func (handler *Handler) listDepartments(writer http.ResponseWriter, request *http.Request) {
	departments, err := handler.service.ListDepartments(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, departments)
}

func (handler *Handler) getDepartment(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	d, err := handler.service.GetDepartment(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, d)
}

func (handler *Handler) createDepartment(writer http.ResponseWriter, request *http.Request) {
	var input Department
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateDepartment(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateDepartment(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Department
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateDepartment(request.Context(), id, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteDepartment(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteDepartment(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
