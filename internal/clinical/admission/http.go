package admission

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hgs/siags/internal/iam/rbac"
	"github.com/hgs/siags/internal/platform/middleware"
	requestutil "github.com/hgs/siags/internal/platform/request"
	"github.com/hgs/siags/internal/platform/respond"
	"github.com/hgs/siags/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	intake := middleware.Require(rbac.RequiresAnyRole(rbac.RoleAdmin, rbac.RoleReceptionniste))
	consult := middleware.Require(rbac.RequiresAnyRole(rbac.RoleAdmin, rbac.RoleReceptionniste, rbac.RoleMedecin))

	router.With(intake).Post("/", handler.createAdmission)

	router.With(consult).Get("/", handler.listAdmissions)
	router.With(consult).Get("/{id}", handler.getAdmission)
	router.With(consult).Get("/patient/{patientId}", handler.listByPatient)
	router.With(consult).Put("/{id}", handler.updateAdmission)

	router.With(middleware.Require(rbac.RequiresPermission(rbac.PermAdmissionDischarge))).
		Post("/{id}/discharge", handler.discharge)

	router.With(middleware.Require(rbac.RequiresAnyRole(rbac.RoleAdmin))).
		Delete("/{id}", handler.deleteAdmission)
}

type dischargeRequest struct {
	Summary string `json:"discharge_summary"`
}

func (handler *Handler) listAdmissions(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{Status: query.Get("status")}
	if raw := query.Get("department_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.DepartmentID = id
		}
	}

	admissions, total, err := handler.service.ListAdmissions(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, admissions, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) listByPatient(writer http.ResponseWriter, request *http.Request) {
	patientID, err := requestutil.ID(request, "patientId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	admissions, total, err := handler.service.ListAdmissions(request.Context(), Filter{PatientID: patientID}, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, admissions, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getAdmission(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	a, err := handler.service.GetAdmission(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, a)
}

func (handler *Handler) createAdmission(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Admission
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateAdmission(request.Context(), principal.AccountID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateAdmission(writer http.ResponseWriter, request *http.Request) {
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

	var input Admission
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateAdmission(request.Context(), principal.AccountID, id, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) discharge(writer http.ResponseWriter, request *http.Request) {
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

	var input dischargeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	a, err := handler.service.Discharge(request.Context(), principal.AccountID, id, input.Summary)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, a)
}

func (handler *Handler) deleteAdmission(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.service.DeleteAdmission(request.Context(), principal.AccountID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
