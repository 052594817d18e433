package consultation

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

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	record := middleware.Require(rbac.RequiresAnyRole(rbac.RoleAdmin, rbac.RoleMedecin, rbac.RoleReceptionniste))
	read := middleware.Require(rbac.RequiresAnyRole(rbac.RoleAdmin, rbac.RoleMedecin, rbac.RoleInfirmier, rbac.RoleReceptionniste))

	router.With(record).Post("/", handler.createConsultation)

	router.With(read).Get("/", handler.listConsultations)
	router.With(read).Get("/{id}", handler.getConsultation)
	router.With(read).Get("/patient/{patientId}", handler.listByPatient)

	router.With(middleware.Require(rbac.RequiresAnyRole(rbac.RoleAdmin, rbac.RoleMedecin, rbac.RoleReceptionniste))).
		Get("/doctor/{doctorId}", handler.listByDoctor)

	router.With(middleware.Require(rbac.RequiresAnyRole(rbac.RoleAdmin, rbac.RoleMedecin))).
		Put("/{id}", handler.updateConsultation)

	router.With(middleware.Require(rbac.RequiresAnyRole(rbac.RoleAdmin))).
		Delete("/{id}", handler.deleteConsultation)
}

func (handler *Handler) listConsultations(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{Diagnosis: query.Get("diagnosis")}
	if raw := query.Get("from"); raw != "" {
		if from, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.From = from
		}
	}
	if raw := query.Get("to"); raw != "" {
		if to, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.To = to
		}
	}

	consultations, total, err := handler.service.ListConsultations(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, consultations, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) listByPatient(writer http.ResponseWriter, request *http.Request) {
	patientID, err := requestutil.ID(request, "patientId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	consultations, total, err := handler.service.ListConsultations(request.Context(), Filter{PatientID: patientID}, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, consultations, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) listByDoctor(writer http.ResponseWriter, request *http.Request) {
	doctorID, err := requestutil.ID(request, "doctorId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	consultations, total, err := handler.service.ListConsultations(request.Context(), Filter{DoctorID: doctorID}, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, consultations, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getConsultation(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.GetConsultation(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, c)
}

func (handler *Handler) createConsultation(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Consultation
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateConsultation(request.Context(), principal.AccountID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateConsultation(writer http.ResponseWriter, request *http.Request) {
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

	var input Consultation
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateConsultation(request.Context(), principal.AccountID, id, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteConsultation(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.service.DeleteConsultation(request.Context(), principal.AccountID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
