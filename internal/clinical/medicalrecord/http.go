package medicalrecord

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
	read := middleware.Require(rbac.RequiresPermission(rbac.PermMedicalRecordRead))
	write := middleware.Require(rbac.RequiresPermission(rbac.PermMedicalRecordWrite))

	router.With(read).Get("/patient/{patientId}", handler.getByPatient)
	router.With(write).Post("/patient/{patientId}", handler.createForPatient)
	router.With(write).Put("/patient/{patientId}", handler.updateForPatient)
	router.With(write).Post("/patient/{patientId}/events", handler.appendEvent)
}

func (handler *Handler) getByPatient(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	patientID, err := requestutil.ID(request, "patientId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.GetByPatient(request.Context(), principal.AccountID, patientID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) createForPatient(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	patientID, err := requestutil.ID(request, "patientId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input MedicalRecord
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateForPatient(request.Context(), principal.AccountID, patientID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateForPatient(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	patientID, err := requestutil.ID(request, "patientId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input MedicalRecord
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.UpdateForPatient(request.Context(), principal.AccountID, patientID, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) appendEvent(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	patientID, err := requestutil.ID(request, "patientId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input MedicalEvent
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AppendEvent(request.Context(), principal.AccountID, patientID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}
