package patient

import (
	"net/http"

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
	read := middleware.Require(rbac.RequiresPermission(rbac.PermPatientRead))
	write := middleware.Require(rbac.RequiresPermission(rbac.PermPatientWrite))

	router.With(read).Get("/", handler.listPatients)
	router.With(read).Get("/{id}", handler.getPatient)
	router.With(read).Get("/record/{recordNumber}", handler.getByRecordNumber)

	router.With(write).Post("/", handler.createPatient)
	router.With(write).Put("/{id}", handler.updatePatient)

	router.With(middleware.Require(rbac.RequiresPermission(rbac.PermPatientDelete))).
		Delete("/{id}", handler.deletePatient)
}

func (handler *Handler) listPatients(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	filter := Filter{
		Query: request.URL.Query().Get("q"),
		City:  request.URL.Query().Get("city"),
	}

	patients, total, err := handler.service.ListPatients(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, patients, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getPatient(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.GetPatient(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}

func (handler *Handler) getByRecordNumber(writer http.ResponseWriter, request *http.Request) {
	recordNumber := requestutil.Param(request, "recordNumber")

	p, err := handler.service.GetPatientByRecordNumber(request.Context(), recordNumber)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}

func (handler *Handler) createPatient(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Patient
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreatePatient(request.Context(), principal.AccountID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updatePatient(writer http.ResponseWriter, request *http.Request) {
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

	var input Patient
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdatePatient(request.Context(), principal.AccountID, id, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deletePatient(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.service.DeletePatient(request.Context(), principal.AccountID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
