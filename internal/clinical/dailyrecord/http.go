package dailyrecord

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
	care := middleware.Require(rbac.RequiresAnyRole(rbac.RoleAdmin, rbac.RoleMedecin, rbac.RoleInfirmier))
	read := middleware.Require(rbac.RequiresAnyRole(rbac.RoleAdmin, rbac.RoleMedecin, rbac.RoleInfirmier, rbac.RoleReceptionniste))

	router.With(care).Post("/", handler.createDailyRecord)
	router.With(care).Put("/{id}", handler.updateDailyRecord)
	router.With(care).Get("/recorded-by/{accountId}", handler.listByRecorder)

	router.With(read).Get("/", handler.listDailyRecords)
	router.With(read).Get("/{id}", handler.getDailyRecord)
	router.With(read).Get("/patient/{patientId}", handler.listByPatient)

	router.With(middleware.Require(rbac.RequiresAnyRole(rbac.RoleAdmin))).
		Delete("/{id}", handler.deleteDailyRecord)
}

func (handler *Handler) listDailyRecords(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	var filter Filter
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

	records, total, err := handler.service.ListDailyRecords(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) listByPatient(writer http.ResponseWriter, request *http.Request) {
	patientID, err := requestutil.ID(request, "patientId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	records, total, err := handler.service.ListDailyRecords(request.Context(), Filter{PatientID: patientID}, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) listByRecorder(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.ID(request, "accountId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	records, total, err := handler.service.ListDailyRecords(request.Context(), Filter{RecordedByID: accountID}, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getDailyRecord(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.GetDailyRecord(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) createDailyRecord(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input DailyRecord
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateDailyRecord(request.Context(), principal.AccountID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateDailyRecord(writer http.ResponseWriter, request *http.Request) {
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

	var input DailyRecord
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateDailyRecord(request.Context(), principal.AccountID, id, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteDailyRecord(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.service.DeleteDailyRecord(request.Context(), principal.AccountID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
