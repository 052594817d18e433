package report

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hgs/siags/internal/iam/rbac"
	"github.com/hgs/siags/internal/platform/apperr"
	"github.com/hgs/siags/internal/platform/middleware"
	"github.com/hgs/siags/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	patients := middleware.Require(rbac.RequiresPermission(rbac.PermReportReadPatient))
	admissions := middleware.Require(rbac.RequiresPermission(rbac.PermReportReadAdmission))
	consultations := middleware.Require(rbac.RequiresPermission(rbac.PermReportReadConsultation))

	router.With(patients).Get("/patients/count", handler.patientCount)
	router.With(patients).Get("/patients/gender-distribution", handler.genderDistribution)

	router.With(admissions).Get("/admissions/count", handler.admissionCount)
	router.With(admissions).Get("/admissions/count-by-date-range", handler.admissionCountByDateRange)
	router.With(admissions).Get("/admissions/count-by-department", handler.admissionCountByDepartment)
	router.With(admissions).Get("/admissions/monthly-count", handler.monthlyAdmissionCount)

	router.With(consultations).Get("/consultations/count", handler.consultationCount)
	router.With(consultations).Get("/consultations/count-by-date-range", handler.consultationCountByDateRange)
	router.With(consultations).Get("/consultations/count-by-doctor", handler.consultationCountByDoctor)
	router.With(consultations).Get("/consultations/diagnosis-frequency", handler.diagnosisFrequency)
}

type countResponse struct {
	Count int64 `json:"count"`
}

// dateRange reads the from/to query parameters, both required, RFC 3339.
func dateRange(request *http.Request) (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, request.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Unprocessable("Invalid or missing 'from' date")
	}
	to, err := time.Parse(time.RFC3339, request.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Unprocessable("Invalid or missing 'to' date")
	}
	return from, to, nil
}

func (handler *Handler) patientCount(writer http.ResponseWriter, request *http.Request) {
	total, err := handler.service.TotalPatients(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, countResponse{Count: total})
}

func (handler *Handler) genderDistribution(writer http.ResponseWriter, request *http.Request) {
	distribution, err := handler.service.PatientGenderDistribution(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, distribution)
}

func (handler *Handler) admissionCount(writer http.ResponseWriter, request *http.Request) {
	total, err := handler.service.TotalAdmissions(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, countResponse{Count: total})
}

func (handler *Handler) admissionCountByDateRange(writer http.ResponseWriter, request *http.Request) {
	from, to, err := dateRange(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	total, err := handler.service.AdmissionsBetween(request.Context(), from, to)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, countResponse{Count: total})
}

func (handler *Handler) admissionCountByDepartment(writer http.ResponseWriter, request *http.Request) {
	counts, err := handler.service.AdmissionsByDepartment(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, counts)
}

func (handler *Handler) monthlyAdmissionCount(writer http.ResponseWriter, request *http.Request) {
	year, err := strconv.Atoi(request.URL.Query().Get("year"))
	if err != nil {
		respond.Error(writer, request, apperr.Unprocessable("Invalid or missing 'year'"))
		return
	}

	counts, err := handler.service.MonthlyAdmissions(request.Context(), year)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, counts)
}

func (handler *Handler) consultationCount(writer http.ResponseWriter, request *http.Request) {
	total, err := handler.service.TotalConsultations(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, countResponse{Count: total})
}

func (handler *Handler) consultationCountByDateRange(writer http.ResponseWriter, request *http.Request) {
	from, to, err := dateRange(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	total, err := handler.service.ConsultationsBetween(request.Context(), from, to)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, countResponse{Count: total})
}

func (handler *Handler) consultationCountByDoctor(writer http.ResponseWriter, request *http.Request) {
	counts, err := handler.service.ConsultationsByDoctor(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, counts)
}

func (handler *Handler) diagnosisFrequency(writer http.ResponseWriter, request *http.Request) {
	limit, _ := strconv.Atoi(request.URL.Query().Get("limit"))
	frequencies, err := handler.service.DiagnosisFrequencies(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, frequencies)
}
