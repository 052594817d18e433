package report

import (
	"context"
	"time"

	"github.com/hgs/siags/internal/platform/apperr"
)

const defaultDiagnosisLimit = 20

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (service *Service) TotalPatients(context context.Context) (int64, error) {
	return service.repo.CountPatients(context)
}

func (service *Service) PatientGenderDistribution(context context.Context) ([]GenderCount, error) {
	return service.repo.PatientGenderDistribution(context)
}

func (service *Service) TotalAdmissions(context context.Context) (int64, error) {
	return service.repo.CountAdmissions(context)
}

func (service *Service) AdmissionsBetween(context context.Context, from, to time.Time) (int64, error) {
	if to.Before(from) {
		return 0, apperr.Unprocessable("The end date must not be before the start date")
	}
	return service.repo.CountAdmissionsBetween(context, from, to)
}

func (service *Service) AdmissionsByDepartment(context context.Context) ([]DepartmentAdmissionCount, error) {
	return service.repo.AdmissionCountByDepartment(context)
}

func (service *Service) MonthlyAdmissions(context context.Context, year int) ([]MonthlyAdmissionCount, error) {
	if year < 1900 || year > 2200 {
		return nil, apperr.Unprocessable("Invalid year")
	}
	return service.repo.MonthlyAdmissionCounts(context, year)
}

func (service *Service) TotalConsultations(context context.Context) (int64, error) {
	return service.repo.CountConsultations(context)
}

func (service *Service) ConsultationsBetween(context context.Context, from, to time.Time) (int64, error) {
	if to.Before(from) {
		return 0, apperr.Unprocessable("The end date must not be before the start date")
	}
	return service.repo.CountConsultationsBetween(context, from, to)
}

func (service *Service) ConsultationsByDoctor(context context.Context) ([]DoctorConsultationCount, error) {
	return service.repo.ConsultationCountByDoctor(context)
}

func (service *Service) DiagnosisFrequencies(context context.Context, limit int) ([]DiagnosisFrequency, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultDiagnosisLimit
	}
	return service.repo.DiagnosisFrequencies(context, limit)
}
