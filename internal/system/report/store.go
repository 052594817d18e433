package report

import (
	"context"
	"time"
)

// Repository is the read-only aggregation contract backing the reports.
type Repository interface {
	CountPatients(ctx context.Context) (int64, error)
	PatientGenderDistribution(ctx context.Context) ([]GenderCount, error)
	CountAdmissions(ctx context.Context) (int64, error)
	CountAdmissionsBetween(ctx context.Context, from, to time.Time) (int64, error)
	AdmissionCountByDepartment(ctx context.Context) ([]DepartmentAdmissionCount, error)
	MonthlyAdmissionCounts(ctx context.Context, year int) ([]MonthlyAdmissionCount, error)
	CountConsultations(ctx context.Context) (int64, error)
	CountConsultationsBetween(ctx context.Context, from, to time.Time) (int64, error)
	ConsultationCountByDoctor(ctx context.Context) ([]DoctorConsultationCount, error)
	DiagnosisFrequencies(ctx context.Context, limit int) ([]DiagnosisFrequency, error)
}
