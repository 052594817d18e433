package patient

import "context"

type Repository interface {
	ListPatients(context context.Context, f Filter, limit, offset int) ([]*Patient, int, error)
	GetPatient(context context.Context, id int64) (*Patient, error)
	GetPatientByRecordNumber(context context.Context, recordNumber string) (*Patient, error)
	CreatePatient(context context.Context, p *Patient) error
	UpdatePatient(context context.Context, p *Patient) error
	DeletePatient(context context.Context, id int64) error
}
