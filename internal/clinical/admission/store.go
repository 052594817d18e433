package admission

import "context"

type Repository interface {
	ListAdmissions(context context.Context, f Filter, limit, offset int) ([]*Admission, int, error)
	GetAdmission(context context.Context, id int64) (*Admission, error)
	CreateAdmission(context context.Context, a *Admission) error
	UpdateAdmission(context context.Context, a *Admission) error
	DeleteAdmission(context context.Context, id int64) error
}
