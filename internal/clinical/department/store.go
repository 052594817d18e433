package department

import "context"

type Repository interface {
	ListDepartments(context context.Context) ([]*Department, error)
	GetDepartment(context context.Context, id int64) (*Department, error)
	CreateDepartment(context context.Context, d *Department) error
	UpdateDepartment(context context.Context, d *Department) error
	DeleteDepartment(context context.Context, id int64) error
}
