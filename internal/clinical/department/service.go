package department

import (
	"context"
	"log/slog"

	"github.com/hgs/siags/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListDepartments(context context.Context) ([]*Department, error) {
	return service.repo.ListDepartments(context)
}

func (service *Service) GetDepartment(context context.Context, id int64) (*Department, error) {
	return service.repo.GetDepartment(context, id)
}

func (service *Service) CreateDepartment(context context.Context, d *Department) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, d.Name).MaxLen(FieldName, d.Name, 100)
	validator.MaxLen(FieldDescription, d.Description, 500)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.CreateDepartment(context, d); err != nil {
		return err
	}

	service.logger.Info("department_created", slog.String("name", d.Name))
	return nil
}

func (service *Service) UpdateDepartment(context context.Context, id int64, d *Department) error {
	d.ID = id
	validator := &validate.Validator{}
	validator.Required(FieldName, d.Name).MaxLen(FieldName, d.Name, 100)
	validator.MaxLen(FieldDescription, d.Description, 500)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateDepartment(context, d); err != nil {
		return err
	}

	service.logger.Info("department_updated", slog.Int64("department_id", id))
	return nil
}

func (service *Service) DeleteDepartment(context context.Context, id int64) error {
	if err := service.repo.DeleteDepartment(context, id); err != nil {
		return err
	}

	service.logger.Warn("department_deleted", slog.Int64("department_id", id))
	return nil
}
