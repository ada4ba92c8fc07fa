package service

import (
	"context"

	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/repository"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

const resourceDepartment = "department"

// DepartmentInput is a create or update payload. Code is only read on create.
type DepartmentInput struct {
	Code   *string
	Name   *string
	Status *string
}

// DepartmentService manages departments.
type DepartmentService struct {
	departments repository.DepartmentRepository
}

// NewDepartmentService constructs the service.
func NewDepartmentService(departments repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{departments: departments}
}

// Create stores a new department. Status defaults to active.
func (s *DepartmentService) Create(ctx context.Context, input DepartmentInput) (*domain.Department, error) {
	errs := fieldErrors{}
	errs.requiredPtr("department_code", input.Code, false)
	if err := errs.err(); err != nil {
		return nil, err
	}
	dept := &domain.Department{Status: domain.RecordStatusActive}
	setIfPresent(&dept.Code, input.Code)
	if err := applyDepartmentInput(dept, input, false); err != nil {
		return nil, err
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, apperrors.MapError(err)
	}
	return dept, nil
}

// Get returns the department with code.
func (s *DepartmentService) Get(ctx context.Context, code string) (*domain.Department, error) {
	dept, err := s.departments.GetByCode(ctx, code)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, resourceDepartment, map[string]any{"department_code": code})
	}
	return dept, nil
}

// List returns one page of departments matching filter.
func (s *DepartmentService) List(ctx context.Context, filter repository.DepartmentFilter) (Page[domain.Department], error) {
	items, err := s.departments.List(ctx, filter)
	if err != nil {
		return Page[domain.Department]{}, apperrors.MapError(err)
	}
	total, err := s.departments.Count(ctx, filter)
	if err != nil {
		return Page[domain.Department]{}, apperrors.MapError(err)
	}
	return Page[domain.Department]{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// Update changes name and status; the code is immutable.
func (s *DepartmentService) Update(ctx context.Context, code string, input DepartmentInput, partial bool) (*domain.Department, error) {
	dept, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := applyDepartmentInput(dept, input, partial); err != nil {
		return nil, err
	}
	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, apperrors.NotFoundOr(err, resourceDepartment, map[string]any{"department_code": code})
	}
	return dept, nil
}

// Delete removes the department. Departments still owning issue categories cannot be deleted.
func (s *DepartmentService) Delete(ctx context.Context, code string) error {
	if err := s.departments.Delete(ctx, code); err != nil {
		return apperrors.NotFoundOr(err, resourceDepartment, map[string]any{"department_code": code})
	}
	return nil
}

func applyDepartmentInput(dept *domain.Department, input DepartmentInput, partial bool) error {
	errs := fieldErrors{}
	errs.requiredPtr("department_name", input.Name, partial)
	if input.Status != nil {
		errs.choice("status", *input.Status, domain.RecordStatus(*input.Status).Valid(), choiceStrings(domain.RecordStatuses))
	}
	if err := errs.err(); err != nil {
		return err
	}
	setIfPresent(&dept.Name, input.Name)
	if input.Status != nil {
		dept.Status = domain.RecordStatus(*input.Status)
	}
	return nil
}
