package service

import (
	"context"

	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/repository"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

const resourceIssueCategory = "issue category"

// IssueCategoryInput is a create or update payload. Code is only read on create.
type IssueCategoryInput struct {
	Code       *string
	Name       *string
	Department *string
	Status     *string
}

// IssueCategoryService manages issue categories.
type IssueCategoryService struct {
	categories repository.IssueCategoryRepository
}

// NewIssueCategoryService constructs the service.
func NewIssueCategoryService(categories repository.IssueCategoryRepository) *IssueCategoryService {
	return &IssueCategoryService{categories: categories}
}

// Create stores a category under an existing department.
func (s *IssueCategoryService) Create(ctx context.Context, input IssueCategoryInput) (*domain.IssueCategory, error) {
	errs := fieldErrors{}
	errs.requiredPtr("issue_category_code", input.Code, false)
	if err := errs.err(); err != nil {
		return nil, err
	}
	cat := &domain.IssueCategory{Status: domain.RecordStatusActive}
	setIfPresent(&cat.Code, input.Code)
	if err := applyIssueCategoryInput(cat, input, false); err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, cat); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.Get(ctx, cat.Code)
}

// Get returns the category with code, including its department name.
func (s *IssueCategoryService) Get(ctx context.Context, code string) (*domain.IssueCategory, error) {
	cat, err := s.categories.GetByCode(ctx, code)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, resourceIssueCategory, map[string]any{"issue_category_code": code})
	}
	return cat, nil
}

// List returns one page of categories matching filter.
func (s *IssueCategoryService) List(ctx context.Context, filter repository.IssueCategoryFilter) (Page[domain.IssueCategory], error) {
	items, err := s.categories.List(ctx, filter)
	if err != nil {
		return Page[domain.IssueCategory]{}, apperrors.MapError(err)
	}
	total, err := s.categories.Count(ctx, filter)
	if err != nil {
		return Page[domain.IssueCategory]{}, apperrors.MapError(err)
	}
	return Page[domain.IssueCategory]{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// Update changes name, department and status; the code is immutable.
func (s *IssueCategoryService) Update(ctx context.Context, code string, input IssueCategoryInput, partial bool) (*domain.IssueCategory, error) {
	cat, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := applyIssueCategoryInput(cat, input, partial); err != nil {
		return nil, err
	}
	if err := s.categories.Update(ctx, cat); err != nil {
		return nil, apperrors.NotFoundOr(err, resourceIssueCategory, map[string]any{"issue_category_code": code})
	}
	return s.Get(ctx, code)
}

// Delete removes the category.
func (s *IssueCategoryService) Delete(ctx context.Context, code string) error {
	if err := s.categories.Delete(ctx, code); err != nil {
		return apperrors.NotFoundOr(err, resourceIssueCategory, map[string]any{"issue_category_code": code})
	}
	return nil
}

func applyIssueCategoryInput(cat *domain.IssueCategory, input IssueCategoryInput, partial bool) error {
	errs := fieldErrors{}
	errs.requiredPtr("issue_category_name", input.Name, partial)
	errs.requiredPtr("department", input.Department, partial)
	if input.Status != nil {
		errs.choice("status", *input.Status, domain.RecordStatus(*input.Status).Valid(), choiceStrings(domain.RecordStatuses))
	}
	if err := errs.err(); err != nil {
		return err
	}
	setIfPresent(&cat.Name, input.Name)
	setIfPresent(&cat.DepartmentCode, input.Department)
	if input.Status != nil {
		cat.Status = domain.RecordStatus(*input.Status)
	}
	return nil
}
