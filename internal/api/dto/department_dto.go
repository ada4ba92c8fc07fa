package dto

import "github.com/spec-kit/facility-complaints/internal/domain"

// DepartmentRequest payload.
type DepartmentRequest struct {
	Code   *string `json:"department_code"`
	Name   *string `json:"department_name"`
	Status *string `json:"status"`
}

// DepartmentResponse representation.
type DepartmentResponse struct {
	Code   string              `json:"department_code"`
	Name   string              `json:"department_name"`
	Status domain.RecordStatus `json:"status"`
}

// NewDepartmentResponse maps a department.
func NewDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{Code: d.Code, Name: d.Name, Status: d.Status}
}

// IssueCategoryRequest payload. Department is the owning department code.
type IssueCategoryRequest struct {
	Code       *string `json:"issue_category_code"`
	Name       *string `json:"issue_category_name"`
	Department *string `json:"department"`
	Status     *string `json:"status"`
}

// IssueCategoryResponse representation.
type IssueCategoryResponse struct {
	Code           string              `json:"issue_category_code"`
	Name           string              `json:"issue_category_name"`
	Department     string              `json:"department"`
	DepartmentName string              `json:"department_name"`
	Status         domain.RecordStatus `json:"status"`
}

// NewIssueCategoryResponse maps a category.
func NewIssueCategoryResponse(c *domain.IssueCategory) IssueCategoryResponse {
	return IssueCategoryResponse{
		Code:           c.Code,
		Name:           c.Name,
		Department:     c.DepartmentCode,
		DepartmentName: c.DepartmentName,
		Status:         c.Status,
	}
}
