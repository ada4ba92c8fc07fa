package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/facility-complaints/internal/api/dto"
	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/repository"
	"github.com/spec-kit/facility-complaints/internal/service"
)

// DepartmentsHandler serves department reference data.
type DepartmentsHandler struct {
	service   *service.DepartmentService
	paginator Paginator
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(departmentService *service.DepartmentService, paginator Paginator) *DepartmentsHandler {
	return &DepartmentsHandler{service: departmentService, paginator: paginator}
}

// List GET /departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	limit, offset, err := h.paginator.Parse(c)
	if err != nil {
		return err
	}
	status, err := choiceQuery[domain.RecordStatus](c, "status")
	if err != nil {
		return err
	}
	page, err := h.service.List(c.UserContext(), repository.DepartmentFilter{
		Name:       optionalQuery(c, "department_name"),
		Status:     status,
		SearchTerm: optionalQuery(c, "search"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(newPageResponse(c, h.paginator, page, func(items []domain.Department) []dto.DepartmentResponse {
		out := make([]dto.DepartmentResponse, 0, len(items))
		for i := range items {
			out = append(out, dto.NewDepartmentResponse(&items[i]))
		}
		return out
	}))
}

// Create POST /departments.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	dept, err := h.service.Create(c.UserContext(), departmentInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDepartmentResponse(dept))
}

// Get GET /departments/:department_code.
func (h *DepartmentsHandler) Get(c *fiber.Ctx) error {
	dept, err := h.service.Get(c.UserContext(), c.Params("department_code"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDepartmentResponse(dept))
}

// Update PUT /departments/:department_code.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	return h.update(c, false)
}

// Patch PATCH /departments/:department_code.
func (h *DepartmentsHandler) Patch(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *DepartmentsHandler) update(c *fiber.Ctx, partial bool) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	dept, err := h.service.Update(c.UserContext(), c.Params("department_code"), departmentInput(req), partial)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDepartmentResponse(dept))
}

// Delete DELETE /departments/:department_code.
func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("department_code")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func departmentInput(req dto.DepartmentRequest) service.DepartmentInput {
	return service.DepartmentInput{Code: req.Code, Name: req.Name, Status: req.Status}
}

// IssueCategoriesHandler serves issue categories.
type IssueCategoriesHandler struct {
	service   *service.IssueCategoryService
	paginator Paginator
}

// NewIssueCategoriesHandler constructs handler.
func NewIssueCategoriesHandler(categoryService *service.IssueCategoryService, paginator Paginator) *IssueCategoriesHandler {
	return &IssueCategoriesHandler{service: categoryService, paginator: paginator}
}

// List GET /issue-category.
func (h *IssueCategoriesHandler) List(c *fiber.Ctx) error {
	limit, offset, err := h.paginator.Parse(c)
	if err != nil {
		return err
	}
	status, err := choiceQuery[domain.RecordStatus](c, "status")
	if err != nil {
		return err
	}
	page, err := h.service.List(c.UserContext(), repository.IssueCategoryFilter{
		Code:       optionalQuery(c, "issue_category_code"),
		Department: optionalQuery(c, "department"),
		Name:       optionalQuery(c, "issue_category_name"),
		Status:     status,
		SearchTerm: optionalQuery(c, "search"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(newPageResponse(c, h.paginator, page, func(items []domain.IssueCategory) []dto.IssueCategoryResponse {
		out := make([]dto.IssueCategoryResponse, 0, len(items))
		for i := range items {
			out = append(out, dto.NewIssueCategoryResponse(&items[i]))
		}
		return out
	}))
}

// Create POST /issue-category.
func (h *IssueCategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.IssueCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	cat, err := h.service.Create(c.UserContext(), issueCategoryInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewIssueCategoryResponse(cat))
}

// Get GET /issue-category/:issue_category_code.
func (h *IssueCategoriesHandler) Get(c *fiber.Ctx) error {
	cat, err := h.service.Get(c.UserContext(), c.Params("issue_category_code"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewIssueCategoryResponse(cat))
}

// Update PUT /issue-category/:issue_category_code.
func (h *IssueCategoriesHandler) Update(c *fiber.Ctx) error {
	return h.update(c, false)
}

// Patch PATCH /issue-category/:issue_category_code.
func (h *IssueCategoriesHandler) Patch(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *IssueCategoriesHandler) update(c *fiber.Ctx, partial bool) error {
	var req dto.IssueCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	cat, err := h.service.Update(c.UserContext(), c.Params("issue_category_code"), issueCategoryInput(req), partial)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewIssueCategoryResponse(cat))
}

// Delete DELETE /issue-category/:issue_category_code.
func (h *IssueCategoriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("issue_category_code")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func issueCategoryInput(req dto.IssueCategoryRequest) service.IssueCategoryInput {
	return service.IssueCategoryInput{
		Code:       req.Code,
		Name:       req.Name,
		Department: req.Department,
		Status:     req.Status,
	}
}
