package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/facility-complaints/internal/api/http/handlers"
	"github.com/spec-kit/facility-complaints/internal/auth"
	"github.com/spec-kit/facility-complaints/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	Rooms           *handlers.RoomsHandler
	Departments     *handlers.DepartmentsHandler
	IssueCategories *handlers.IssueCategoriesHandler
	Complaints      *handlers.ComplaintsHandler
	Reports         *handlers.ReportHandler
	TAT             *handlers.TATHandler
	AuthMiddleware  *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Resource routes are served both at the root and under
// /api; the token endpoints only under /api.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Use(cfg.AuthMiddleware.Handle)

	api := app.Group("/api")
	api.Post("/token", cfg.Auth.Obtain)
	api.Post("/token/refresh", cfg.Auth.Refresh)

	registerResources(api, cfg)
	registerResources(app, cfg)
}

// registerResources mounts the resource routes. Only complaint deletion needs a staff token;
// every other endpoint accepts anonymous callers.
func registerResources(r fiber.Router, cfg RouteConfig) {
	staff := auth.RequireStaff()

	rooms := r.Group("/rooms")
	rooms.Get("/", cfg.Rooms.List)
	rooms.Post("/", cfg.Rooms.Create)
	rooms.Get("/:id", cfg.Rooms.Get)
	rooms.Put("/:id", cfg.Rooms.Update)
	rooms.Patch("/:id", cfg.Rooms.Patch)
	rooms.Delete("/:id", cfg.Rooms.Delete)
	rooms.Post("/:id/update_status", cfg.Rooms.UpdateStatus)

	depts := r.Group("/departments")
	depts.Get("/", cfg.Departments.List)
	depts.Post("/", cfg.Departments.Create)
	depts.Get("/:department_code", cfg.Departments.Get)
	depts.Put("/:department_code", cfg.Departments.Update)
	depts.Patch("/:department_code", cfg.Departments.Patch)
	depts.Delete("/:department_code", cfg.Departments.Delete)

	cats := r.Group("/issue-category")
	cats.Get("/", cfg.IssueCategories.List)
	cats.Post("/", cfg.IssueCategories.Create)
	cats.Get("/:issue_category_code", cfg.IssueCategories.Get)
	cats.Put("/:issue_category_code", cfg.IssueCategories.Update)
	cats.Patch("/:issue_category_code", cfg.IssueCategories.Patch)
	cats.Delete("/:issue_category_code", cfg.IssueCategories.Delete)

	complaints := r.Group("/complaints")
	complaints.Get("/", cfg.Complaints.List)
	complaints.Post("/", cfg.Complaints.Create)
	complaints.Get("/by_status", cfg.Complaints.ByStatus)
	complaints.Get("/by_priority", cfg.Complaints.ByPriority)
	complaints.Get("/:ticket_id", cfg.Complaints.Get)
	complaints.Put("/:ticket_id", cfg.Complaints.Update)
	complaints.Patch("/:ticket_id", cfg.Complaints.Patch)
	complaints.Delete("/:ticket_id", staff, cfg.Complaints.Delete)
	complaints.Post("/:ticket_id/update_status", cfg.Complaints.UpdateStatus)

	reports := r.Group("/report")
	reports.Get("/", cfg.Reports.List)
	reports.Get("/department_priority_stats", cfg.Reports.DepartmentPriorityStats)
	reports.Get("/all_department_stats", cfg.Reports.AllDepartmentStats)

	tat := r.Group("/TATView")
	tat.Get("/", cfg.TAT.List)
	tat.Get("/all_department_TATS", cfg.TAT.AllDepartmentTATs)
	tat.Get("/all_department_TATS/export", cfg.TAT.Export)
}

// NewApp builds the fiber application with global middlewares and every route registered.
func NewApp(appName string, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, logger, metrics, timeout)
	RegisterRoutes(app, routes)
	return app
}
