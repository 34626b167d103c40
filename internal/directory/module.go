// Package directory provides the reference-data bounded context module:
// students, courses, branches, sources, statuses, and counselors.
package directory

import (
	"edulead_backend/internal/directory/handler"
	"edulead_backend/internal/directory/repository"
	"edulead_backend/internal/directory/service"
	apphttp "edulead_backend/internal/http"
	"edulead_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the directory bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
	service *service.Service
}

// NewModule creates and initializes the directory module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc, val)

	return &Module{handler: h, repo: repo, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "directory" }

// Repository exposes the directory store to collaborating modules, which only
// ever read it by natural key or identifier.
func (m *Module) Repository() *repository.Repository { return m.repo }

// RegisterRoutes mounts the directory routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	students := ctx.V1.Group("/students")
	students.POST("", m.handler.HandleCreateStudent)
	students.GET("/:id", m.handler.HandleGetStudent)
	students.PATCH("/:id", m.handler.HandleUpdateStudent)

	ctx.V1.GET("/counselors", m.handler.HandleListCounselors)
}
