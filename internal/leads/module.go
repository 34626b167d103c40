// Package leads provides the lead bounded context module: intake pipeline,
// load balancing, duplicate detection, follow-up ledger, and lead management.
package leads

import (
	dirrepo "edulead_backend/internal/directory/repository"
	"edulead_backend/internal/events"
	apphttp "edulead_backend/internal/http"
	"edulead_backend/internal/leads/assignment"
	"edulead_backend/internal/leads/dedupe"
	"edulead_backend/internal/leads/followup"
	"edulead_backend/internal/leads/handler"
	"edulead_backend/internal/leads/intake"
	"edulead_backend/internal/leads/management"
	"edulead_backend/internal/leads/repository"
	"edulead_backend/platform/clock"
	"edulead_backend/platform/logger"
	"edulead_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler    *handler.Handler
	repo       *repository.Repository
	intake     *intake.Service
	management *management.Service
	followups  *followup.Service
	detector   *dedupe.Detector
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, directory *dirrepo.Repository, bus events.Bus, clk clock.Clock, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)

	balancer := assignment.NewBalancer(repo)
	followupSvc := followup.New(repo, directory, bus, clk)
	intakeSvc := intake.New(directory, repo, balancer, followupSvc, bus, clk, log)
	mgmtSvc := management.New(repo, bus)
	detector := dedupe.New(directory, repo)

	h := handler.New(intakeSvc, mgmtSvc, followupSvc, detector, repo, val)

	return &Module{
		handler:    h,
		repo:       repo,
		intake:     intakeSvc,
		management: mgmtSvc,
		followups:  followupSvc,
		detector:   detector,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "leads" }

// Intake exposes the admission pipeline to the webhook channel.
func (m *Module) Intake() *intake.Service { return m.intake }

// Repository exposes the lead store to the sweeper and notifications.
func (m *Module) Repository() *repository.Repository { return m.repo }

// RegisterRoutes mounts the lead routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	leads := ctx.V1.Group("/leads")
	leads.POST("", m.handler.HandleCreateLead)
	leads.GET("", m.handler.HandleListLeads)
	leads.GET("/duplicate", m.handler.HandleDuplicateCheck)
	leads.GET("/:id", m.handler.HandleGetLead)
	leads.PATCH("/:id", m.handler.HandleUpdateLead)
	leads.POST("/:id/followups", m.handler.HandleRecordFollowUp)
	leads.GET("/:id/followups", m.handler.HandleFollowUpHistory)
	leads.GET("/:id/status", m.handler.HandleCurrentStatus)

	ctx.V1.GET("/counselors/loads", m.handler.HandleCounselorLoads)
}
