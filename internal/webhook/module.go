package webhook

import (
	dirrepo "edulead_backend/internal/directory/repository"
	apphttp "edulead_backend/internal/http"
	"edulead_backend/platform/config"
	"edulead_backend/platform/graph"
	"edulead_backend/platform/logger"
)

// Module is the leadgen webhook module implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule creates and initializes the webhook module.
func NewModule(cfg config.WebhookConfig, directory *dirrepo.Repository, admitter Admitter, log *logger.Logger) *Module {
	client := graph.NewClient(graph.Config{
		BaseURL:     cfg.GetGraphAPIBaseURL(),
		AccessToken: cfg.GetPageAccessToken(),
	})
	service := NewService(client, directory, admitter, cfg, log)

	return &Module{handler: NewHandler(service, cfg)}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "webhook" }

// RegisterRoutes mounts the webhook routes. These are public and sit behind
// the shared per-IP rate limiter rather than the versioned API group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Engine.Group("/webhook/leads")
	group.Use(ctx.WebhookRateLimiter.Middleware())
	group.GET("", m.handler.HandleVerify)
	group.POST("", m.handler.HandleReceive)
}
