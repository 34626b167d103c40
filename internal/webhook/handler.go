package webhook

import (
	"net/http"

	"edulead_backend/platform/config"

	"github.com/gin-gonic/gin"
)

// Notification is the leadgen webhook payload.
type Notification struct {
	Object  string  `json:"object"`
	Entries []Entry `json:"entry"`
}

// Entry groups the changes delivered for one page.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change is one leadgen event inside an entry.
type Change struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

// ChangeValue carries the leadgen identifiers.
type ChangeValue struct {
	LeadgenID   string `json:"leadgen_id"`
	FormID      string `json:"form_id"`
	PageID      string `json:"page_id"`
	CreatedTime int64  `json:"created_time"`
}

// Handler serves the webhook endpoints.
type Handler struct {
	service *Service
	cfg     config.WebhookConfig
}

// NewHandler creates the webhook handler.
func NewHandler(service *Service, cfg config.WebhookConfig) *Handler {
	return &Handler{service: service, cfg: cfg}
}

// HandleVerify answers the subscription handshake: when the verify token
// matches, the sent challenge is echoed back as plain text.
func (h *Handler) HandleVerify(c *gin.Context) {
	token := h.cfg.GetWebhookVerifyToken()
	if token != "" && c.Query("hub.verify_token") == token {
		c.String(http.StatusOK, c.Query("hub.challenge"))
		return
	}
	c.Status(http.StatusForbidden)
}

// HandleReceive accepts a leadgen notification and processes its events.
// The response acknowledges receipt; per-event failures are logged, not
// surfaced, so the sender does not retry the whole batch.
func (h *Handler) HandleReceive(c *gin.Context) {
	var notification Notification
	if err := c.ShouldBindJSON(&notification); err != nil || len(notification.Entries) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid POST data received"})
		return
	}

	h.service.ProcessNotification(c.Request.Context(), notification)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
