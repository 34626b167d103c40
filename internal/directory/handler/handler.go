// Package handler exposes the directory module's HTTP endpoints.
package handler

import (
	"net/http"

	"edulead_backend/internal/directory/service"
	"edulead_backend/internal/directory/transport"
	"edulead_backend/platform/httpkit"
	"edulead_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles directory HTTP requests.
type Handler struct {
	service *service.Service
	val     *validator.Validator
}

// New creates a new directory handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{service: svc, val: val}
}

// HandleCreateStudent registers a student from the intake form.
// POST /api/v1/students
func (h *Handler) HandleCreateStudent(c *gin.Context) {
	var req transport.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	resp, err := h.service.CreateStudent(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// HandleUpdateStudent applies a partial student update.
// PATCH /api/v1/students/:id
func (h *Handler) HandleUpdateStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid student id", nil)
		return
	}

	var req transport.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	resp, err := h.service.UpdateStudent(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// HandleGetStudent retrieves one student.
// GET /api/v1/students/:id
func (h *Handler) HandleGetStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid student id", nil)
		return
	}

	resp, err := h.service.GetStudent(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// HandleListCounselors lists lead-handling users.
// GET /api/v1/counselors
func (h *Handler) HandleListCounselors(c *gin.Context) {
	resp, err := h.service.ListCounselors(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}
