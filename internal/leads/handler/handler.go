// Package handler exposes the leads module's HTTP endpoints.
package handler

import (
	"context"
	"net/http"

	"edulead_backend/internal/leads/assignment"
	"edulead_backend/internal/leads/dedupe"
	"edulead_backend/internal/leads/intake"
	"edulead_backend/internal/leads/management"
	"edulead_backend/internal/leads/repository"
	"edulead_backend/internal/leads/transport"
	"edulead_backend/platform/httpkit"
	"edulead_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FollowUpLedger is the follow-up surface the handler needs.
type FollowUpLedger interface {
	Record(ctx context.Context, leadID, userID uuid.UUID, statusName, comment string) (repository.FollowUp, error)
	CurrentStatus(ctx context.Context, leadID uuid.UUID) (*string, error)
	History(ctx context.Context, leadID uuid.UUID) ([]repository.FollowUp, error)
}

// LoadReader provides the counselor load snapshot.
type LoadReader interface {
	CounselorLoads(ctx context.Context) ([]assignment.CounselorLoad, error)
}

// Handler handles lead HTTP requests.
type Handler struct {
	intake     *intake.Service
	management *management.Service
	followups  FollowUpLedger
	detector   *dedupe.Detector
	loads      LoadReader
	val        *validator.Validator
}

// New creates a new leads handler.
func New(intakeSvc *intake.Service, mgmt *management.Service, followups FollowUpLedger, detector *dedupe.Detector, loads LoadReader, val *validator.Validator) *Handler {
	return &Handler{
		intake:     intakeSvc,
		management: mgmt,
		followups:  followups,
		detector:   detector,
		loads:      loads,
		val:        val,
	}
}

func (h *Handler) actingUser(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := c.Get(httpkit.ContextUserIDKey)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing user identity", nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		httpkit.Error(c, http.StatusUnauthorized, "invalid user identity", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) leadID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "no such lead", nil)
		return uuid.Nil, false
	}
	return id, true
}

// HandleCreateLead admits a lead from the manual intake form.
// POST /api/v1/leads
func (h *Handler) HandleCreateLead(c *gin.Context) {
	owner, ok := h.actingUser(c)
	if !ok {
		return
	}

	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	lead, err := h.intake.Admit(c.Request.Context(), intake.AdmitParams{
		CourseName:  req.CourseName,
		BranchName:  req.BranchName,
		StudentID:   req.StudentID,
		OwnerUserID: owner,
		ScheduledTo: req.ScheduledTo,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, transport.ToLeadResponse(lead))
}

// HandleListLeads returns lead summaries with the current-status projection.
// GET /api/v1/leads
func (h *Handler) HandleListLeads(c *gin.Context) {
	summaries, err := h.management.ListSummaries(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.LeadSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, transport.ToLeadSummaryResponse(s))
	}
	httpkit.OK(c, out)
}

// HandleGetLead returns one lead's summary.
// GET /api/v1/leads/:id
func (h *Handler) HandleGetLead(c *gin.Context) {
	id, ok := h.leadID(c)
	if !ok {
		return
	}

	summary, err := h.management.GetSummary(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToLeadSummaryResponse(summary))
}

// HandleUpdateLead applies a manual lead edit, including reassignment.
// PATCH /api/v1/leads/:id
func (h *Handler) HandleUpdateLead(c *gin.Context) {
	id, ok := h.leadID(c)
	if !ok {
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	lead, err := h.management.Update(c.Request.Context(), id, repository.UpdateLeadParams{
		ScheduledTo:    req.ScheduledTo,
		CounselorID:    req.CounselorID.Value,
		CounselorIDSet: req.CounselorID.Set,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToLeadResponse(lead))
}

// HandleDuplicateCheck runs the duplicate predicate against query parameters.
// GET /api/v1/leads/duplicate
func (h *Handler) HandleDuplicateCheck(c *gin.Context) {
	var query transport.DuplicateCheckQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query", nil)
		return
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	result, err := h.detector.Check(c.Request.Context(),
		query.CourseName, query.BranchName, query.StudentName, query.ContactNo)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// HandleRecordFollowUp appends a follow-up to a lead's ledger.
// POST /api/v1/leads/:id/followups
func (h *Handler) HandleRecordFollowUp(c *gin.Context) {
	id, ok := h.leadID(c)
	if !ok {
		return
	}
	user, ok := h.actingUser(c)
	if !ok {
		return
	}

	var req transport.RecordFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	entry, err := h.followups.Record(c.Request.Context(), id, user, req.Status, req.Comment)
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, transport.ToFollowUpResponse(entry))
}

// HandleFollowUpHistory returns a lead's ledger, newest first.
// GET /api/v1/leads/:id/followups
func (h *Handler) HandleFollowUpHistory(c *gin.Context) {
	id, ok := h.leadID(c)
	if !ok {
		return
	}

	entries, err := h.followups.History(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.FollowUpResponse, 0, len(entries))
	for _, f := range entries {
		out = append(out, transport.ToFollowUpResponse(f))
	}
	httpkit.OK(c, out)
}

// HandleCurrentStatus returns the current-status projection.
// GET /api/v1/leads/:id/status
func (h *Handler) HandleCurrentStatus(c *gin.Context) {
	id, ok := h.leadID(c)
	if !ok {
		return
	}

	status, err := h.followups.CurrentStatus(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.CurrentStatusResponse{LeadID: id, Status: status})
}

// HandleCounselorLoads lists every counselor with their current lead count,
// least loaded first.
// GET /api/v1/counselors/loads
func (h *Handler) HandleCounselorLoads(c *gin.Context) {
	loads, err := h.loads.CounselorLoads(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.CounselorLoadResponse, 0, len(loads))
	for _, l := range loads {
		out = append(out, transport.CounselorLoadResponse{CounselorID: l.CounselorID, Load: l.Load})
	}
	httpkit.OK(c, out)
}
