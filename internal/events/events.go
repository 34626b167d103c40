// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"edulead_backend/platform/events"
	"edulead_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadCreated is published when a new lead is admitted into the pipeline.
type LeadCreated struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	StudentID uuid.UUID `json:"studentId"`
	CourseID  uuid.UUID `json:"courseId"`
	BranchID  uuid.UUID `json:"branchId"`
	Source    string    `json:"source"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadAssigned is published whenever a counselor reference is set on a lead,
// by intake, the rebalancing sweep, or a manual edit.
type LeadAssigned struct {
	BaseEvent
	LeadID      uuid.UUID `json:"leadId"`
	CounselorID uuid.UUID `json:"counselorId"`
	AssignedBy  string    `json:"assignedBy"` // "intake", "sweep", or "manual"
}

func (e LeadAssigned) EventName() string { return "leads.lead.assigned" }

// FollowUpRecorded is published when a follow-up event is appended to a lead's ledger.
type FollowUpRecorded struct {
	BaseEvent
	LeadID     uuid.UUID `json:"leadId"`
	FollowUpID uuid.UUID `json:"followUpId"`
	StatusName string    `json:"statusName"`
}

func (e FollowUpRecorded) EventName() string { return "leads.followup.recorded" }
