// Package notification provides event handlers for sending notifications in
// response to domain events. Domain modules publish events and stay unaware
// of email providers or templates.
package notification

import (
	"context"
	"fmt"

	dirrepo "edulead_backend/internal/directory/repository"
	"edulead_backend/internal/email"
	"edulead_backend/internal/events"
	leadrepo "edulead_backend/internal/leads/repository"
	"edulead_backend/platform/logger"

	"github.com/google/uuid"
)

// CounselorReader resolves the counselor receiving the notification.
type CounselorReader interface {
	GetCounselor(ctx context.Context, id uuid.UUID) (dirrepo.Counselor, error)
}

// LeadSummaryReader loads the lead context included in the notification.
type LeadSummaryReader interface {
	GetSummary(ctx context.Context, id uuid.UUID) (leadrepo.LeadSummary, error)
}

// Module subscribes to domain events and sends counselor email.
type Module struct {
	sender     email.Sender
	counselors CounselorReader
	leads      LeadSummaryReader
	log        *logger.Logger
}

// New creates the notification module.
func New(sender email.Sender, counselors CounselorReader, leads LeadSummaryReader, log *logger.Logger) *Module {
	return &Module{
		sender:     sender,
		counselors: counselors,
		leads:      leads,
		log:        log,
	}
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.LeadAssigned{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadAssigned:
		return m.handleLeadAssigned(ctx, e)
	}
	return nil
}

func (m *Module) handleLeadAssigned(ctx context.Context, e events.LeadAssigned) error {
	counselor, err := m.counselors.GetCounselor(ctx, e.CounselorID)
	if err != nil {
		return fmt.Errorf("failed to load counselor %s: %w", e.CounselorID, err)
	}
	if counselor.Email == "" {
		return nil
	}

	summary, err := m.leads.GetSummary(ctx, e.LeadID)
	if err != nil {
		return fmt.Errorf("failed to load lead %s: %w", e.LeadID, err)
	}

	return m.sender.SendLeadAssignedEmail(ctx, counselor.Email, counselor.Name, summary.StudentName, summary.CourseName, summary.BranchName)
}
