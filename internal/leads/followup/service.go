// Package followup implements the append-only follow-up ledger and the
// derived current-status projection.
package followup

import (
	"context"
	"errors"

	dirrepo "edulead_backend/internal/directory/repository"
	"edulead_backend/internal/events"
	"edulead_backend/internal/leads/repository"
	"edulead_backend/platform/apperr"
	"edulead_backend/platform/clock"

	"github.com/google/uuid"
)

// StatusNew is the seeded status for freshly admitted leads.
const StatusNew = "New"

// Ledger is the data access interface needed by the follow-up service.
type Ledger interface {
	LeadExists(ctx context.Context, id uuid.UUID) (bool, error)
	AppendFollowUp(ctx context.Context, params repository.AppendFollowUpParams) (repository.FollowUp, error)
	HistoryByLead(ctx context.Context, leadID uuid.UUID) ([]repository.FollowUp, error)
	LatestByLead(ctx context.Context, leadID uuid.UUID) (*repository.FollowUp, error)
}

// StatusResolver resolves a status by name.
type StatusResolver interface {
	GetStatusByName(ctx context.Context, name string) (dirrepo.Status, error)
}

// Service exposes the follow-up ledger operations.
type Service struct {
	ledger   Ledger
	statuses StatusResolver
	bus      events.Bus
	clk      clock.Clock
}

// New creates the follow-up service.
func New(ledger Ledger, statuses StatusResolver, bus events.Bus, clk clock.Clock) *Service {
	return &Service{ledger: ledger, statuses: statuses, bus: bus, clk: clk}
}

// Record appends a follow-up event. Statuses are a flat enumeration: any
// status may follow any other, so no transition check happens here.
func (s *Service) Record(ctx context.Context, leadID, userID uuid.UUID, statusName, comment string) (repository.FollowUp, error) {
	exists, err := s.ledger.LeadExists(ctx, leadID)
	if err != nil {
		return repository.FollowUp{}, apperr.PersistenceFailure("failed to resolve lead", err)
	}
	if !exists {
		return repository.FollowUp{}, apperr.ReferenceNotFound("no such lead")
	}

	status, err := s.statuses.GetStatusByName(ctx, statusName)
	if errors.Is(err, dirrepo.ErrNotFound) {
		return repository.FollowUp{}, apperr.ReferenceNotFound("status not found: " + statusName)
	}
	if err != nil {
		return repository.FollowUp{}, apperr.PersistenceFailure("failed to resolve status", err)
	}

	entry, err := s.ledger.AppendFollowUp(ctx, repository.AppendFollowUpParams{
		LeadID:    leadID,
		UserID:    userID,
		StatusID:  status.ID,
		Comment:   comment,
		CreatedAt: s.clk.Now(),
	})
	if err != nil {
		return repository.FollowUp{}, apperr.PersistenceFailure("failed to append follow-up", err)
	}

	s.bus.Publish(ctx, events.FollowUpRecorded{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     leadID,
		FollowUpID: entry.ID,
		StatusName: status.Name,
	})

	return entry, nil
}

// Seed appends the initial "New" follow-up for a freshly admitted lead.
// Satisfies the intake pipeline's FollowUpSeeder.
func (s *Service) Seed(ctx context.Context, leadID, userID uuid.UUID, comment string) error {
	_, err := s.Record(ctx, leadID, userID, StatusNew, comment)
	return err
}

// CurrentStatus computes the current-status projection: the status of the
// maximum-timestamp entry. A lead with no history has no determined status,
// reported as (nil, nil) rather than an error. The projection is recomputed
// on every call.
func (s *Service) CurrentStatus(ctx context.Context, leadID uuid.UUID) (*string, error) {
	latest, err := s.ledger.LatestByLead(ctx, leadID)
	if err != nil {
		return nil, apperr.PersistenceFailure("failed to load latest follow-up", err)
	}
	if latest == nil {
		return nil, nil
	}
	return &latest.StatusName, nil
}

// History returns a lead's full ledger, newest first.
func (s *Service) History(ctx context.Context, leadID uuid.UUID) ([]repository.FollowUp, error) {
	entries, err := s.ledger.HistoryByLead(ctx, leadID)
	if err != nil {
		return nil, apperr.PersistenceFailure("failed to load follow-up history", err)
	}
	return entries, nil
}
