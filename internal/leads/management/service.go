// Package management handles lead read and manual-edit operations: summary
// listings with the current-status projection, and manual edits including
// counselor reassignment.
package management

import (
	"context"
	"errors"

	"edulead_backend/internal/events"
	"edulead_backend/internal/leads/repository"
	"edulead_backend/platform/apperr"

	"github.com/google/uuid"
)

// Repository is the data access interface needed by the management service.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	Update(ctx context.Context, id uuid.UUID, params repository.UpdateLeadParams) (repository.Lead, error)
	ListSummaries(ctx context.Context) ([]repository.LeadSummary, error)
	GetSummary(ctx context.Context, id uuid.UUID) (repository.LeadSummary, error)
}

// Service handles lead management operations.
type Service struct {
	repo Repository
	bus  events.Bus
}

// New creates a new lead management service.
func New(repo Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// ListSummaries returns all leads joined with reference names and status.
func (s *Service) ListSummaries(ctx context.Context) ([]repository.LeadSummary, error) {
	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, apperr.PersistenceFailure("failed to list leads", err)
	}
	return summaries, nil
}

// GetSummary returns one lead's summary.
func (s *Service) GetSummary(ctx context.Context, id uuid.UUID) (repository.LeadSummary, error) {
	summary, err := s.repo.GetSummary(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.LeadSummary{}, apperr.ReferenceNotFound("no such lead")
		}
		return repository.LeadSummary{}, apperr.PersistenceFailure("failed to load lead", err)
	}
	return summary, nil
}

// Update applies a manual edit. Setting a counselor publishes LeadAssigned;
// the counselor reference itself changes in one atomic write.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params repository.UpdateLeadParams) (repository.Lead, error) {
	lead, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Lead{}, apperr.ReferenceNotFound("no such lead")
		}
		return repository.Lead{}, apperr.PersistenceFailure("failed to update lead", err)
	}

	if params.CounselorIDSet && params.CounselorID != nil {
		s.bus.Publish(ctx, events.LeadAssigned{
			BaseEvent:   events.NewBaseEvent(),
			LeadID:      lead.ID,
			CounselorID: *params.CounselorID,
			AssignedBy:  "manual",
		})
	}

	return lead, nil
}
