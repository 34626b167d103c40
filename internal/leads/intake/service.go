// Package intake implements the lead admission pipeline: reference
// resolution, counselor selection, lead persistence, and seeding of the
// initial follow-up.
package intake

import (
	"context"
	"errors"
	"time"

	dirrepo "edulead_backend/internal/directory/repository"
	"edulead_backend/internal/events"
	"edulead_backend/internal/leads/repository"
	"edulead_backend/platform/apperr"
	"edulead_backend/platform/clock"
	"edulead_backend/platform/logger"

	"github.com/google/uuid"
)

// SourceManual is the source recorded for form-entered leads.
const SourceManual = "manual"

// DirectoryReader resolves intake references by natural key.
type DirectoryReader interface {
	GetCourseByName(ctx context.Context, name string) (dirrepo.Course, error)
	GetBranchByName(ctx context.Context, name string) (dirrepo.Branch, error)
	GetSourceByName(ctx context.Context, name string) (dirrepo.Source, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// LeadStore persists the admitted lead and answers the duplicate check
// guarding admission.
type LeadStore interface {
	Create(ctx context.Context, params repository.CreateLeadParams) (repository.Lead, error)
	ExistsByTriple(ctx context.Context, courseID, branchID, studentID uuid.UUID) (bool, error)
}

// CounselorSelector picks the least-loaded counselor, ok=false when none exists.
type CounselorSelector interface {
	Select(ctx context.Context) (uuid.UUID, bool, error)
}

// FollowUpSeeder appends the initial "New" follow-up for a freshly created lead.
type FollowUpSeeder interface {
	Seed(ctx context.Context, leadID, userID uuid.UUID, comment string) error
}

// AdmitParams are the inputs to one admission.
type AdmitParams struct {
	CourseName  string
	BranchName  string
	StudentID   uuid.UUID
	OwnerUserID uuid.UUID
	ScheduledTo *time.Time
	// Source names the intake channel; empty means manual entry.
	Source string
	// Channel is the human-readable channel name for the seeded comment.
	Channel string
}

// Service is the lead intake pipeline.
type Service struct {
	directory DirectoryReader
	leads     LeadStore
	selector  CounselorSelector
	seeder    FollowUpSeeder
	bus       events.Bus
	clk       clock.Clock
	log       *logger.Logger
}

// New creates the intake service.
func New(directory DirectoryReader, leads LeadStore, selector CounselorSelector, seeder FollowUpSeeder, bus events.Bus, clk clock.Clock, log *logger.Logger) *Service {
	return &Service{
		directory: directory,
		leads:     leads,
		selector:  selector,
		seeder:    seeder,
		bus:       bus,
		clk:       clk,
		log:       log,
	}
}

// Admit runs the full admission pipeline. A lead whose (course, branch,
// student) triple already exists is rejected as a conflict before anything
// is written. A missing counselor is not fatal:
// the lead is created unassigned and picked up later by the sweep. The
// initial follow-up is seeded best-effort; its failure never rolls back the
// created lead.
func (s *Service) Admit(ctx context.Context, params AdmitParams) (repository.Lead, error) {
	course, err := s.directory.GetCourseByName(ctx, params.CourseName)
	if errors.Is(err, dirrepo.ErrNotFound) {
		return repository.Lead{}, apperr.ReferenceNotFound("course not found: " + params.CourseName)
	}
	if err != nil {
		return repository.Lead{}, apperr.PersistenceFailure("failed to resolve course", err)
	}

	branch, err := s.directory.GetBranchByName(ctx, params.BranchName)
	if errors.Is(err, dirrepo.ErrNotFound) {
		return repository.Lead{}, apperr.ReferenceNotFound("branch not found: " + params.BranchName)
	}
	if err != nil {
		return repository.Lead{}, apperr.PersistenceFailure("failed to resolve branch", err)
	}

	if params.StudentID == uuid.Nil {
		return repository.Lead{}, apperr.InvalidReference("no such student")
	}
	if params.OwnerUserID == uuid.Nil {
		return repository.Lead{}, apperr.InvalidReference("no such user")
	}
	ownerExists, err := s.directory.UserExists(ctx, params.OwnerUserID)
	if err != nil {
		return repository.Lead{}, apperr.PersistenceFailure("failed to resolve user", err)
	}
	if !ownerExists {
		return repository.Lead{}, apperr.ReferenceNotFound("user not found")
	}

	duplicate, err := s.leads.ExistsByTriple(ctx, course.ID, branch.ID, params.StudentID)
	if err != nil {
		return repository.Lead{}, apperr.PersistenceFailure("failed to check for duplicate lead", err)
	}
	if duplicate {
		return repository.Lead{}, apperr.Conflict("lead already exists for this student, course and branch")
	}

	sourceName := params.Source
	if sourceName == "" {
		sourceName = SourceManual
	}
	source, err := s.directory.GetSourceByName(ctx, sourceName)
	if errors.Is(err, dirrepo.ErrNotFound) {
		return repository.Lead{}, apperr.ReferenceNotFound("source not found: " + sourceName)
	}
	if err != nil {
		return repository.Lead{}, apperr.PersistenceFailure("failed to resolve source", err)
	}

	var counselorID *uuid.UUID
	selected, ok, err := s.selector.Select(ctx)
	if err != nil {
		return repository.Lead{}, apperr.PersistenceFailure("failed to select counselor", err)
	}
	if ok {
		counselorID = &selected
	} else {
		s.log.Info("no counselor available, lead will be created unassigned")
	}

	now := s.clk.Now()
	lead, err := s.leads.Create(ctx, repository.CreateLeadParams{
		CreatedAt:   now,
		ScheduledAt: now,
		ScheduledTo: params.ScheduledTo,
		CourseID:    course.ID,
		BranchID:    branch.ID,
		StudentID:   params.StudentID,
		OwnerUserID: params.OwnerUserID,
		CounselorID: counselorID,
		SourceID:    source.ID,
	})
	if err != nil {
		return repository.Lead{}, apperr.PersistenceFailure("failed to create lead", err)
	}

	channel := params.Channel
	if channel == "" {
		channel = sourceName
	}
	if err := s.seeder.Seed(ctx, lead.ID, params.OwnerUserID, "Newly added from "+channel); err != nil {
		s.log.Error("failed to seed initial follow-up", "leadId", lead.ID, "error", err)
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		StudentID: lead.StudentID,
		CourseID:  lead.CourseID,
		BranchID:  lead.BranchID,
		Source:    sourceName,
	})
	if counselorID != nil {
		s.bus.Publish(ctx, events.LeadAssigned{
			BaseEvent:   events.NewBaseEvent(),
			LeadID:      lead.ID,
			CounselorID: *counselorID,
			AssignedBy:  "intake",
		})
	}

	return lead, nil
}
