// Package webhook receives Facebook leadgen webhook events and feeds them
// into the lead intake pipeline.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	dirrepo "edulead_backend/internal/directory/repository"
	"edulead_backend/internal/leads/intake"
	"edulead_backend/internal/leads/repository"
	"edulead_backend/platform/config"
	"edulead_backend/platform/graph"
	"edulead_backend/platform/logger"
	appphone "edulead_backend/platform/phone"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SourceFacebook is the source recorded for webhook-admitted leads.
const SourceFacebook = "facebook"

// channelFacebook names the channel in the seeded follow-up comment.
const channelFacebook = "FB"

// Concurrent leadgen fetches per notification batch.
const maxConcurrentEvents = 4

// GraphClient fetches leadgen form details from the Graph API.
type GraphClient interface {
	LeadgenDetails(ctx context.Context, leadgenID string) (graph.LeadgenDetails, error)
}

// StudentDirectory looks up and registers students and resolves courses.
type StudentDirectory interface {
	FindStudentByEmail(ctx context.Context, email string) (dirrepo.Student, error)
	CreateStudent(ctx context.Context, params dirrepo.CreateStudentParams) (dirrepo.Student, error)
	GetCourseByCode(ctx context.Context, code string) (dirrepo.Course, error)
}

// Admitter runs the lead admission pipeline.
type Admitter interface {
	Admit(ctx context.Context, params intake.AdmitParams) (repository.Lead, error)
}

// Service turns leadgen events into admitted leads.
type Service struct {
	graph     GraphClient
	directory StudentDirectory
	admitter  Admitter
	branch    string
	owner     uuid.UUID
	log       *logger.Logger
}

// NewService creates the webhook service. The owner user attributed to
// webhook leads comes from configuration; an unset value leaves the service
// rejecting events until configured.
func NewService(graphClient GraphClient, directory StudentDirectory, admitter Admitter, cfg config.WebhookConfig, log *logger.Logger) *Service {
	owner, err := uuid.Parse(cfg.GetWebhookOwnerUserID())
	if err != nil {
		owner = uuid.Nil
	}
	return &Service{
		graph:     graphClient,
		directory: directory,
		admitter:  admitter,
		branch:    cfg.GetWebhookDefaultBranch(),
		owner:     owner,
		log:       log,
	}
}

// ProcessNotification walks every change in the notification and processes
// each leadgen event. Events are independent: one failure is logged and does
// not affect the others.
func (s *Service) ProcessNotification(ctx context.Context, notification Notification) {
	var group errgroup.Group
	group.SetLimit(maxConcurrentEvents)

	for _, entry := range notification.Entries {
		for _, change := range entry.Changes {
			leadgenID := change.Value.LeadgenID
			group.Go(func() error {
				if err := s.ProcessEvent(ctx, leadgenID); err != nil {
					s.log.WebhookEvent(leadgenID, false, err.Error())
					return nil
				}
				s.log.WebhookEvent(leadgenID, true, "")
				return nil
			})
		}
	}

	_ = group.Wait()
}

// ProcessEvent fetches one leadgen form, finds or registers the student, and
// admits the lead through the intake pipeline.
func (s *Service) ProcessEvent(ctx context.Context, leadgenID string) error {
	if s.owner == uuid.Nil {
		return fmt.Errorf("webhook owner user is not configured")
	}

	details, err := s.graph.LeadgenDetails(ctx, leadgenID)
	if err != nil {
		return fmt.Errorf("failed to fetch leadgen details: %w", err)
	}

	prospect := ExtractProspect(details.FieldData)
	if prospect.Email == "" || prospect.FullName == "" || prospect.CourseCode == "" {
		return fmt.Errorf("leadgen form is missing required fields")
	}

	course, err := s.directory.GetCourseByCode(ctx, prospect.CourseCode)
	if errors.Is(err, dirrepo.ErrNotFound) {
		return fmt.Errorf("no course with code %q", prospect.CourseCode)
	}
	if err != nil {
		return fmt.Errorf("failed to resolve course: %w", err)
	}

	studentID, err := s.findOrRegisterStudent(ctx, prospect)
	if err != nil {
		return err
	}

	_, err = s.admitter.Admit(ctx, intake.AdmitParams{
		CourseName:  course.Name,
		BranchName:  s.branch,
		StudentID:   studentID,
		OwnerUserID: s.owner,
		Source:      SourceFacebook,
		Channel:     channelFacebook,
	})
	if err != nil {
		return fmt.Errorf("failed to admit lead: %w", err)
	}
	return nil
}

// findOrRegisterStudent matches the prospect to an existing student by email,
// creating the student record on first contact.
func (s *Service) findOrRegisterStudent(ctx context.Context, prospect Prospect) (uuid.UUID, error) {
	student, err := s.directory.FindStudentByEmail(ctx, prospect.Email)
	if err == nil {
		return student.ID, nil
	}
	if !errors.Is(err, dirrepo.ErrNotFound) {
		return uuid.Nil, fmt.Errorf("failed to look up student: %w", err)
	}

	email := prospect.Email
	params := dirrepo.CreateStudentParams{
		Name:      prospect.FullName,
		ContactNo: appphone.NormalizeE164(prospect.PhoneNumber),
		Email:     &email,
	}
	if dob, perr := time.Parse("2006-01-02", prospect.DateOfBirth); perr == nil {
		params.DateOfBirth = &dob
	}

	student, err = s.directory.CreateStudent(ctx, params)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to register student: %w", err)
	}
	return student.ID, nil
}
