// Package service contains the directory module's business logic: student
// registration and partial updates, plus counselor listing.
package service

import (
	"context"
	"errors"
	"time"

	"edulead_backend/internal/directory/repository"
	"edulead_backend/internal/directory/transport"
	"edulead_backend/platform/apperr"
	"edulead_backend/platform/phone"

	"github.com/google/uuid"
)

// Repository is the data access interface needed by the directory service.
type Repository interface {
	CreateStudent(ctx context.Context, params repository.CreateStudentParams) (repository.Student, error)
	GetStudent(ctx context.Context, id uuid.UUID) (repository.Student, error)
	UpdateStudent(ctx context.Context, id uuid.UUID, params repository.UpdateStudentParams) (repository.Student, error)
	ListCounselors(ctx context.Context) ([]repository.Counselor, error)
}

// Service handles directory operations.
type Service struct {
	repo Repository
}

// New creates a new directory service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateStudent registers a student on first contact.
func (s *Service) CreateStudent(ctx context.Context, req transport.CreateStudentRequest) (transport.StudentResponse, error) {
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return transport.StudentResponse{}, apperr.InvalidReference("invalid date of birth")
	}

	student, err := s.repo.CreateStudent(ctx, repository.CreateStudentParams{
		Name:        req.Name,
		DateOfBirth: dob,
		ContactNo:   phone.NormalizeE164(req.ContactNo),
		Email:       req.Email,
		Address:     req.Address,
	})
	if err != nil {
		return transport.StudentResponse{}, apperr.PersistenceFailure("failed to create student", err)
	}

	return toStudentResponse(student), nil
}

// UpdateStudent applies a partial update from the intake form.
func (s *Service) UpdateStudent(ctx context.Context, id uuid.UUID, req transport.UpdateStudentRequest) (transport.StudentResponse, error) {
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return transport.StudentResponse{}, apperr.InvalidReference("invalid date of birth")
	}

	params := repository.UpdateStudentParams{
		Name:        req.Name,
		DateOfBirth: dob,
		Email:       req.Email,
		Address:     req.Address,
	}
	if req.ContactNo != nil {
		normalized := phone.NormalizeE164(*req.ContactNo)
		params.ContactNo = &normalized
	}

	student, err := s.repo.UpdateStudent(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.StudentResponse{}, apperr.ReferenceNotFound("student not found")
		}
		return transport.StudentResponse{}, apperr.PersistenceFailure("failed to update student", err)
	}

	return toStudentResponse(student), nil
}

// GetStudent retrieves a student by id.
func (s *Service) GetStudent(ctx context.Context, id uuid.UUID) (transport.StudentResponse, error) {
	student, err := s.repo.GetStudent(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.StudentResponse{}, apperr.ReferenceNotFound("student not found")
		}
		return transport.StudentResponse{}, apperr.PersistenceFailure("failed to load student", err)
	}
	return toStudentResponse(student), nil
}

// ListCounselors returns all lead-handling users.
func (s *Service) ListCounselors(ctx context.Context) ([]transport.CounselorResponse, error) {
	counselors, err := s.repo.ListCounselors(ctx)
	if err != nil {
		return nil, apperr.PersistenceFailure("failed to list counselors", err)
	}

	out := make([]transport.CounselorResponse, 0, len(counselors))
	for _, c := range counselors {
		out = append(out, transport.CounselorResponse{ID: c.ID, Name: c.Name, Email: c.Email})
	}
	return out, nil
}

func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toStudentResponse(s repository.Student) transport.StudentResponse {
	resp := transport.StudentResponse{
		ID:        s.ID,
		Name:      s.Name,
		ContactNo: s.ContactNo,
		Email:     s.Email,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
	}
	if s.DateOfBirth != nil {
		formatted := s.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &formatted
	}
	return resp
}
