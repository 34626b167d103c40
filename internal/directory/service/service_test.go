package service

import (
	"context"
	"testing"

	"edulead_backend/internal/directory/repository"
	"edulead_backend/internal/directory/transport"
	"edulead_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeRepo struct {
	created []repository.CreateStudentParams
	updated []repository.UpdateStudentParams
	student repository.Student
	err     error
}

func (f *fakeRepo) CreateStudent(_ context.Context, params repository.CreateStudentParams) (repository.Student, error) {
	if f.err != nil {
		return repository.Student{}, f.err
	}
	f.created = append(f.created, params)
	return repository.Student{
		ID:          uuid.New(),
		Name:        params.Name,
		DateOfBirth: params.DateOfBirth,
		ContactNo:   params.ContactNo,
		Email:       params.Email,
		Address:     params.Address,
	}, nil
}

func (f *fakeRepo) GetStudent(context.Context, uuid.UUID) (repository.Student, error) {
	return f.student, f.err
}

func (f *fakeRepo) UpdateStudent(_ context.Context, _ uuid.UUID, params repository.UpdateStudentParams) (repository.Student, error) {
	if f.err != nil {
		return repository.Student{}, f.err
	}
	f.updated = append(f.updated, params)
	return f.student, nil
}

func (f *fakeRepo) ListCounselors(context.Context) ([]repository.Counselor, error) {
	return nil, f.err
}

func TestCreateStudentNormalizesContact(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)
	dob := "2001-05-20"

	resp, err := svc.CreateStudent(context.Background(), transport.CreateStudentRequest{
		Name:        "Nimal Perera",
		ContactNo:   "0771234567",
		DateOfBirth: &dob,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 create, got %d", len(repo.created))
	}
	if repo.created[0].ContactNo != "+94771234567" {
		t.Fatalf("expected normalized contact, got %q", repo.created[0].ContactNo)
	}
	if resp.DateOfBirth == nil || *resp.DateOfBirth != dob {
		t.Fatalf("expected dob %q, got %v", dob, resp.DateOfBirth)
	}
}

func TestCreateStudentInvalidDateOfBirth(t *testing.T) {
	svc := New(&fakeRepo{})
	bad := "20/05/2001"

	_, err := svc.CreateStudent(context.Background(), transport.CreateStudentRequest{
		Name:        "Nimal Perera",
		ContactNo:   "0771234567",
		DateOfBirth: &bad,
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStudentPartial(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)
	contact := "0712345678"

	if _, err := svc.UpdateStudent(context.Background(), uuid.New(), transport.UpdateStudentRequest{
		ContactNo: &contact,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.updated) != 1 {
		t.Fatalf("expected 1 update, got %d", len(repo.updated))
	}
	params := repo.updated[0]
	if params.Name != nil || params.Email != nil || params.Address != nil || params.DateOfBirth != nil {
		t.Fatalf("untouched fields must stay nil: %+v", params)
	}
	if params.ContactNo == nil || *params.ContactNo != "+94712345678" {
		t.Fatalf("expected normalized contact, got %v", params.ContactNo)
	}
}

func TestUpdateStudentNotFound(t *testing.T) {
	svc := New(&fakeRepo{err: repository.ErrNotFound})

	_, err := svc.UpdateStudent(context.Background(), uuid.New(), transport.UpdateStudentRequest{})
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}
