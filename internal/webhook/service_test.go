package webhook

import (
	"context"
	"errors"
	"sync"
	"testing"

	dirrepo "edulead_backend/internal/directory/repository"
	"edulead_backend/internal/leads/intake"
	"edulead_backend/internal/leads/repository"
	"edulead_backend/platform/graph"
	"edulead_backend/platform/logger"

	"github.com/google/uuid"
)

type testConfig struct {
	verifyToken string
	ownerUserID string
}

func (c testConfig) GetWebhookVerifyToken() string   { return c.verifyToken }
func (c testConfig) GetGraphAPIBaseURL() string      { return "https://graph.example.com/v18.0" }
func (c testConfig) GetPageAccessToken() string      { return "test-token" }
func (c testConfig) GetWebhookDefaultBranch() string { return "Colombo" }
func (c testConfig) GetWebhookOwnerUserID() string   { return c.ownerUserID }

type fakeGraph struct {
	details map[string]graph.LeadgenDetails
	err     error
}

func (f *fakeGraph) LeadgenDetails(_ context.Context, leadgenID string) (graph.LeadgenDetails, error) {
	if f.err != nil {
		return graph.LeadgenDetails{}, f.err
	}
	d, ok := f.details[leadgenID]
	if !ok {
		return graph.LeadgenDetails{}, errors.New("unknown leadgen")
	}
	return d, nil
}

type fakeStudentDirectory struct {
	mu       sync.Mutex
	students map[string]dirrepo.Student
	courses  map[string]dirrepo.Course
	created  []dirrepo.CreateStudentParams
}

func (f *fakeStudentDirectory) FindStudentByEmail(_ context.Context, email string) (dirrepo.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[email]
	if !ok {
		return dirrepo.Student{}, dirrepo.ErrNotFound
	}
	return s, nil
}

func (f *fakeStudentDirectory) CreateStudent(_ context.Context, params dirrepo.CreateStudentParams) (dirrepo.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, params)
	s := dirrepo.Student{ID: uuid.New(), Name: params.Name, ContactNo: params.ContactNo, Email: params.Email}
	if params.Email != nil {
		f.students[*params.Email] = s
	}
	return s, nil
}

func (f *fakeStudentDirectory) GetCourseByCode(_ context.Context, code string) (dirrepo.Course, error) {
	c, ok := f.courses[code]
	if !ok {
		return dirrepo.Course{}, dirrepo.ErrNotFound
	}
	return c, nil
}

type fakeAdmitter struct {
	mu       sync.Mutex
	admitted []intake.AdmitParams
	err      error
}

func (f *fakeAdmitter) Admit(_ context.Context, params intake.AdmitParams) (repository.Lead, error) {
	if f.err != nil {
		return repository.Lead{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.admitted = append(f.admitted, params)
	return repository.Lead{ID: uuid.New(), StudentID: params.StudentID}, nil
}

func leadgenForm(leadgenID string) map[string]graph.LeadgenDetails {
	return map[string]graph.LeadgenDetails{
		leadgenID: {
			ID: leadgenID,
			FieldData: []graph.Field{
				{Name: "full_name", Values: []string{"Nimal Perera"}},
				{Name: "email", Values: []string{"nimal@example.com"}},
				{Name: "phone_number", Values: []string{"0771234567"}},
				{Name: "date_of_birth", Values: []string{"2001-05-20"}},
				{Name: "course_you_are_looking_for", Values: []string{"SE101"}},
			},
		},
	}
}

func newTestWebhookService(owner uuid.UUID) (*Service, *fakeGraph, *fakeStudentDirectory, *fakeAdmitter) {
	graphClient := &fakeGraph{details: leadgenForm("lg-1")}
	dir := &fakeStudentDirectory{
		students: make(map[string]dirrepo.Student),
		courses: map[string]dirrepo.Course{
			"SE101": {ID: uuid.New(), Name: "Software Engineering", Code: "SE101"},
		},
	}
	admitter := &fakeAdmitter{}
	cfg := testConfig{ownerUserID: owner.String()}
	svc := NewService(graphClient, dir, admitter, cfg, logger.New("development"))
	return svc, graphClient, dir, admitter
}

func TestProcessEventRegistersNewStudent(t *testing.T) {
	owner := uuid.New()
	svc, _, dir, admitter := newTestWebhookService(owner)

	if err := svc.ProcessEvent(context.Background(), "lg-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dir.created) != 1 {
		t.Fatalf("expected 1 student created, got %d", len(dir.created))
	}
	created := dir.created[0]
	if created.Name != "Nimal Perera" {
		t.Fatalf("unexpected student name %q", created.Name)
	}
	if created.ContactNo != "+94771234567" {
		t.Fatalf("expected normalized contact, got %q", created.ContactNo)
	}
	if created.DateOfBirth == nil {
		t.Fatalf("expected parsed date of birth")
	}

	if len(admitter.admitted) != 1 {
		t.Fatalf("expected 1 admission, got %d", len(admitter.admitted))
	}
	params := admitter.admitted[0]
	if params.CourseName != "Software Engineering" || params.BranchName != "Colombo" {
		t.Fatalf("unexpected admit params: %+v", params)
	}
	if params.Source != SourceFacebook || params.Channel != channelFacebook {
		t.Fatalf("unexpected source/channel: %+v", params)
	}
	if params.OwnerUserID != owner {
		t.Fatalf("expected owner %s, got %s", owner, params.OwnerUserID)
	}
}

func TestProcessEventMatchesExistingStudent(t *testing.T) {
	svc, _, dir, admitter := newTestWebhookService(uuid.New())
	existing := dirrepo.Student{ID: uuid.New(), Name: "Nimal Perera"}
	dir.students["nimal@example.com"] = existing

	if err := svc.ProcessEvent(context.Background(), "lg-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dir.created) != 0 {
		t.Fatalf("existing student must not be recreated")
	}
	if admitter.admitted[0].StudentID != existing.ID {
		t.Fatalf("expected existing student %s, got %s", existing.ID, admitter.admitted[0].StudentID)
	}
}

func TestProcessEventUnknownCourseCode(t *testing.T) {
	svc, graphClient, _, admitter := newTestWebhookService(uuid.New())
	details := graphClient.details["lg-1"]
	details.FieldData[4].Values[0] = "XX999"
	graphClient.details["lg-1"] = details

	if err := svc.ProcessEvent(context.Background(), "lg-1"); err == nil {
		t.Fatalf("expected error for unknown course code")
	}
	if len(admitter.admitted) != 0 {
		t.Fatalf("no admission expected")
	}
}

func TestProcessEventMissingRequiredFields(t *testing.T) {
	svc, graphClient, _, _ := newTestWebhookService(uuid.New())
	graphClient.details["lg-1"] = graph.LeadgenDetails{
		ID:        "lg-1",
		FieldData: []graph.Field{{Name: "full_name", Values: []string{"Nimal Perera"}}},
	}

	if err := svc.ProcessEvent(context.Background(), "lg-1"); err == nil {
		t.Fatalf("expected error for incomplete form")
	}
}

func TestProcessEventUnconfiguredOwner(t *testing.T) {
	svc, _, _, _ := newTestWebhookService(uuid.Nil)

	if err := svc.ProcessEvent(context.Background(), "lg-1"); err == nil {
		t.Fatalf("expected error when owner user is unset")
	}
}

func TestProcessNotificationIsolatesFailures(t *testing.T) {
	svc, _, _, admitter := newTestWebhookService(uuid.New())
	// lg-2 has no Graph API record; lg-1 must still be admitted.
	notification := Notification{
		Entries: []Entry{{
			Changes: []Change{
				{Value: ChangeValue{LeadgenID: "lg-2"}},
				{Value: ChangeValue{LeadgenID: "lg-1"}},
			},
		}},
	}

	svc.ProcessNotification(context.Background(), notification)

	admitter.mu.Lock()
	defer admitter.mu.Unlock()
	if len(admitter.admitted) != 1 {
		t.Fatalf("expected 1 admission despite sibling failure, got %d", len(admitter.admitted))
	}
}
