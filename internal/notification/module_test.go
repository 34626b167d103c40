package notification

import (
	"context"
	"testing"

	dirrepo "edulead_backend/internal/directory/repository"
	"edulead_backend/internal/events"
	leadrepo "edulead_backend/internal/leads/repository"
	"edulead_backend/platform/logger"

	"github.com/google/uuid"
)

type testSender struct {
	calls   int
	toEmail string
}

func (s *testSender) SendLeadAssignedEmail(_ context.Context, toEmail, _, _, _, _ string) error {
	s.calls++
	s.toEmail = toEmail
	return nil
}

type testCounselors struct {
	counselor dirrepo.Counselor
	err       error
}

func (t testCounselors) GetCounselor(context.Context, uuid.UUID) (dirrepo.Counselor, error) {
	return t.counselor, t.err
}

type testLeads struct {
	summary leadrepo.LeadSummary
}

func (t testLeads) GetSummary(context.Context, uuid.UUID) (leadrepo.LeadSummary, error) {
	return t.summary, nil
}

func TestHandleLeadAssignedSendsEmail(t *testing.T) {
	sender := &testSender{}
	counselor := dirrepo.Counselor{ID: uuid.New(), Name: "Kamala", Email: "kamala@example.com"}
	summary := leadrepo.LeadSummary{StudentName: "Nimal Perera", CourseName: "Software Engineering", BranchName: "Colombo"}
	m := New(sender, testCounselors{counselor: counselor}, testLeads{summary: summary}, logger.New("development"))

	err := m.Handle(context.Background(), events.LeadAssigned{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      uuid.New(),
		CounselorID: counselor.ID,
		AssignedBy:  "intake",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.calls != 1 || sender.toEmail != counselor.Email {
		t.Fatalf("expected email to %s, got calls=%d to=%q", counselor.Email, sender.calls, sender.toEmail)
	}
}

func TestHandleLeadAssignedSkipsCounselorWithoutEmail(t *testing.T) {
	sender := &testSender{}
	counselor := dirrepo.Counselor{ID: uuid.New(), Name: "Kamala"}
	m := New(sender, testCounselors{counselor: counselor}, testLeads{}, logger.New("development"))

	err := m.Handle(context.Background(), events.LeadAssigned{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      uuid.New(),
		CounselorID: counselor.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.calls != 0 {
		t.Fatalf("no email expected for counselor without address")
	}
}

func TestHandleIgnoresUnrelatedEvents(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testCounselors{}, testLeads{}, logger.New("development"))

	err := m.Handle(context.Background(), events.LeadCreated{BaseEvent: events.NewBaseEvent()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.calls != 0 {
		t.Fatalf("unrelated event must not send email")
	}
}
