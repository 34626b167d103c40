package followup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	dirrepo "edulead_backend/internal/directory/repository"
	"edulead_backend/internal/events"
	"edulead_backend/internal/leads/repository"
	"edulead_backend/platform/apperr"
	"edulead_backend/platform/clock"

	"github.com/google/uuid"
)

type recordingBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) events() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.Event(nil), b.published...)
}

type fakeLedger struct {
	leadExists bool
	appended   []repository.AppendFollowUpParams
	appendErr  error
	history    []repository.FollowUp
	latest     *repository.FollowUp
	latestErr  error
}

func (f *fakeLedger) LeadExists(context.Context, uuid.UUID) (bool, error) {
	return f.leadExists, nil
}

func (f *fakeLedger) AppendFollowUp(_ context.Context, params repository.AppendFollowUpParams) (repository.FollowUp, error) {
	if f.appendErr != nil {
		return repository.FollowUp{}, f.appendErr
	}
	f.appended = append(f.appended, params)
	return repository.FollowUp{
		ID:        uuid.New(),
		LeadID:    params.LeadID,
		UserID:    params.UserID,
		StatusID:  params.StatusID,
		Comment:   params.Comment,
		CreatedAt: params.CreatedAt,
	}, nil
}

func (f *fakeLedger) HistoryByLead(context.Context, uuid.UUID) ([]repository.FollowUp, error) {
	return f.history, nil
}

func (f *fakeLedger) LatestByLead(context.Context, uuid.UUID) (*repository.FollowUp, error) {
	return f.latest, f.latestErr
}

type fakeStatuses struct {
	statuses map[string]dirrepo.Status
}

func (f *fakeStatuses) GetStatusByName(_ context.Context, name string) (dirrepo.Status, error) {
	s, ok := f.statuses[name]
	if !ok {
		return dirrepo.Status{}, dirrepo.ErrNotFound
	}
	return s, nil
}

func newTestService(ledger *fakeLedger, bus *recordingBus, instant time.Time) (*Service, dirrepo.Status) {
	status := dirrepo.Status{ID: uuid.New(), Name: "Contacted"}
	newStatus := dirrepo.Status{ID: uuid.New(), Name: StatusNew}
	statuses := &fakeStatuses{statuses: map[string]dirrepo.Status{
		status.Name:    status,
		newStatus.Name: newStatus,
	}}
	return New(ledger, statuses, bus, &clock.Fixed{Instant: instant}), status
}

func TestRecordAppendsEntry(t *testing.T) {
	instant := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	ledger := &fakeLedger{leadExists: true}
	bus := &recordingBus{}
	svc, status := newTestService(ledger, bus, instant)
	leadID, userID := uuid.New(), uuid.New()

	entry, err := svc.Record(context.Background(), leadID, userID, status.Name, "called, interested")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.LeadID != leadID || entry.UserID != userID {
		t.Fatalf("entry attribution mismatch: %+v", entry)
	}
	if len(ledger.appended) != 1 {
		t.Fatalf("expected 1 append, got %d", len(ledger.appended))
	}
	if got := ledger.appended[0]; got.StatusID != status.ID || !got.CreatedAt.Equal(instant) {
		t.Fatalf("append params mismatch: %+v", got)
	}

	published := bus.events()
	if len(published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(published))
	}
	recorded, ok := published[0].(events.FollowUpRecorded)
	if !ok {
		t.Fatalf("expected FollowUpRecorded, got %T", published[0])
	}
	if recorded.LeadID != leadID || recorded.StatusName != status.Name {
		t.Fatalf("event mismatch: %+v", recorded)
	}
}

func TestRecordUnknownLead(t *testing.T) {
	svc, status := newTestService(&fakeLedger{leadExists: false}, &recordingBus{}, time.Now())

	_, err := svc.Record(context.Background(), uuid.New(), uuid.New(), status.Name, "note")
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestRecordUnknownStatus(t *testing.T) {
	svc, _ := newTestService(&fakeLedger{leadExists: true}, &recordingBus{}, time.Now())

	_, err := svc.Record(context.Background(), uuid.New(), uuid.New(), "Imaginary", "note")
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestRecordAppendFailure(t *testing.T) {
	ledger := &fakeLedger{leadExists: true, appendErr: errors.New("insert failed")}
	bus := &recordingBus{}
	svc, status := newTestService(ledger, bus, time.Now())

	_, err := svc.Record(context.Background(), uuid.New(), uuid.New(), status.Name, "note")
	if apperr.GetKind(err) != apperr.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if len(bus.events()) != 0 {
		t.Fatalf("no event should be published on failure")
	}
}

func TestSeedUsesNewStatus(t *testing.T) {
	ledger := &fakeLedger{leadExists: true}
	svc, _ := newTestService(ledger, &recordingBus{}, time.Now())

	if err := svc.Seed(context.Background(), uuid.New(), uuid.New(), "Newly added from FB"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ledger.appended) != 1 {
		t.Fatalf("expected 1 append, got %d", len(ledger.appended))
	}
	if ledger.appended[0].Comment != "Newly added from FB" {
		t.Fatalf("unexpected comment %q", ledger.appended[0].Comment)
	}
}

func TestCurrentStatusNoHistory(t *testing.T) {
	svc, _ := newTestService(&fakeLedger{leadExists: true}, &recordingBus{}, time.Now())

	status, err := svc.CurrentStatus(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != nil {
		t.Fatalf("expected nil status for empty ledger, got %q", *status)
	}
}

func TestCurrentStatusLatestWins(t *testing.T) {
	latest := &repository.FollowUp{StatusName: "Registered"}
	svc, _ := newTestService(&fakeLedger{leadExists: true, latest: latest}, &recordingBus{}, time.Now())

	status, err := svc.CurrentStatus(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status == nil || *status != "Registered" {
		t.Fatalf("expected Registered, got %v", status)
	}
}
