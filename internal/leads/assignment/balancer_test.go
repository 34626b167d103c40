package assignment

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func counselorIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	// Sort by byte order so tests can reason about tie-breaks.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && bytes.Compare(ids[j][:], ids[j-1][:]) < 0; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}

func TestSelectLeastLoadedPicksMinimum(t *testing.T) {
	ids := counselorIDs(3)
	tally := NewTally([]CounselorLoad{
		{CounselorID: ids[0], Load: 5},
		{CounselorID: ids[1], Load: 2},
		{CounselorID: ids[2], Load: 7},
	})

	got, ok := SelectLeastLoaded(tally)
	if !ok {
		t.Fatalf("expected a counselor, got none")
	}
	if got != ids[1] {
		t.Fatalf("expected counselor %s, got %s", ids[1], got)
	}
}

func TestSelectLeastLoadedTieBreaksOnID(t *testing.T) {
	ids := counselorIDs(3)
	// Snapshot order deliberately reversed; the tie-break must not depend on it.
	tally := NewTally([]CounselorLoad{
		{CounselorID: ids[2], Load: 3},
		{CounselorID: ids[1], Load: 3},
		{CounselorID: ids[0], Load: 3},
	})

	got, ok := SelectLeastLoaded(tally)
	if !ok {
		t.Fatalf("expected a counselor, got none")
	}
	if got != ids[0] {
		t.Fatalf("expected lowest-id counselor %s, got %s", ids[0], got)
	}
}

func TestSelectLeastLoadedIncludesZeroLoadCounselors(t *testing.T) {
	ids := counselorIDs(2)
	tally := NewTally([]CounselorLoad{
		{CounselorID: ids[0], Load: 4},
		{CounselorID: ids[1], Load: 0},
	})

	got, ok := SelectLeastLoaded(tally)
	if !ok {
		t.Fatalf("expected a counselor, got none")
	}
	if got != ids[1] {
		t.Fatalf("expected idle counselor %s, got %s", ids[1], got)
	}
}

func TestSelectLeastLoadedEmptyIndex(t *testing.T) {
	if _, ok := SelectLeastLoaded(NewTally(nil)); ok {
		t.Fatalf("expected ok=false for empty index")
	}
}

func TestTallyIncrementShiftsSelection(t *testing.T) {
	ids := counselorIDs(2)
	tally := NewTally([]CounselorLoad{
		{CounselorID: ids[0], Load: 1},
		{CounselorID: ids[1], Load: 2},
	})

	first, _ := SelectLeastLoaded(tally)
	if first != ids[0] {
		t.Fatalf("expected %s first, got %s", ids[0], first)
	}
	tally.Increment(first)
	tally.Increment(first)

	second, _ := SelectLeastLoaded(tally)
	if second != ids[1] {
		t.Fatalf("expected %s after increments, got %s", ids[1], second)
	}
}

func TestTallyDeduplicatesSnapshot(t *testing.T) {
	id := uuid.New()
	tally := NewTally([]CounselorLoad{
		{CounselorID: id, Load: 1},
		{CounselorID: id, Load: 9},
	})

	if len(tally.Counselors()) != 1 {
		t.Fatalf("expected 1 counselor, got %d", len(tally.Counselors()))
	}
	if tally.LoadOf(id) != 1 {
		t.Fatalf("expected first-seen load 1, got %d", tally.LoadOf(id))
	}
}

type stubSnapshotSource struct {
	snapshot []CounselorLoad
	err      error
}

func (s stubSnapshotSource) CounselorLoads(_ context.Context) ([]CounselorLoad, error) {
	return s.snapshot, s.err
}

func TestBalancerSelect(t *testing.T) {
	ids := counselorIDs(2)
	b := NewBalancer(stubSnapshotSource{snapshot: []CounselorLoad{
		{CounselorID: ids[0], Load: 3},
		{CounselorID: ids[1], Load: 1},
	}})

	got, ok, err := b.Select(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || got != ids[1] {
		t.Fatalf("expected %s, got %s (ok=%v)", ids[1], got, ok)
	}
}

func TestBalancerSelectNoCounselors(t *testing.T) {
	b := NewBalancer(stubSnapshotSource{})

	_, ok, err := b.Select(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false with no counselors")
	}
}

func TestBalancerSelectPropagatesError(t *testing.T) {
	wantErr := errors.New("snapshot failed")
	b := NewBalancer(stubSnapshotSource{err: wantErr})

	_, _, err := b.Select(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected snapshot error, got %v", err)
	}
}
