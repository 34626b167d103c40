package assignment

import "github.com/google/uuid"

// Tally is an in-memory LoadIndex seeded from a single snapshot and updated
// locally as assignments are made. Within one sweep pass it guarantees that a
// selection made for one lead is visible to the selection for the next,
// without re-querying the store per lead.
type Tally struct {
	loads map[uuid.UUID]int
	order []uuid.UUID
}

// NewTally builds a tally from a load snapshot.
func NewTally(snapshot []CounselorLoad) *Tally {
	t := &Tally{
		loads: make(map[uuid.UUID]int, len(snapshot)),
		order: make([]uuid.UUID, 0, len(snapshot)),
	}
	for _, cl := range snapshot {
		if _, seen := t.loads[cl.CounselorID]; seen {
			continue
		}
		t.loads[cl.CounselorID] = cl.Load
		t.order = append(t.order, cl.CounselorID)
	}
	return t
}

// Counselors returns all counselors in the tally, in snapshot order.
func (t *Tally) Counselors() []uuid.UUID {
	return t.order
}

// LoadOf returns the tallied load for a counselor.
func (t *Tally) LoadOf(counselorID uuid.UUID) int {
	return t.loads[counselorID]
}

// Increment records a local assignment.
func (t *Tally) Increment(counselorID uuid.UUID) {
	if _, ok := t.loads[counselorID]; ok {
		t.loads[counselorID]++
	}
}
