// Package assignment implements counselor selection: the least-loaded
// counselor wins, with ties broken deterministically by counselor id.
package assignment

import (
	"bytes"
	"context"

	"github.com/google/uuid"
)

// CounselorLoad is one counselor's current assigned-lead count.
type CounselorLoad struct {
	CounselorID uuid.UUID
	Load        int
}

// LoadIndex abstracts the load counts the balancer reads. It decouples the
// selection algorithm from any particular storage query shape: intake builds
// a fresh index per call, the sweeper keeps one running tally for a whole pass.
type LoadIndex interface {
	// Counselors returns every candidate counselor, including those with
	// zero assigned leads.
	Counselors() []uuid.UUID
	// LoadOf returns the current assigned-lead count for a counselor.
	LoadOf(counselorID uuid.UUID) int
	// Increment records a local assignment so subsequent selections see it.
	Increment(counselorID uuid.UUID)
}

// SelectLeastLoaded returns the counselor with the minimum load count.
// Ties break on ascending counselor id so results are reproducible.
// ok is false only when the index holds no counselors at all.
func SelectLeastLoaded(index LoadIndex) (uuid.UUID, bool) {
	var (
		best     uuid.UUID
		bestLoad int
		found    bool
	)

	for _, id := range index.Counselors() {
		load := index.LoadOf(id)
		if !found || load < bestLoad || (load == bestLoad && bytes.Compare(id[:], best[:]) < 0) {
			best = id
			bestLoad = load
			found = true
		}
	}

	return best, found
}

// SnapshotSource supplies a point-in-time load snapshot, typically one
// aggregate query against the lead store.
type SnapshotSource interface {
	CounselorLoads(ctx context.Context) ([]CounselorLoad, error)
}

// Balancer selects the least-loaded counselor from a fresh snapshot per call.
// It is read-only: callers persist the assignment themselves.
type Balancer struct {
	source SnapshotSource
}

// NewBalancer creates a balancer over the given snapshot source.
func NewBalancer(source SnapshotSource) *Balancer {
	return &Balancer{source: source}
}

// Select returns the least-loaded counselor, or ok=false when no counselor
// exists. Snapshot read failures are returned to the caller.
func (b *Balancer) Select(ctx context.Context) (uuid.UUID, bool, error) {
	snapshot, err := b.source.CounselorLoads(ctx)
	if err != nil {
		return uuid.Nil, false, err
	}

	id, ok := SelectLeastLoaded(NewTally(snapshot))
	return id, ok, nil
}
