// Package repository provides data access for leads and their follow-up
// ledger. All counselor assignment mutations are single atomic writes.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	ScheduledAt time.Time
	ScheduledTo *time.Time
	CourseID    uuid.UUID
	BranchID    uuid.UUID
	StudentID   uuid.UUID
	OwnerUserID uuid.UUID
	CounselorID *uuid.UUID
	SourceID    uuid.UUID
}

type CreateLeadParams struct {
	CreatedAt   time.Time
	ScheduledAt time.Time
	ScheduledTo *time.Time
	CourseID    uuid.UUID
	BranchID    uuid.UUID
	StudentID   uuid.UUID
	OwnerUserID uuid.UUID
	CounselorID *uuid.UUID
	SourceID    uuid.UUID
}

const leadColumns = `id, created_at, scheduled_at, scheduled_to, course_id, branch_id, student_id, owner_user_id, counselor_id, source_id`

func scanLead(row pgx.Row) (Lead, error) {
	var l Lead
	err := row.Scan(&l.ID, &l.CreatedAt, &l.ScheduledAt, &l.ScheduledTo, &l.CourseID,
		&l.BranchID, &l.StudentID, &l.OwnerUserID, &l.CounselorID, &l.SourceID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, err
	}
	return l, nil
}

// Create persists a new lead.
func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		INSERT INTO leads (created_at, scheduled_at, scheduled_to, course_id, branch_id, student_id, owner_user_id, counselor_id, source_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+leadColumns,
		params.CreatedAt, params.ScheduledAt, params.ScheduledTo, params.CourseID,
		params.BranchID, params.StudentID, params.OwnerUserID, params.CounselorID, params.SourceID,
	))
}

// GetByID retrieves a lead by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM leads WHERE id = $1
	`, id))
}

// ExistsByTriple reports whether any lead exists for the exact
// (course, branch, student) identity tuple.
func (r *Repository) ExistsByTriple(ctx context.Context, courseID, branchID, studentID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM leads WHERE course_id = $1 AND branch_id = $2 AND student_id = $3
		)
	`, courseID, branchID, studentID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// LeadExists reports whether a lead with the given id exists.
func (r *Repository) LeadExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM leads WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// FindStaleUnassigned returns leads created before the cutoff that still have
// no counselor, oldest first so the longest-waiting leads are assigned first.
func (r *Repository) FindStaleUnassigned(ctx context.Context, cutoff time.Time) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE created_at < $1 AND counselor_id IS NULL
		ORDER BY created_at ASC
	`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// AssignCounselor sets the counselor reference in a single write. There is no
// intermediate observable state.
func (r *Repository) AssignCounselor(ctx context.Context, leadID, counselorID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET counselor_id = $2 WHERE id = $1
	`, leadID, counselorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateLeadParams carries a manual edit; nil fields are left untouched.
// CounselorID uses a separate Set flag so an explicit unassignment is possible.
type UpdateLeadParams struct {
	ScheduledTo    *time.Time
	CounselorID    *uuid.UUID
	CounselorIDSet bool
}

// Update applies a manual lead edit.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (Lead, error) {
	if params.CounselorIDSet {
		return scanLead(r.pool.QueryRow(ctx, `
			UPDATE leads SET
				scheduled_to = COALESCE($2, scheduled_to),
				counselor_id = $3
			WHERE id = $1
			RETURNING `+leadColumns,
			id, params.ScheduledTo, params.CounselorID,
		))
	}

	return scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads SET scheduled_to = COALESCE($2, scheduled_to)
		WHERE id = $1
		RETURNING `+leadColumns,
		id, params.ScheduledTo,
	))
}
