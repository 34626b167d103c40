package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LeadSummary joins a lead with its reference names and the current-status
// projection (the maximum-timestamp follow-up, when one exists).
type LeadSummary struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	ScheduledAt   time.Time
	ScheduledTo   *time.Time
	StudentID     uuid.UUID
	StudentName   string
	ContactNo     string
	CourseName    string
	BranchName    string
	SourceName    string
	CounselorID   *uuid.UUID
	CounselorName *string
	Status        *string
	StatusComment *string
}

const summaryQuery = `
	SELECT
		l.id, l.created_at, l.scheduled_at, l.scheduled_to,
		st.id, st.name, st.contact_no,
		c.name, b.name, src.name,
		l.counselor_id, cu.name,
		latest.status_name, latest.comment
	FROM leads l
	JOIN students st ON st.id = l.student_id
	JOIN courses c ON c.id = l.course_id
	JOIN branches b ON b.id = l.branch_id
	JOIN sources src ON src.id = l.source_id
	LEFT JOIN users cu ON cu.id = l.counselor_id
	LEFT JOIN LATERAL (
		SELECT s.name AS status_name, f.comment
		FROM follow_ups f
		JOIN statuses s ON s.id = f.status_id
		WHERE f.lead_id = l.id
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT 1
	) latest ON true
`

func scanSummary(row pgx.Row) (LeadSummary, error) {
	var s LeadSummary
	err := row.Scan(
		&s.ID, &s.CreatedAt, &s.ScheduledAt, &s.ScheduledTo,
		&s.StudentID, &s.StudentName, &s.ContactNo,
		&s.CourseName, &s.BranchName, &s.SourceName,
		&s.CounselorID, &s.CounselorName,
		&s.Status, &s.StatusComment,
	)
	return s, err
}

// ListSummaries returns all leads with reference names and current status.
func (r *Repository) ListSummaries(ctx context.Context) ([]LeadSummary, error) {
	rows, err := r.pool.Query(ctx, summaryQuery+` ORDER BY l.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]LeadSummary, 0)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// GetSummary returns one lead's summary.
func (r *Repository) GetSummary(ctx context.Context, id uuid.UUID) (LeadSummary, error) {
	s, err := scanSummary(r.pool.QueryRow(ctx, summaryQuery+` WHERE l.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return LeadSummary{}, ErrNotFound
	}
	if err != nil {
		return LeadSummary{}, err
	}
	return s, nil
}
