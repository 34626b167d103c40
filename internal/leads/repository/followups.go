package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FollowUp is one append-only ledger entry. Entries are never updated or deleted.
type FollowUp struct {
	ID         uuid.UUID
	LeadID     uuid.UUID
	UserID     uuid.UUID
	StatusID   uuid.UUID
	StatusName string
	Comment    string
	CreatedAt  time.Time
}

type AppendFollowUpParams struct {
	LeadID    uuid.UUID
	UserID    uuid.UUID
	StatusID  uuid.UUID
	Comment   string
	CreatedAt time.Time
}

// AppendFollowUp inserts a new ledger entry for a lead.
func (r *Repository) AppendFollowUp(ctx context.Context, params AppendFollowUpParams) (FollowUp, error) {
	var f FollowUp
	err := r.pool.QueryRow(ctx, `
		INSERT INTO follow_ups (lead_id, user_id, status_id, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, lead_id, user_id, status_id,
			(SELECT name FROM statuses WHERE id = $3), comment, created_at
	`, params.LeadID, params.UserID, params.StatusID, params.Comment, params.CreatedAt,
	).Scan(&f.ID, &f.LeadID, &f.UserID, &f.StatusID, &f.StatusName, &f.Comment, &f.CreatedAt)
	if err != nil {
		return FollowUp{}, err
	}
	return f, nil
}

// HistoryByLead returns a lead's full ledger, newest first by timestamp.
func (r *Repository) HistoryByLead(ctx context.Context, leadID uuid.UUID) ([]FollowUp, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT f.id, f.lead_id, f.user_id, f.status_id, s.name, f.comment, f.created_at
		FROM follow_ups f
		JOIN statuses s ON s.id = f.status_id
		WHERE f.lead_id = $1
		ORDER BY f.created_at DESC, f.id DESC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]FollowUp, 0)
	for rows.Next() {
		var f FollowUp
		if err := rows.Scan(&f.ID, &f.LeadID, &f.UserID, &f.StatusID, &f.StatusName, &f.Comment, &f.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, f)
	}

	return entries, rows.Err()
}

// LatestByLead returns the maximum-timestamp entry for a lead, or nil when the
// lead has no history ("no determined status").
func (r *Repository) LatestByLead(ctx context.Context, leadID uuid.UUID) (*FollowUp, error) {
	var f FollowUp
	err := r.pool.QueryRow(ctx, `
		SELECT f.id, f.lead_id, f.user_id, f.status_id, s.name, f.comment, f.created_at
		FROM follow_ups f
		JOIN statuses s ON s.id = f.status_id
		WHERE f.lead_id = $1
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT 1
	`, leadID).Scan(&f.ID, &f.LeadID, &f.UserID, &f.StatusID, &f.StatusName, &f.Comment, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}
