package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Counselors are users whose user type grants lead-handling capability.
const counselorUserType = "counselor"

type Counselor struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// GetCounselor retrieves a counselor by identifier. A user of any other type
// resolves to ErrNotFound.
func (r *Repository) GetCounselor(ctx context.Context, id uuid.UUID) (Counselor, error) {
	var c Counselor
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email FROM users WHERE id = $1 AND user_type = $2
	`, id, counselorUserType).Scan(&c.ID, &c.Name, &c.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return Counselor{}, ErrNotFound
	}
	if err != nil {
		return Counselor{}, err
	}
	return c, nil
}

// UserExists reports whether a user with the given id exists, regardless of type.
func (r *Repository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListCounselors returns all counselors ordered by id for stable iteration.
func (r *Repository) ListCounselors(ctx context.Context) ([]Counselor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email FROM users WHERE user_type = $1 ORDER BY id ASC
	`, counselorUserType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counselors := make([]Counselor, 0)
	for rows.Next() {
		var c Counselor
		if err := rows.Scan(&c.ID, &c.Name, &c.Email); err != nil {
			return nil, err
		}
		counselors = append(counselors, c)
	}

	return counselors, rows.Err()
}
