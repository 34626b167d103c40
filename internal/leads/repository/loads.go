package repository

import (
	"context"

	"edulead_backend/internal/leads/assignment"
)

// CounselorLoads builds a load snapshot for every counselor. The LEFT JOIN
// keeps counselors with zero assigned leads in the result with a count of 0,
// so a fresh counselor is a first-class candidate for assignment.
func (r *Repository) CounselorLoads(ctx context.Context) ([]assignment.CounselorLoad, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, COUNT(l.id)
		FROM users u
		LEFT JOIN leads l ON l.counselor_id = u.id
		WHERE u.user_type = 'counselor'
		GROUP BY u.id
		ORDER BY COUNT(l.id) ASC, u.id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loads := make([]assignment.CounselorLoad, 0)
	for rows.Next() {
		var cl assignment.CounselorLoad
		if err := rows.Scan(&cl.CounselorID, &cl.Load); err != nil {
			return nil, err
		}
		loads = append(loads, cl)
	}

	return loads, rows.Err()
}
