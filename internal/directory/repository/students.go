package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Student struct {
	ID          uuid.UUID
	Name        string
	DateOfBirth *time.Time
	ContactNo   string
	Email       *string
	Address     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateStudentParams struct {
	Name        string
	DateOfBirth *time.Time
	ContactNo   string
	Email       *string
	Address     *string
}

// UpdateStudentParams carries a partial update; nil fields are left untouched.
type UpdateStudentParams struct {
	Name        *string
	DateOfBirth *time.Time
	ContactNo   *string
	Email       *string
	Address     *string
}

const studentColumns = `id, name, date_of_birth, contact_no, email, address, created_at, updated_at`

func scanStudent(row pgx.Row) (Student, error) {
	var s Student
	err := row.Scan(&s.ID, &s.Name, &s.DateOfBirth, &s.ContactNo, &s.Email, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Student{}, ErrNotFound
	}
	if err != nil {
		return Student{}, err
	}
	return s, nil
}

// CreateStudent inserts a new student record. Students are created on first
// contact and never deleted.
func (r *Repository) CreateStudent(ctx context.Context, params CreateStudentParams) (Student, error) {
	return scanStudent(r.pool.QueryRow(ctx, `
		INSERT INTO students (name, date_of_birth, contact_no, email, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+studentColumns,
		params.Name, params.DateOfBirth, params.ContactNo, params.Email, params.Address,
	))
}

// GetStudent retrieves a student by identifier.
func (r *Repository) GetStudent(ctx context.Context, id uuid.UUID) (Student, error) {
	return scanStudent(r.pool.QueryRow(ctx, `
		SELECT `+studentColumns+` FROM students WHERE id = $1
	`, id))
}

// FindStudentByNameAndContact resolves a student by exact (name, contact number)
// match, the key the duplicate detector uses.
func (r *Repository) FindStudentByNameAndContact(ctx context.Context, name, contactNo string) (Student, error) {
	return scanStudent(r.pool.QueryRow(ctx, `
		SELECT `+studentColumns+` FROM students WHERE name = $1 AND contact_no = $2
	`, name, contactNo))
}

// FindStudentByEmail resolves a student by email, the coarse match key used by
// webhook intake's lookup-or-create.
func (r *Repository) FindStudentByEmail(ctx context.Context, email string) (Student, error) {
	return scanStudent(r.pool.QueryRow(ctx, `
		SELECT `+studentColumns+` FROM students WHERE email = $1
	`, email))
}

// UpdateStudent applies a partial update from the intake form.
func (r *Repository) UpdateStudent(ctx context.Context, id uuid.UUID, params UpdateStudentParams) (Student, error) {
	return scanStudent(r.pool.QueryRow(ctx, `
		UPDATE students SET
			name = COALESCE($2, name),
			date_of_birth = COALESCE($3, date_of_birth),
			contact_no = COALESCE($4, contact_no),
			email = COALESCE($5, email),
			address = COALESCE($6, address),
			updated_at = now()
		WHERE id = $1
		RETURNING `+studentColumns,
		id, params.Name, params.DateOfBirth, params.ContactNo, params.Email, params.Address,
	))
}
