// Package repository provides data access for the directory reference data:
// courses, branches, sources, statuses, students, and counselors. The lead
// pipeline only ever reads these by natural key (name/code) or identifier.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a directory lookup resolves nothing.
var ErrNotFound = errors.New("directory record not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Course struct {
	ID   uuid.UUID
	Name string
	Code string
}

type Branch struct {
	ID   uuid.UUID
	Name string
}

type Source struct {
	ID   uuid.UUID
	Name string
}

type Status struct {
	ID   uuid.UUID
	Name string
}

// GetCourseByName resolves a course by its display name.
func (r *Repository) GetCourseByName(ctx context.Context, name string) (Course, error) {
	var course Course
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, code FROM courses WHERE name = $1
	`, name).Scan(&course.ID, &course.Name, &course.Code)
	if errors.Is(err, pgx.ErrNoRows) {
		return Course{}, ErrNotFound
	}
	if err != nil {
		return Course{}, err
	}
	return course, nil
}

// GetCourseByCode resolves a course by its course code. The leadgen webhook
// supplies codes, not display names.
func (r *Repository) GetCourseByCode(ctx context.Context, code string) (Course, error) {
	var course Course
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, code FROM courses WHERE code = $1
	`, code).Scan(&course.ID, &course.Name, &course.Code)
	if errors.Is(err, pgx.ErrNoRows) {
		return Course{}, ErrNotFound
	}
	if err != nil {
		return Course{}, err
	}
	return course, nil
}

// GetBranchByName resolves a branch by its display name.
func (r *Repository) GetBranchByName(ctx context.Context, name string) (Branch, error) {
	var branch Branch
	err := r.pool.QueryRow(ctx, `
		SELECT id, name FROM branches WHERE name = $1
	`, name).Scan(&branch.ID, &branch.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Branch{}, ErrNotFound
	}
	if err != nil {
		return Branch{}, err
	}
	return branch, nil
}

// GetSourceByName resolves an intake source ("manual", "facebook", ...).
func (r *Repository) GetSourceByName(ctx context.Context, name string) (Source, error) {
	var source Source
	err := r.pool.QueryRow(ctx, `
		SELECT id, name FROM sources WHERE name = $1
	`, name).Scan(&source.ID, &source.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Source{}, ErrNotFound
	}
	if err != nil {
		return Source{}, err
	}
	return source, nil
}

// GetStatusByName resolves a follow-up status by name.
func (r *Repository) GetStatusByName(ctx context.Context, name string) (Status, error) {
	var status Status
	err := r.pool.QueryRow(ctx, `
		SELECT id, name FROM statuses WHERE name = $1
	`, name).Scan(&status.ID, &status.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Status{}, ErrNotFound
	}
	if err != nil {
		return Status{}, err
	}
	return status, nil
}
