// Package dedupe implements the duplicate-lead predicate. A lead's identity
// for duplicate purposes is the exact (course, branch, student) tuple.
package dedupe

import (
	"context"
	"errors"

	dirrepo "edulead_backend/internal/directory/repository"
	"edulead_backend/platform/phone"

	"github.com/google/uuid"
)

// IncompleteMessage is returned when any of the three lookups fails to
// resolve. Incomplete reference data never blocks intake.
const IncompleteMessage = "Incomplete information provided."

// DirectoryReader resolves the triple's members by natural key.
type DirectoryReader interface {
	GetCourseByName(ctx context.Context, name string) (dirrepo.Course, error)
	GetBranchByName(ctx context.Context, name string) (dirrepo.Branch, error)
	FindStudentByNameAndContact(ctx context.Context, name, contactNo string) (dirrepo.Student, error)
}

// LeadReader answers whether a lead exists for a resolved triple.
type LeadReader interface {
	ExistsByTriple(ctx context.Context, courseID, branchID, studentID uuid.UUID) (bool, error)
}

// Result is the outcome of a duplicate check.
type Result struct {
	Duplicate  bool   `json:"isDuplicate"`
	Incomplete bool   `json:"-"`
	Message    string `json:"message,omitempty"`
}

// Detector is the duplicate-lead predicate. It is pure: no writes, no state.
type Detector struct {
	directory DirectoryReader
	leads     LeadReader
}

// New creates a duplicate detector.
func New(directory DirectoryReader, leads LeadReader) *Detector {
	return &Detector{directory: directory, leads: leads}
}

// Check resolves course and branch by name and the student by exact
// (name, normalized contact number). If any lookup misses, the result is
// not-duplicate with an incomplete-information signal (fail-open). If all
// three resolve, duplicate means a lead exists for the exact triple.
// No partial or fuzzy matching.
func (d *Detector) Check(ctx context.Context, courseName, branchName, studentName, contactNo string) (Result, error) {
	course, err := d.directory.GetCourseByName(ctx, courseName)
	if errors.Is(err, dirrepo.ErrNotFound) {
		return Result{Incomplete: true, Message: IncompleteMessage}, nil
	}
	if err != nil {
		return Result{}, err
	}

	branch, err := d.directory.GetBranchByName(ctx, branchName)
	if errors.Is(err, dirrepo.ErrNotFound) {
		return Result{Incomplete: true, Message: IncompleteMessage}, nil
	}
	if err != nil {
		return Result{}, err
	}

	student, err := d.directory.FindStudentByNameAndContact(ctx, studentName, phone.NormalizeE164(contactNo))
	if errors.Is(err, dirrepo.ErrNotFound) {
		return Result{Incomplete: true, Message: IncompleteMessage}, nil
	}
	if err != nil {
		return Result{}, err
	}

	duplicate, err := d.leads.ExistsByTriple(ctx, course.ID, branch.ID, student.ID)
	if err != nil {
		return Result{}, err
	}

	return Result{Duplicate: duplicate}, nil
}
