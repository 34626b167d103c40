// Package transport defines request/response DTOs for the directory module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateStudentRequest is the intake-form payload for a first-contact student.
type CreateStudentRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	DateOfBirth *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	ContactNo   string  `json:"contactNo" validate:"required,min=5,max=30"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
}

// UpdateStudentRequest carries a partial update; absent fields are untouched.
type UpdateStudentRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	DateOfBirth *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	ContactNo   *string `json:"contactNo" validate:"omitempty,min=5,max=30"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
}

// StudentResponse is the student wire representation.
type StudentResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth *string   `json:"dob,omitempty"`
	ContactNo   string    `json:"contactNo"`
	Email       *string   `json:"email,omitempty"`
	Address     *string   `json:"address,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CounselorResponse is the counselor wire representation.
type CounselorResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
