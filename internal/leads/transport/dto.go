// Package transport defines request/response DTOs for the leads module.
package transport

import (
	"time"

	"edulead_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// CreateLeadRequest is the manual intake-form payload.
type CreateLeadRequest struct {
	CourseName  string     `json:"courseName" validate:"required,min=1,max=200"`
	BranchName  string     `json:"branchName" validate:"required,min=1,max=200"`
	StudentID   uuid.UUID  `json:"studentId" validate:"required"`
	ScheduledTo *time.Time `json:"scheduledTo"`
}

// UpdateLeadRequest carries a manual lead edit. The counselor field uses
// OptionalUUID so "absent" and "explicitly unset" are distinguishable.
type UpdateLeadRequest struct {
	ScheduledTo *time.Time   `json:"scheduledTo"`
	CounselorID OptionalUUID `json:"counselorId"`
}

// RecordFollowUpRequest appends one ledger entry.
type RecordFollowUpRequest struct {
	Status  string `json:"status" validate:"required,min=1,max=100"`
	Comment string `json:"comment" validate:"max=1000"`
}

// DuplicateCheckQuery are the query parameters of a duplicate check.
type DuplicateCheckQuery struct {
	CourseName  string `form:"courseName" validate:"required"`
	BranchName  string `form:"branchName" validate:"required"`
	StudentName string `form:"studentName" validate:"required"`
	ContactNo   string `form:"contactNo" validate:"required"`
}

// LeadResponse is the bare lead wire representation.
type LeadResponse struct {
	ID          uuid.UUID  `json:"id"`
	CreatedAt   time.Time  `json:"createdAt"`
	ScheduledAt time.Time  `json:"scheduledAt"`
	ScheduledTo *time.Time `json:"scheduledTo,omitempty"`
	CourseID    uuid.UUID  `json:"courseId"`
	BranchID    uuid.UUID  `json:"branchId"`
	StudentID   uuid.UUID  `json:"studentId"`
	OwnerUserID uuid.UUID  `json:"userId"`
	CounselorID *uuid.UUID `json:"counselorId,omitempty"`
	SourceID    uuid.UUID  `json:"sourceId"`
}

// LeadSummaryResponse is a lead joined with reference names and the
// current-status projection.
type LeadSummaryResponse struct {
	ID            uuid.UUID  `json:"id"`
	CreatedAt     time.Time  `json:"createdAt"`
	ScheduledAt   time.Time  `json:"scheduledAt"`
	ScheduledTo   *time.Time `json:"scheduledTo,omitempty"`
	StudentID     uuid.UUID  `json:"studentId"`
	StudentName   string     `json:"name"`
	ContactNo     string     `json:"contactNo"`
	Course        string     `json:"course"`
	Branch        string     `json:"branch"`
	Source        string     `json:"source"`
	CounselorID   *uuid.UUID `json:"counselorId,omitempty"`
	CounselorName *string    `json:"counselor,omitempty"`
	Status        *string    `json:"status"`
	Comment       *string    `json:"comment,omitempty"`
}

// FollowUpResponse is one ledger entry.
type FollowUpResponse struct {
	ID        uuid.UUID `json:"id"`
	LeadID    uuid.UUID `json:"leadId"`
	UserID    uuid.UUID `json:"userId"`
	Status    string    `json:"status"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"date"`
}

// CurrentStatusResponse is the current-status projection for one lead.
type CurrentStatusResponse struct {
	LeadID uuid.UUID `json:"leadId"`
	Status *string   `json:"status"`
}

// CounselorLoadResponse is one counselor's current lead count.
type CounselorLoadResponse struct {
	CounselorID uuid.UUID `json:"counselorId"`
	Load        int       `json:"load"`
}

// ToLeadResponse maps a repository lead onto the wire shape.
func ToLeadResponse(l repository.Lead) LeadResponse {
	return LeadResponse{
		ID:          l.ID,
		CreatedAt:   l.CreatedAt,
		ScheduledAt: l.ScheduledAt,
		ScheduledTo: l.ScheduledTo,
		CourseID:    l.CourseID,
		BranchID:    l.BranchID,
		StudentID:   l.StudentID,
		OwnerUserID: l.OwnerUserID,
		CounselorID: l.CounselorID,
		SourceID:    l.SourceID,
	}
}

// ToLeadSummaryResponse maps a repository summary onto the wire shape.
func ToLeadSummaryResponse(s repository.LeadSummary) LeadSummaryResponse {
	return LeadSummaryResponse{
		ID:            s.ID,
		CreatedAt:     s.CreatedAt,
		ScheduledAt:   s.ScheduledAt,
		ScheduledTo:   s.ScheduledTo,
		StudentID:     s.StudentID,
		StudentName:   s.StudentName,
		ContactNo:     s.ContactNo,
		Course:        s.CourseName,
		Branch:        s.BranchName,
		Source:        s.SourceName,
		CounselorID:   s.CounselorID,
		CounselorName: s.CounselorName,
		Status:        s.Status,
		Comment:       s.StatusComment,
	}
}

// ToFollowUpResponse maps a ledger entry onto the wire shape.
func ToFollowUpResponse(f repository.FollowUp) FollowUpResponse {
	return FollowUpResponse{
		ID:        f.ID,
		LeadID:    f.LeadID,
		UserID:    f.UserID,
		Status:    f.StatusName,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}
