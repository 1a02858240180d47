package dto

import "github.com/noah-isme/enrollment-api/internal/models"

// CreateEnrollmentRequest is the POST body for students_subjects.
type CreateEnrollmentRequest struct {
	StudentID *models.LooseInt `json:"student_id" validate:"required"`
	SubjectID *models.LooseInt `json:"subject_id" validate:"required"`
	Approved  *models.Flag     `json:"approved" validate:"required"`
}

// UpdateEnrollmentRequest is the PUT body for students_subjects. All four
// fields must be present; approved=0 counts as present.
type UpdateEnrollmentRequest struct {
	ID        *models.LooseInt `json:"id" validate:"required"`
	StudentID *models.LooseInt `json:"student_id" validate:"required"`
	SubjectID *models.LooseInt `json:"subject_id" validate:"required"`
	Approved  *models.Flag     `json:"approved" validate:"required"`
}
