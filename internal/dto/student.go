package dto

import "github.com/noah-isme/enrollment-api/internal/models"

// CreateStudentRequest is the POST body for students.
type CreateStudentRequest struct {
	FullName *string          `json:"fullname" validate:"required"`
	Email    *string          `json:"email" validate:"required"`
	Age      *models.LooseInt `json:"age" validate:"required"`
}

// UpdateStudentRequest is the PUT body for students; every field is replaced.
type UpdateStudentRequest struct {
	ID       *models.LooseInt `json:"id" validate:"required"`
	FullName *string          `json:"fullname" validate:"required"`
	Email    *string          `json:"email" validate:"required"`
	Age      *models.LooseInt `json:"age" validate:"required"`
}
