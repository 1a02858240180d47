package dto

import "github.com/noah-isme/enrollment-api/internal/models"

// CreateSubjectRequest is the POST body for subjects.
type CreateSubjectRequest struct {
	Name *string `json:"name" validate:"required"`
}

// UpdateSubjectRequest is the PUT body for subjects.
type UpdateSubjectRequest struct {
	ID   *models.LooseInt `json:"id" validate:"required"`
	Name *string          `json:"name" validate:"required"`
}
