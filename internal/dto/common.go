package dto

import "github.com/noah-isme/enrollment-api/internal/models"

// IDQuery is the optional body of a GET: `{}` lists, `{"id": n}` fetches one.
type IDQuery struct {
	ID *models.LooseInt `json:"id"`
}

// DeleteRequest is the body of every DELETE.
type DeleteRequest struct {
	ID *models.LooseInt `json:"id" validate:"required"`
}

// Int64 dereferences an optional id, returning 0 for nil.
func Int64(v *models.LooseInt) int64 {
	if v == nil {
		return 0
	}
	return v.Int64()
}
