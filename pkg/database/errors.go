package database

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes for constraint violations.
const (
	codeForeignKeyViolation pq.ErrorCode = "23503"
	codeUniqueViolation     pq.ErrorCode = "23505"
	codeCheckViolation      pq.ErrorCode = "23514"
	codeNotNullViolation    pq.ErrorCode = "23502"
)

// IsConstraintViolation reports whether err is a Postgres integrity error.
func IsConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case codeForeignKeyViolation, codeUniqueViolation, codeCheckViolation, codeNotNullViolation:
		return true
	}
	return false
}
