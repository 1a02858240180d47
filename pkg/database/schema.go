package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema creates the three enrollment tables when they are missing.
// students_subjects deliberately carries no foreign keys: deleting a student
// or subject leaves the enrollment row behind and the joined listing hides it.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS students (
        id SERIAL PRIMARY KEY,
        fullname TEXT NOT NULL,
        email TEXT NOT NULL,
        age INTEGER NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS subjects (
        id SERIAL PRIMARY KEY,
        name TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS students_subjects (
        id SERIAL PRIMARY KEY,
        student_id INTEGER NOT NULL,
        subject_id INTEGER NOT NULL,
        approved SMALLINT NOT NULL DEFAULT 0
    )`,
	`CREATE INDEX IF NOT EXISTS idx_students_subjects_student ON students_subjects (student_id)`,
	`CREATE INDEX IF NOT EXISTS idx_students_subjects_subject ON students_subjects (subject_id)`,
}

// EnsureSchema runs every Schema statement in order.
func EnsureSchema(ctx context.Context, db sqlx.ExecerContext) error {
	for i, stmt := range Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
