package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/enrollment-api/internal/models"
)

// StudentRepository handles persistence for students.
type StudentRepository struct {
	db *sqlx.DB
	observed
}

// NewStudentRepository creates a student repository. observer may be nil.
func NewStudentRepository(db *sqlx.DB, observer QueryObserver) *StudentRepository {
	return &StudentRepository{db: db, observed: observed{observer: observer}}
}

// List returns every student in storage order.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	defer r.observe("students.list", time.Now())
	const query = `SELECT id, fullname, email, age FROM students`
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID returns the student or nil when no row matches.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	defer r.observe("students.find", time.Now())
	const query = `SELECT id, fullname, email, age FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// Create inserts a student and returns the generated id.
func (r *StudentRepository) Create(ctx context.Context, fullName, email string, age int) (models.InsertResult, error) {
	defer r.observe("students.create", time.Now())
	const query = `INSERT INTO students (fullname, email, age) VALUES ($1, $2, $3) RETURNING id`
	var id int64
	if err := r.db.QueryRowxContext(ctx, query, fullName, email, age).Scan(&id); err != nil {
		return models.InsertResult{}, fmt.Errorf("create student: %w", err)
	}
	return models.InsertResult{Inserted: 1, ID: id}, nil
}

// Update replaces every field of the student.
func (r *StudentRepository) Update(ctx context.Context, id int64, fullName, email string, age int) (models.UpdateResult, error) {
	defer r.observe("students.update", time.Now())
	const query = `UPDATE students SET fullname = $1, email = $2, age = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, fullName, email, age, id)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update student: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update student rows: %w", err)
	}
	return models.UpdateResult{Updated: n}, nil
}

// Delete removes a student. Enrollments pointing at it are left untouched.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (models.DeleteResult, error) {
	defer r.observe("students.delete", time.Now())
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete student: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete student rows: %w", err)
	}
	return models.DeleteResult{Deleted: n}, nil
}
