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

// SubjectRepository handles persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
	observed
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB, observer QueryObserver) *SubjectRepository {
	return &SubjectRepository{db: db, observed: observed{observer: observer}}
}

// List returns all subjects.
func (r *SubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	defer r.observe("subjects.list", time.Now())
	subjects := []models.Subject{}
	if err := r.db.SelectContext(ctx, &subjects, `SELECT id, name FROM subjects`); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID returns a subject by id, or nil.
func (r *SubjectRepository) FindByID(ctx context.Context, id int64) (*models.Subject, error) {
	defer r.observe("subjects.find", time.Now())
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, `SELECT id, name FROM subjects WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find subject: %w", err)
	}
	return &subject, nil
}

// Create persists a new subject.
func (r *SubjectRepository) Create(ctx context.Context, name string) (models.InsertResult, error) {
	defer r.observe("subjects.create", time.Now())
	var id int64
	if err := r.db.QueryRowxContext(ctx, `INSERT INTO subjects (name) VALUES ($1) RETURNING id`, name).Scan(&id); err != nil {
		return models.InsertResult{}, fmt.Errorf("create subject: %w", err)
	}
	return models.InsertResult{Inserted: 1, ID: id}, nil
}

// Update renames a subject.
func (r *SubjectRepository) Update(ctx context.Context, id int64, name string) (models.UpdateResult, error) {
	defer r.observe("subjects.update", time.Now())
	res, err := r.db.ExecContext(ctx, `UPDATE subjects SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update subject: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update subject rows: %w", err)
	}
	return models.UpdateResult{Updated: n}, nil
}

// Delete removes a subject record.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) (models.DeleteResult, error) {
	defer r.observe("subjects.delete", time.Now())
	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete subject: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete subject rows: %w", err)
	}
	return models.DeleteResult{Deleted: n}, nil
}
