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

// listEnrollmentsQuery uses inner joins: rows whose student or subject no
// longer exists are left out of the listing.
const listEnrollmentsQuery = `SELECT ss.id, ss.student_id, ss.subject_id, ss.approved,
        st.fullname AS student_fullname, sb.name AS subject_name
        FROM students_subjects ss
        JOIN subjects sb ON ss.subject_id = sb.id
        JOIN students st ON ss.student_id = st.id`

// EnrollmentRepository handles persistence of students_subjects rows.
type EnrollmentRepository struct {
	db *sqlx.DB
	observed
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB, observer QueryObserver) *EnrollmentRepository {
	return &EnrollmentRepository{db: db, observed: observed{observer: observer}}
}

// List returns every enrollment with the student full name and subject name.
func (r *EnrollmentRepository) List(ctx context.Context) ([]models.EnrollmentDetail, error) {
	defer r.observe("enrollments.list", time.Now())
	enrollments := []models.EnrollmentDetail{}
	if err := r.db.SelectContext(ctx, &enrollments, listEnrollmentsQuery); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// FindByID returns the raw enrollment row, or nil.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	defer r.observe("enrollments.find", time.Now())
	const query = `SELECT id, student_id, subject_id, approved FROM students_subjects WHERE id = $1`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &enrollment, nil
}

// ListSubjectsByStudent returns the subjects a student is enrolled in.
func (r *EnrollmentRepository) ListSubjectsByStudent(ctx context.Context, studentID int64) ([]models.StudentSubject, error) {
	defer r.observe("enrollments.by_student", time.Now())
	const query = `SELECT ss.subject_id, sb.name, ss.approved
        FROM students_subjects ss
        JOIN subjects sb ON ss.subject_id = sb.id
        WHERE ss.student_id = $1`
	subjects := []models.StudentSubject{}
	if err := r.db.SelectContext(ctx, &subjects, query, studentID); err != nil {
		return nil, fmt.Errorf("list student subjects: %w", err)
	}
	return subjects, nil
}

// Create assigns a subject to a student.
func (r *EnrollmentRepository) Create(ctx context.Context, studentID, subjectID int64, approved models.Flag) (models.InsertResult, error) {
	defer r.observe("enrollments.create", time.Now())
	const query = `INSERT INTO students_subjects (student_id, subject_id, approved) VALUES ($1, $2, $3) RETURNING id`
	var id int64
	if err := r.db.QueryRowxContext(ctx, query, studentID, subjectID, approved).Scan(&id); err != nil {
		return models.InsertResult{}, fmt.Errorf("create enrollment: %w", err)
	}
	return models.InsertResult{Inserted: 1, ID: id}, nil
}

// Update replaces student, subject and approval of an enrollment.
func (r *EnrollmentRepository) Update(ctx context.Context, id, studentID, subjectID int64, approved models.Flag) (models.UpdateResult, error) {
	defer r.observe("enrollments.update", time.Now())
	const query = `UPDATE students_subjects SET student_id = $1, subject_id = $2, approved = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, studentID, subjectID, approved, id)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update enrollment: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update enrollment rows: %w", err)
	}
	return models.UpdateResult{Updated: n}, nil
}

// Delete removes an enrollment.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) (models.DeleteResult, error) {
	defer r.observe("enrollments.delete", time.Now())
	res, err := r.db.ExecContext(ctx, `DELETE FROM students_subjects WHERE id = $1`, id)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete enrollment: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete enrollment rows: %w", err)
	}
	return models.DeleteResult{Deleted: n}, nil
}
