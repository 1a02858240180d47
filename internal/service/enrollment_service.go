package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/enrollment-api/internal/dto"
	"github.com/noah-isme/enrollment-api/internal/models"
	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
)

const (
	enrollmentListKey    = "students_subjects:list"
	enrollmentKeyPattern = "students_subjects:*"
)

type enrollmentRepository interface {
	List(ctx context.Context) ([]models.EnrollmentDetail, error)
	FindByID(ctx context.Context, id int64) (*models.Enrollment, error)
	ListSubjectsByStudent(ctx context.Context, studentID int64) ([]models.StudentSubject, error)
	Create(ctx context.Context, studentID, subjectID int64, approved models.Flag) (models.InsertResult, error)
	Update(ctx context.Context, id, studentID, subjectID int64, approved models.Flag) (models.UpdateResult, error)
	Delete(ctx context.Context, id int64) (models.DeleteResult, error)
}

// EnrollmentService manages the student/subject relation.
type EnrollmentService struct {
	repo enrollmentRepository
	opts Options
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(repo enrollmentRepository, opts Options) *EnrollmentService {
	return &EnrollmentService{repo: repo, opts: opts.withDefaults()}
}

// List returns enrollments whose student and subject both still exist.
func (s *EnrollmentService) List(ctx context.Context) ([]models.EnrollmentDetail, error) {
	var cached []models.EnrollmentDetail
	gen := s.opts.Cache.Generation()
	if s.opts.Cache.Get(ctx, enrollmentListKey, &cached) {
		return cached, nil
	}
	enrollments, err := s.repo.List(ctx)
	if err != nil {
		s.opts.Logger.Error("list enrollments failed", zap.Error(err))
		return nil, appErrors.WithCause(appErrors.ErrInternal, "could not load enrollments", err)
	}
	s.opts.Cache.Set(ctx, enrollmentListKey, enrollments, gen)
	return enrollments, nil
}

// Get returns the raw enrollment row, without the joined names.
func (s *EnrollmentService) Get(ctx context.Context, id int64) (*models.Enrollment, error) {
	key := fmt.Sprintf("students_subjects:%d", id)
	var cached models.Enrollment
	gen := s.opts.Cache.Generation()
	if s.opts.Cache.Get(ctx, key, &cached) {
		return &cached, nil
	}
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.opts.Logger.Error("find enrollment failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.WithCause(appErrors.ErrInternal, "could not load enrollment", err)
	}
	if enrollment == nil {
		if s.opts.StrictErrors {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, nil
	}
	s.opts.Cache.Set(ctx, key, enrollment, gen)
	return enrollment, nil
}

// SubjectsByStudent lists the subjects a student is enrolled in.
func (s *EnrollmentService) SubjectsByStudent(ctx context.Context, studentID int64) ([]models.StudentSubject, error) {
	key := fmt.Sprintf("students_subjects:student:%d", studentID)
	var cached []models.StudentSubject
	gen := s.opts.Cache.Generation()
	if s.opts.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	subjects, err := s.repo.ListSubjectsByStudent(ctx, studentID)
	if err != nil {
		s.opts.Logger.Error("list student subjects failed", zap.Int64("student_id", studentID), zap.Error(err))
		return nil, appErrors.WithCause(appErrors.ErrInternal, "could not load student subjects", err)
	}
	s.opts.Cache.Set(ctx, key, subjects, gen)
	return subjects, nil
}

// Create enrolls a student in a subject.
func (s *EnrollmentService) Create(ctx context.Context, req dto.CreateEnrollmentRequest) (models.InsertResult, error) {
	if err := s.opts.check(req, entityEnrollment, verbCreate, "incomplete enrollment data"); err != nil {
		return models.InsertResult{}, err
	}
	res, err := s.repo.Create(ctx, req.StudentID.Int64(), req.SubjectID.Int64(), *req.Approved)
	if err = s.opts.settle(entityEnrollment, verbCreate, res.Inserted, err); err != nil {
		return models.InsertResult{}, err
	}
	s.invalidate(ctx)
	return res, nil
}

// Update replaces student, subject and approval. Every field must be present;
// approved=0 is a value, not an absence.
func (s *EnrollmentService) Update(ctx context.Context, req dto.UpdateEnrollmentRequest) (models.UpdateResult, error) {
	if err := s.opts.validate(req, "incomplete enrollment data"); err != nil {
		return models.UpdateResult{}, err
	}
	res, err := s.repo.Update(ctx, req.ID.Int64(), req.StudentID.Int64(), req.SubjectID.Int64(), *req.Approved)
	if err = s.opts.settle(entityEnrollment, verbUpdate, res.Updated, err); err != nil {
		return models.UpdateResult{}, err
	}
	s.invalidate(ctx)
	return res, nil
}

// Delete removes an enrollment.
func (s *EnrollmentService) Delete(ctx context.Context, req dto.DeleteRequest) (models.DeleteResult, error) {
	if err := s.opts.check(req, entityEnrollment, verbDelete, "incomplete enrollment data"); err != nil {
		return models.DeleteResult{}, err
	}
	res, err := s.repo.Delete(ctx, req.ID.Int64())
	if err = s.opts.settle(entityEnrollment, verbDelete, res.Deleted, err); err != nil {
		return models.DeleteResult{}, err
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *EnrollmentService) invalidate(ctx context.Context) {
	s.opts.Cache.Invalidate(ctx, enrollmentKeyPattern)
}
