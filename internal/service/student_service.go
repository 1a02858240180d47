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
	studentListKey    = "students:list"
	studentKeyPattern = "students:*"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, fullName, email string, age int) (models.InsertResult, error)
	Update(ctx context.Context, id int64, fullName, email string, age int) (models.UpdateResult, error)
	Delete(ctx context.Context, id int64) (models.DeleteResult, error)
}

// StudentService handles student use-cases.
type StudentService struct {
	repo studentRepository
	opts Options
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, opts Options) *StudentService {
	return &StudentService{repo: repo, opts: opts.withDefaults()}
}

// List returns every student.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	var cached []models.Student
	gen := s.opts.Cache.Generation()
	if s.opts.Cache.Get(ctx, studentListKey, &cached) {
		return cached, nil
	}
	students, err := s.repo.List(ctx)
	if err != nil {
		s.opts.Logger.Error("list students failed", zap.Error(err))
		return nil, appErrors.WithCause(appErrors.ErrInternal, "could not load students", err)
	}
	s.opts.Cache.Set(ctx, studentListKey, students, gen)
	return students, nil
}

// Get returns one student. A missing row is (nil, nil) unless strict errors
// are enabled.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	key := fmt.Sprintf("students:%d", id)
	var cached models.Student
	gen := s.opts.Cache.Generation()
	if s.opts.Cache.Get(ctx, key, &cached) {
		return &cached, nil
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.opts.Logger.Error("find student failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.WithCause(appErrors.ErrInternal, "could not load student", err)
	}
	if student == nil {
		if s.opts.StrictErrors {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, nil
	}
	s.opts.Cache.Set(ctx, key, student, gen)
	return student, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (models.InsertResult, error) {
	if err := s.opts.check(req, entityStudent, verbCreate, "invalid student payload"); err != nil {
		return models.InsertResult{}, err
	}
	res, err := s.repo.Create(ctx, *req.FullName, *req.Email, int(req.Age.Int64()))
	if err = s.opts.settle(entityStudent, verbCreate, res.Inserted, err); err != nil {
		return models.InsertResult{}, err
	}
	s.invalidate(ctx)
	return res, nil
}

// Update replaces every field of an existing student.
func (s *StudentService) Update(ctx context.Context, req dto.UpdateStudentRequest) (models.UpdateResult, error) {
	if err := s.opts.check(req, entityStudent, verbUpdate, "invalid student payload"); err != nil {
		return models.UpdateResult{}, err
	}
	res, err := s.repo.Update(ctx, req.ID.Int64(), *req.FullName, *req.Email, int(req.Age.Int64()))
	if err = s.opts.settle(entityStudent, verbUpdate, res.Updated, err); err != nil {
		return models.UpdateResult{}, err
	}
	s.invalidate(ctx)
	return res, nil
}

// Delete removes a student. Its enrollments stay in storage and drop out of
// the joined listing.
func (s *StudentService) Delete(ctx context.Context, req dto.DeleteRequest) (models.DeleteResult, error) {
	if err := s.opts.check(req, entityStudent, verbDelete, "invalid student payload"); err != nil {
		return models.DeleteResult{}, err
	}
	res, err := s.repo.Delete(ctx, req.ID.Int64())
	if err = s.opts.settle(entityStudent, verbDelete, res.Deleted, err); err != nil {
		return models.DeleteResult{}, err
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *StudentService) invalidate(ctx context.Context) {
	s.opts.Cache.Invalidate(ctx, studentKeyPattern, enrollmentKeyPattern)
}
