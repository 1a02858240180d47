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
	subjectListKey    = "subjects:list"
	subjectKeyPattern = "subjects:*"
)

type subjectRepository interface {
	List(ctx context.Context) ([]models.Subject, error)
	FindByID(ctx context.Context, id int64) (*models.Subject, error)
	Create(ctx context.Context, name string) (models.InsertResult, error)
	Update(ctx context.Context, id int64, name string) (models.UpdateResult, error)
	Delete(ctx context.Context, id int64) (models.DeleteResult, error)
}

// SubjectService manages subjects.
type SubjectService struct {
	repo subjectRepository
	opts Options
}

// NewSubjectService constructs the subject service.
func NewSubjectService(repo subjectRepository, opts Options) *SubjectService {
	return &SubjectService{repo: repo, opts: opts.withDefaults()}
}

// List returns every subject.
func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	var cached []models.Subject
	gen := s.opts.Cache.Generation()
	if s.opts.Cache.Get(ctx, subjectListKey, &cached) {
		return cached, nil
	}
	subjects, err := s.repo.List(ctx)
	if err != nil {
		s.opts.Logger.Error("list subjects failed", zap.Error(err))
		return nil, appErrors.WithCause(appErrors.ErrInternal, "could not load subjects", err)
	}
	s.opts.Cache.Set(ctx, subjectListKey, subjects, gen)
	return subjects, nil
}

// Get returns a subject or nil.
func (s *SubjectService) Get(ctx context.Context, id int64) (*models.Subject, error) {
	key := fmt.Sprintf("subjects:%d", id)
	var cached models.Subject
	gen := s.opts.Cache.Generation()
	if s.opts.Cache.Get(ctx, key, &cached) {
		return &cached, nil
	}
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.opts.Logger.Error("find subject failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.WithCause(appErrors.ErrInternal, "could not load subject", err)
	}
	if subject == nil {
		if s.opts.StrictErrors {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, nil
	}
	s.opts.Cache.Set(ctx, key, subject, gen)
	return subject, nil
}

// Create adds a subject.
func (s *SubjectService) Create(ctx context.Context, req dto.CreateSubjectRequest) (models.InsertResult, error) {
	if err := s.opts.check(req, entitySubject, verbCreate, "invalid subject payload"); err != nil {
		return models.InsertResult{}, err
	}
	res, err := s.repo.Create(ctx, *req.Name)
	if err = s.opts.settle(entitySubject, verbCreate, res.Inserted, err); err != nil {
		return models.InsertResult{}, err
	}
	s.invalidate(ctx)
	return res, nil
}

// Update renames a subject.
func (s *SubjectService) Update(ctx context.Context, req dto.UpdateSubjectRequest) (models.UpdateResult, error) {
	if err := s.opts.check(req, entitySubject, verbUpdate, "invalid subject payload"); err != nil {
		return models.UpdateResult{}, err
	}
	res, err := s.repo.Update(ctx, req.ID.Int64(), *req.Name)
	if err = s.opts.settle(entitySubject, verbUpdate, res.Updated, err); err != nil {
		return models.UpdateResult{}, err
	}
	s.invalidate(ctx)
	return res, nil
}

// Delete removes a subject.
func (s *SubjectService) Delete(ctx context.Context, req dto.DeleteRequest) (models.DeleteResult, error) {
	if err := s.opts.check(req, entitySubject, verbDelete, "invalid subject payload"); err != nil {
		return models.DeleteResult{}, err
	}
	res, err := s.repo.Delete(ctx, req.ID.Int64())
	if err = s.opts.settle(entitySubject, verbDelete, res.Deleted, err); err != nil {
		return models.DeleteResult{}, err
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *SubjectService) invalidate(ctx context.Context) {
	s.opts.Cache.Invalidate(ctx, subjectKeyPattern, enrollmentKeyPattern)
}
