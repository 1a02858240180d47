package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enrollment-api/internal/dto"
	"github.com/noah-isme/enrollment-api/internal/models"
	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
)

type mockStudentRepo struct {
	students map[int64]models.Student
	nextID   int64
	listHits int
	err      error
}

func (m *mockStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	m.listHits++
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Student{}
	for _, s := range m.students {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, fullName, email string, age int) (models.InsertResult, error) {
	if m.err != nil {
		return models.InsertResult{}, m.err
	}
	if m.students == nil {
		m.students = map[int64]models.Student{}
	}
	m.nextID++
	m.students[m.nextID] = models.Student{ID: m.nextID, FullName: fullName, Email: email, Age: age}
	return models.InsertResult{Inserted: 1, ID: m.nextID}, nil
}

func (m *mockStudentRepo) Update(ctx context.Context, id int64, fullName, email string, age int) (models.UpdateResult, error) {
	if m.err != nil {
		return models.UpdateResult{}, m.err
	}
	if _, ok := m.students[id]; !ok {
		return models.UpdateResult{}, nil
	}
	m.students[id] = models.Student{ID: id, FullName: fullName, Email: email, Age: age}
	return models.UpdateResult{Updated: 1}, nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id int64) (models.DeleteResult, error) {
	if m.err != nil {
		return models.DeleteResult{}, m.err
	}
	if _, ok := m.students[id]; !ok {
		return models.DeleteResult{}, nil
	}
	delete(m.students, id)
	return models.DeleteResult{Deleted: 1}, nil
}

// memoryCache is a CacheRepository backed by a map, matching redis globs of
// the form "prefix*".
type memoryCache struct {
	items   map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = raw
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.deleted = append(m.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.items {
		if strings.HasPrefix(key, prefix) {
			delete(m.items, key)
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }

func intPtr(v int64) *models.LooseInt {
	n := models.LooseInt(v)
	return &n
}

func flagPtr(v bool) *models.Flag {
	f := models.Flag(v)
	return &f
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr), "expected *errors.Error, got %T", err)
	return appErr.Status
}

func TestStudentServiceCreate(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, Options{})

	res, err := svc.Create(context.Background(), dto.CreateStudentRequest{
		FullName: strPtr("Ada Lovelace"),
		Email:    strPtr("ada@example.com"),
		Age:      intPtr(36),
	})
	require.NoError(t, err)
	assert.Equal(t, models.InsertResult{Inserted: 1, ID: 1}, res)
	assert.Equal(t, "Ada Lovelace", repo.students[1].FullName)
}

func TestStudentServiceCreateMissingFields(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, Options{StrictErrors: true})

	_, err := svc.Create(context.Background(), dto.CreateStudentRequest{FullName: strPtr("Ada")})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	assert.Contains(t, err.Error(), "missing age, email")
}

func TestStudentServiceIncompletePayloadLegacy(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, Options{})
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateStudentRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	assert.Equal(t, "could not create student", err.Error())

	_, err = svc.Update(ctx, dto.UpdateStudentRequest{FullName: strPtr("Ada")})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	assert.Equal(t, "could not update student", err.Error())

	_, err = svc.Delete(ctx, dto.DeleteRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	assert.Equal(t, "could not delete student", err.Error())

	assert.Empty(t, repo.students)
}

func TestStudentServiceCreateAcceptsZeroAge(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, Options{})

	_, err := svc.Create(context.Background(), dto.CreateStudentRequest{
		FullName: strPtr("Baby"),
		Email:    strPtr(""),
		Age:      intPtr(0),
	})
	require.NoError(t, err)
}

func TestStudentServiceGetMissingLegacy(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, Options{})

	student, err := svc.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, student)
}

func TestStudentServiceGetMissingStrict(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, Options{StrictErrors: true})

	_, err := svc.Get(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestStudentServiceUpdateZeroRows(t *testing.T) {
	req := dto.UpdateStudentRequest{ID: intPtr(7), FullName: strPtr("X"), Email: strPtr("x@y"), Age: intPtr(20)}

	legacy := NewStudentService(&mockStudentRepo{}, Options{})
	_, err := legacy.Update(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	assert.Equal(t, "could not update student", err.Error())

	strict := NewStudentService(&mockStudentRepo{}, Options{StrictErrors: true})
	_, err = strict.Update(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestStudentServiceDeleteStorageFailure(t *testing.T) {
	repo := &mockStudentRepo{err: errors.New("connection reset")}
	svc := NewStudentService(repo, Options{})

	_, err := svc.Delete(context.Background(), dto.DeleteRequest{ID: intPtr(1)})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestStudentServiceConstraintViolation(t *testing.T) {
	pqErr := &pq.Error{Code: "23505"}

	legacy := NewStudentService(&mockStudentRepo{err: pqErr}, Options{})
	_, err := legacy.Create(context.Background(), dto.CreateStudentRequest{FullName: strPtr("A"), Email: strPtr("a@b"), Age: intPtr(1)})
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))

	strict := NewStudentService(&mockStudentRepo{err: pqErr}, Options{StrictErrors: true})
	_, err = strict.Create(context.Background(), dto.CreateStudentRequest{FullName: strPtr("A"), Email: strPtr("a@b"), Age: intPtr(1)})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestStudentServiceListUsesCache(t *testing.T) {
	repo := &mockStudentRepo{students: map[int64]models.Student{1: {ID: 1, FullName: "Ada"}}, nextID: 1}
	cache := newMemoryCache()
	svc := NewStudentService(repo, Options{Cache: NewCacheService(cache, nil, time.Minute, nil)})

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	second, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listHits)

	_, err = svc.Create(context.Background(), dto.CreateStudentRequest{FullName: strPtr("Grace"), Email: strPtr("g@h"), Age: intPtr(40)})
	require.NoError(t, err)
	assert.Equal(t, []string{studentKeyPattern, enrollmentKeyPattern}, cache.deleted)

	third, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, third, 2)
	assert.Equal(t, 2, repo.listHits)
}

func TestStudentServiceWritesAreCounted(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewStudentService(&mockStudentRepo{}, Options{Metrics: metrics})

	_, _ = svc.Delete(context.Background(), dto.DeleteRequest{ID: intPtr(5)})

	families, err := metrics.registry.Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range families {
		if mf.GetName() != "entity_writes_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["entity"] == entityStudent && labels["op"] == verbDelete && labels["outcome"] == "failure" {
				found = true
				assert.Equal(t, float64(1), m.GetCounter().GetValue())
			}
		}
	}
	assert.True(t, found)
}

// writeDuringList runs a write while a List call is reading storage.
type writeDuringList struct {
	*mockStudentRepo
	during func()
}

func (r *writeDuringList) List(ctx context.Context) ([]models.Student, error) {
	out, err := r.mockStudentRepo.List(ctx)
	if r.during != nil {
		during := r.during
		r.during = nil
		during()
	}
	return out, err
}

func TestStudentServiceListSkipsStaleFill(t *testing.T) {
	repo := &writeDuringList{mockStudentRepo: &mockStudentRepo{}}
	cache := newMemoryCache()
	svc := NewStudentService(repo, Options{Cache: NewCacheService(cache, nil, time.Minute, nil)})
	ctx := context.Background()
	repo.during = func() {
		_, err := svc.Create(ctx, dto.CreateStudentRequest{FullName: strPtr("Ada"), Email: strPtr("a@b"), Age: intPtr(36)})
		require.NoError(t, err)
	}

	first, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, first)
	assert.NotContains(t, cache.items, studentListKey)

	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, 2, repo.listHits)
}
