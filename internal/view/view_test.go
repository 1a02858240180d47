package view

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enrollment-api/internal/models"
	"github.com/noah-isme/enrollment-api/pkg/client"
)

type fakeStore[T any] struct {
	rows     []T
	fetches  int
	created  []interface{}
	updated  []interface{}
	removed  []int64
	writeErr error
}

func (f *fakeStore[T]) FetchAll(ctx context.Context) ([]T, error) {
	f.fetches++
	return f.rows, nil
}

func (f *fakeStore[T]) Create(ctx context.Context, payload interface{}) (string, error) {
	f.created = append(f.created, payload)
	return "created", f.writeErr
}

func (f *fakeStore[T]) Update(ctx context.Context, payload interface{}) (string, error) {
	f.updated = append(f.updated, payload)
	return "updated", f.writeErr
}

func (f *fakeStore[T]) Remove(ctx context.Context, id int64) (string, error) {
	f.removed = append(f.removed, id)
	return "deleted", f.writeErr
}

func always(answer bool) ConfirmFunc {
	return func(string) bool { return answer }
}

func TestStudentControllerCreateThenUpdate(t *testing.T) {
	store := &fakeStore[models.Student]{rows: []models.Student{{ID: 3, FullName: "Ada", Email: "a@b", Age: 36}}}
	out := &bytes.Buffer{}
	ctrl := NewStudentController(store, out, always(true))
	ctx := context.Background()

	require.NoError(t, ctrl.Load(ctx))
	assert.Contains(t, out.String(), "Ada")
	assert.Contains(t, out.String(), "edit 3 | delete 3")

	ctrl.Form = StudentForm{FullName: "Grace", Email: "g@h", Age: "40"}
	msg, err := ctrl.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "created", msg)
	require.Len(t, store.created, 1)
	assert.Nil(t, store.created[0].(studentPayload).ID)
	assert.Equal(t, StudentForm{}, ctrl.Form)
	assert.Equal(t, 2, store.fetches)

	require.NoError(t, ctrl.Edit(3))
	assert.Equal(t, "3", ctrl.Form.ID)
	ctrl.Form.Age = "37"
	_, err = ctrl.Submit(ctx)
	require.NoError(t, err)
	require.Len(t, store.updated, 1)
	p := store.updated[0].(studentPayload)
	require.NotNil(t, p.ID)
	assert.Equal(t, int64(3), *p.ID)
	assert.Equal(t, 37, p.Age)
}

func TestStudentControllerRejectsBadAge(t *testing.T) {
	store := &fakeStore[models.Student]{}
	ctrl := NewStudentController(store, nil, nil)
	ctrl.Form = StudentForm{FullName: "A", Email: "b", Age: "old"}

	_, err := ctrl.Submit(context.Background())
	require.Error(t, err)
	assert.Empty(t, store.created)
}

func TestCancelSwitchesToCreate(t *testing.T) {
	store := &fakeStore[models.Subject]{rows: []models.Subject{{ID: 2, Name: "Art"}}}
	ctrl := NewSubjectController(store, nil, nil)
	require.NoError(t, ctrl.Load(context.Background()))
	require.NoError(t, ctrl.Edit(2))

	ctrl.Cancel()
	_, err := ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Len(t, store.created, 1)
	assert.Empty(t, store.updated)
}

func TestEditUnknownRow(t *testing.T) {
	ctrl := NewSubjectController(&fakeStore[models.Subject]{}, nil, nil)
	assert.ErrorIs(t, ctrl.Edit(1), ErrNotLoaded)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	store := &fakeStore[models.Subject]{}
	declined := NewSubjectController(store, nil, always(false))
	msg, err := declined.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.Empty(t, store.removed)

	accepted := NewSubjectController(store, nil, always(true))
	msg, err = accepted.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "deleted", msg)
	assert.Equal(t, []int64{4}, store.removed)
	assert.Equal(t, 1, store.fetches)
}

func TestWriteErrorKeepsForm(t *testing.T) {
	store := &fakeStore[models.Subject]{writeErr: errors.New("boom")}
	ctrl := NewSubjectController(store, nil, nil)
	ctrl.Form = SubjectForm{Name: "Art"}

	_, err := ctrl.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Art", ctrl.Form.Name)
}

func TestEnrollmentControllerOptionsAndApproval(t *testing.T) {
	relations := &fakeStore[models.EnrollmentDetail]{rows: []models.EnrollmentDetail{
		{Enrollment: models.Enrollment{ID: 1, StudentID: 2, SubjectID: 3, Approved: false}, StudentFullName: "Ada", SubjectName: "Math"},
	}}
	students := &fakeStore[models.Student]{rows: []models.Student{{ID: 2, FullName: "Ada"}}}
	subjects := &fakeStore[models.Subject]{rows: []models.Subject{{ID: 3, Name: "Math"}}}
	out := &bytes.Buffer{}
	ctrl := NewEnrollmentController(relations, students, subjects, out, always(true))
	ctx := context.Background()

	require.NoError(t, ctrl.LoadOptions(ctx))
	assert.Equal(t, []Option{{Value: 2, Label: "Ada"}}, ctrl.StudentOptions)
	assert.Equal(t, []Option{{Value: 3, Label: "Math"}}, ctrl.SubjectOptions)

	require.NoError(t, ctrl.Load(ctx))
	assert.Contains(t, out.String(), "No")

	require.NoError(t, ctrl.Edit(1))
	assert.False(t, ctrl.Form.Approved)
	ctrl.Form.Approved = true
	_, err := ctrl.Submit(ctx)
	require.NoError(t, err)

	raw, err := json.Marshal(relations.updated[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"student_id":2,"subject_id":3,"approved":1}`, string(raw))
}

func TestEnrollmentLoadCoercesStringApproval(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"student_id":2,"subject_id":3,"approved":"0","student_fullname":"Ada","subject_name":"Math"},
			{"id":2,"student_id":2,"subject_id":4,"approved":"1","student_fullname":"Ada","subject_name":"Art"}]`)
	}))
	defer srv.Close()

	out := &bytes.Buffer{}
	ctrl := NewEnrollmentController(
		client.New[models.EnrollmentDetail](srv.URL, "students_subjects"),
		client.New[models.Student](srv.URL, "students"),
		client.New[models.Subject](srv.URL, "subjects"),
		out, nil,
	)
	require.NoError(t, ctrl.Load(context.Background()))
	rows := ctrl.Enrollments()
	require.Len(t, rows, 2)
	assert.False(t, bool(rows[0].Approved))
	assert.True(t, bool(rows[1].Approved))
	assert.Contains(t, out.String(), "Sí")
}

func TestPromptConfirm(t *testing.T) {
	out := &bytes.Buffer{}
	assert.True(t, PromptConfirm(strings.NewReader("y\n"), out)("Delete?"))
	assert.Contains(t, out.String(), "Delete? [y/N]")
	assert.False(t, PromptConfirm(strings.NewReader("\n"), out)("Delete?"))
	assert.False(t, PromptConfirm(strings.NewReader(""), out)("Delete?"))
}
