package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectRepositoryCRUD(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSubjectRepository(db, nil)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO subjects (name) VALUES ($1) RETURNING id")).
		WithArgs("Algebra").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM subjects WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "Algebra"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE subjects SET name = $1 WHERE id = $2")).
		WithArgs("Linear Algebra", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM subjects WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(ctx, "Algebra")
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)

	subject, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, subject)
	assert.Equal(t, "Algebra", subject.Name)

	updated, err := repo.Update(ctx, created.ID, "Linear Algebra")
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Updated)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.Deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSubjectRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM subjects")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Física").AddRow(2, "Química"))

	subjects, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Química", subjects[1].Name)
}
