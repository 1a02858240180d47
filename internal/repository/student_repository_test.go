package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

type recordingObserver struct {
	labels []string
}

func (o *recordingObserver) ObserveDBQuery(label string, _ time.Duration) {
	o.labels = append(o.labels, label)
}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	observer := &recordingObserver{}
	repo := NewStudentRepository(db, observer)

	rows := sqlmock.NewRows([]string{"id", "fullname", "email", "age"}).
		AddRow(1, "Ana Gomez", "ana@x.com", 21).
		AddRow(2, "Luis Perez", "luis@x.com", 23)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, fullname, email, age FROM students")).WillReturnRows(rows)

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Ana Gomez", students[0].FullName)
	assert.Equal(t, 23, students[1].Age)
	assert.Equal(t, []string{"students.list"}, observer.labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListEmptyIsNotNil(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectQuery("SELECT id, fullname, email, age FROM students").
		WillReturnRows(sqlmock.NewRows([]string{"id", "fullname", "email", "age"}))

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestStudentRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, fullname, email, age FROM students WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fullname", "email", "age"}))

	student, err := repo.FindByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, student)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO students (fullname, email, age) VALUES ($1, $2, $3) RETURNING id")).
		WithArgs("Ana Gomez", "ana@x.com", 21).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	res, err := repo.Create(context.Background(), "Ana Gomez", "ana@x.com", 21)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Inserted)
	assert.Equal(t, int64(7), res.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateMissingRow(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET fullname = $1, email = $2, age = $3 WHERE id = $4")).
		WithArgs("Ana", "ana@x.com", 22, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	res, err := repo.Update(context.Background(), 404, "Ana", "ana@x.com", 22)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := repo.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Deleted)
}

func TestStudentRepositoryDeleteError(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db, nil)

	mock.ExpectExec("DELETE FROM students").WillReturnError(errors.New("connection reset"))

	_, err := repo.Delete(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete student")
}
