package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enrollment-api/internal/models"
)

type stubLister struct {
	rows []models.EnrollmentDetail
	err  error
}

func (s stubLister) List(ctx context.Context) ([]models.EnrollmentDetail, error) {
	return s.rows, s.err
}

func sampleEnrollments() []models.EnrollmentDetail {
	return []models.EnrollmentDetail{
		{Enrollment: models.Enrollment{ID: 1, StudentID: 1, SubjectID: 1, Approved: true}, StudentFullName: "Ada Lovelace", SubjectName: "Math"},
		{Enrollment: models.Enrollment{ID: 2, StudentID: 2, SubjectID: 1, Approved: false}, StudentFullName: "Alan Turing", SubjectName: "Math"},
	}
}

func TestEnrollmentDatasetLabels(t *testing.T) {
	data := EnrollmentDataset(sampleEnrollments())

	assert.Equal(t, []string{"Student", "Subject", "Approved"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"Ada Lovelace", "Math", "Sí"}, data.Rows[0])
	assert.Equal(t, "No", data.Rows[1][2])
}

func TestExportServiceCSV(t *testing.T) {
	svc := NewExportService(stubLister{rows: sampleEnrollments()}, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }

	file, err := svc.Enrollments(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "enrollments_20240301_100000.csv", file.Filename)
	assert.True(t, strings.HasPrefix(file.ContentType, "text/csv"))
	assert.Contains(t, string(file.Payload), "Alan Turing,Math,No")
}

func TestExportServicePDFAndXLSX(t *testing.T) {
	svc := NewExportService(stubLister{rows: sampleEnrollments()}, nil)

	pdf, err := svc.Enrollments(context.Background(), "pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf.Payload), "%PDF"))

	xlsx, err := svc.Enrollments(context.Background(), "XLSX")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(xlsx.Filename, ".xlsx"))
	assert.NotEmpty(t, xlsx.Payload)
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(stubLister{}, nil)

	_, err := svc.Enrollments(context.Background(), "docx")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestExportServicePropagatesListError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewExportService(stubLister{err: boom}, nil)

	_, err := svc.Enrollments(context.Background(), "csv")
	assert.ErrorIs(t, err, boom)
}
