package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/enrollment-api/internal/models"
	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
	"github.com/noah-isme/enrollment-api/pkg/export"
)

type enrollmentLister interface {
	List(ctx context.Context) ([]models.EnrollmentDetail, error)
}

// ExportFile is a rendered report ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the enrollment listing as a downloadable report.
type ExportService struct {
	enrollments enrollmentLister
	logger      *zap.Logger
	now         func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(enrollments enrollmentLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{enrollments: enrollments, logger: logger, now: time.Now}
}

// Enrollments renders every listed enrollment in the requested format.
func (s *ExportService) Enrollments(ctx context.Context, format string) (*ExportFile, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.WithCause(appErrors.ErrBadRequest, err.Error(), err)
	}
	rows, err := s.enrollments.List(ctx)
	if err != nil {
		return nil, err
	}

	renderer := export.RendererFor(f)
	payload, err := renderer.Render(EnrollmentDataset(rows))
	if err != nil {
		s.logger.Error("render enrollment export failed", zap.String("format", string(f)), zap.Error(err))
		return nil, appErrors.WithCause(appErrors.ErrInternal, "could not render export", err)
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("enrollments_%s.%s", s.now().UTC().Format("20060102_150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Payload:     payload,
	}, nil
}

// EnrollmentDataset lays out enrollments the way the listing table shows them.
func EnrollmentDataset(rows []models.EnrollmentDetail) export.Dataset {
	data := export.Dataset{
		Title:   "Enrollments",
		Headers: []string{"Student", "Subject", "Approved"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		data.Rows = append(data.Rows, []string{row.StudentFullName, row.SubjectName, row.Approved.Label()})
	}
	return data
}
