package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollment-api/internal/dto"
	"github.com/noah-isme/enrollment-api/internal/models"
	"github.com/noah-isme/enrollment-api/internal/service"
	"github.com/noah-isme/enrollment-api/pkg/response"
)

type enrollmentService interface {
	List(ctx context.Context) ([]models.EnrollmentDetail, error)
	Get(ctx context.Context, id int64) (*models.Enrollment, error)
	Create(ctx context.Context, req dto.CreateEnrollmentRequest) (models.InsertResult, error)
	Update(ctx context.Context, req dto.UpdateEnrollmentRequest) (models.UpdateResult, error)
	Delete(ctx context.Context, req dto.DeleteRequest) (models.DeleteResult, error)
}

type enrollmentExporter interface {
	Enrollments(ctx context.Context, format string) (*service.ExportFile, error)
}

// EnrollmentHandler exposes the students_subjects endpoints.
type EnrollmentHandler struct {
	enrollments enrollmentService
	exporter    enrollmentExporter
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments enrollmentService, exporter enrollmentExporter) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, exporter: exporter}
}

// Get godoc
// @Summary List enrollments or fetch one
// @Description The listing joins students and subjects; enrollments whose student or subject was deleted are omitted.
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body dto.IDQuery false "Optional id"
// @Success 200 {array} models.EnrollmentDetail
// @Failure 500 {object} response.ErrorBody
// @Router /students_subjects [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	var q dto.IDQuery
	if !bindBody(c, &q) || !mergeID(c, &q.ID) {
		return
	}
	if q.ID == nil {
		enrollments, err := h.enrollments.List(c.Request.Context())
		if err != nil {
			response.Failure(c, err)
			return
		}
		response.OK(c, enrollments)
		return
	}
	enrollment, err := h.enrollments.Get(c.Request.Context(), q.ID.Int64())
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.OK(c, enrollment)
}

// Post godoc
// @Summary Enroll a student in a subject
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body dto.CreateEnrollmentRequest true "Enrollment payload"
// @Success 200 {object} response.MessageBody
// @Failure 500 {object} response.ErrorBody
// @Router /students_subjects [post]
func (h *EnrollmentHandler) Post(c *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if !bindBody(c, &req) {
		return
	}
	if _, err := h.enrollments.Create(c.Request.Context(), req); err != nil {
		response.Failure(c, err)
		return
	}
	response.Message(c, "enrollment created")
}

// Put godoc
// @Summary Update enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body dto.UpdateEnrollmentRequest true "Enrollment payload"
// @Success 200 {object} response.MessageBody
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /students_subjects [put]
func (h *EnrollmentHandler) Put(c *gin.Context) {
	var req dto.UpdateEnrollmentRequest
	if !bindBody(c, &req) || !mergeID(c, &req.ID) {
		return
	}
	if _, err := h.enrollments.Update(c.Request.Context(), req); err != nil {
		response.Failure(c, err)
		return
	}
	response.Message(c, "enrollment updated")
}

// Delete godoc
// @Summary Delete enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body dto.DeleteRequest true "Enrollment id"
// @Success 200 {object} response.MessageBody
// @Failure 500 {object} response.ErrorBody
// @Router /students_subjects [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	var req dto.DeleteRequest
	if !bindBody(c, &req) || !mergeID(c, &req.ID) {
		return
	}
	if _, err := h.enrollments.Delete(c.Request.Context(), req); err != nil {
		response.Failure(c, err)
		return
	}
	response.Message(c, "enrollment deleted")
}

// Export godoc
// @Summary Download the enrollment report
// @Tags Enrollments
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Router /students_subjects/export [get]
func (h *EnrollmentHandler) Export(c *gin.Context) {
	file, err := h.exporter.Enrollments(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
