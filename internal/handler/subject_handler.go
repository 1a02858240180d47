package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollment-api/internal/dto"
	"github.com/noah-isme/enrollment-api/internal/models"
	"github.com/noah-isme/enrollment-api/pkg/response"
)

type subjectService interface {
	List(ctx context.Context) ([]models.Subject, error)
	Get(ctx context.Context, id int64) (*models.Subject, error)
	Create(ctx context.Context, req dto.CreateSubjectRequest) (models.InsertResult, error)
	Update(ctx context.Context, req dto.UpdateSubjectRequest) (models.UpdateResult, error)
	Delete(ctx context.Context, req dto.DeleteRequest) (models.DeleteResult, error)
}

// SubjectHandler exposes subject endpoints.
type SubjectHandler struct {
	subjects subjectService
}

// NewSubjectHandler constructs SubjectHandler.
func NewSubjectHandler(subjects subjectService) *SubjectHandler {
	return &SubjectHandler{subjects: subjects}
}

// Get godoc
// @Summary List subjects or fetch one
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body dto.IDQuery false "Optional id"
// @Success 200 {array} models.Subject
// @Failure 500 {object} response.ErrorBody
// @Router /subjects [get]
func (h *SubjectHandler) Get(c *gin.Context) {
	var q dto.IDQuery
	if !bindBody(c, &q) || !mergeID(c, &q.ID) {
		return
	}
	if q.ID == nil {
		subjects, err := h.subjects.List(c.Request.Context())
		if err != nil {
			response.Failure(c, err)
			return
		}
		response.OK(c, subjects)
		return
	}
	subject, err := h.subjects.Get(c.Request.Context(), q.ID.Int64())
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.OK(c, subject)
}

// Post godoc
// @Summary Create subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubjectRequest true "Subject payload"
// @Success 200 {object} response.MessageBody
// @Failure 500 {object} response.ErrorBody
// @Router /subjects [post]
func (h *SubjectHandler) Post(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if !bindBody(c, &req) {
		return
	}
	if _, err := h.subjects.Create(c.Request.Context(), req); err != nil {
		response.Failure(c, err)
		return
	}
	response.Message(c, "subject created")
}

// Put godoc
// @Summary Rename subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body dto.UpdateSubjectRequest true "Subject payload"
// @Success 200 {object} response.MessageBody
// @Failure 500 {object} response.ErrorBody
// @Router /subjects [put]
func (h *SubjectHandler) Put(c *gin.Context) {
	var req dto.UpdateSubjectRequest
	if !bindBody(c, &req) || !mergeID(c, &req.ID) {
		return
	}
	if _, err := h.subjects.Update(c.Request.Context(), req); err != nil {
		response.Failure(c, err)
		return
	}
	response.Message(c, "subject updated")
}

// Delete godoc
// @Summary Delete subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body dto.DeleteRequest true "Subject id"
// @Success 200 {object} response.MessageBody
// @Failure 500 {object} response.ErrorBody
// @Router /subjects [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	var req dto.DeleteRequest
	if !bindBody(c, &req) || !mergeID(c, &req.ID) {
		return
	}
	if _, err := h.subjects.Delete(c.Request.Context(), req); err != nil {
		response.Failure(c, err)
		return
	}
	response.Message(c, "subject deleted")
}
