package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollment-api/internal/dto"
	"github.com/noah-isme/enrollment-api/internal/models"
	"github.com/noah-isme/enrollment-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, req dto.CreateStudentRequest) (models.InsertResult, error)
	Update(ctx context.Context, req dto.UpdateStudentRequest) (models.UpdateResult, error)
	Delete(ctx context.Context, req dto.DeleteRequest) (models.DeleteResult, error)
}

type studentSubjectLister interface {
	SubjectsByStudent(ctx context.Context, studentID int64) ([]models.StudentSubject, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students    studentService
	enrollments studentSubjectLister
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService, enrollments studentSubjectLister) *StudentHandler {
	return &StudentHandler{students: students, enrollments: enrollments}
}

// Get godoc
// @Summary List students or fetch one
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.IDQuery false "Optional id"
// @Success 200 {array} models.Student
// @Failure 500 {object} response.ErrorBody
// @Router /students [get]
func (h *StudentHandler) Get(c *gin.Context) {
	var q dto.IDQuery
	if !bindBody(c, &q) || !mergeID(c, &q.ID) {
		return
	}
	if q.ID == nil {
		students, err := h.students.List(c.Request.Context())
		if err != nil {
			response.Failure(c, err)
			return
		}
		response.OK(c, students)
		return
	}
	student, err := h.students.Get(c.Request.Context(), q.ID.Int64())
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.OK(c, student)
}

// Post godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 200 {object} response.MessageBody
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /students [post]
func (h *StudentHandler) Post(c *gin.Context) {
	var req dto.CreateStudentRequest
	if !bindBody(c, &req) {
		return
	}
	if _, err := h.students.Create(c.Request.Context(), req); err != nil {
		response.Failure(c, err)
		return
	}
	response.Message(c, "student added")
}

// Put godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.UpdateStudentRequest true "Student payload"
// @Success 200 {object} response.MessageBody
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /students [put]
func (h *StudentHandler) Put(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if !bindBody(c, &req) || !mergeID(c, &req.ID) {
		return
	}
	if _, err := h.students.Update(c.Request.Context(), req); err != nil {
		response.Failure(c, err)
		return
	}
	response.Message(c, "student updated")
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.DeleteRequest true "Student id"
// @Success 200 {object} response.MessageBody
// @Failure 500 {object} response.ErrorBody
// @Router /students [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	var req dto.DeleteRequest
	if !bindBody(c, &req) || !mergeID(c, &req.ID) {
		return
	}
	if _, err := h.students.Delete(c.Request.Context(), req); err != nil {
		response.Failure(c, err)
		return
	}
	response.Message(c, "student deleted")
}

// Subjects godoc
// @Summary List the subjects of a student
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {array} models.StudentSubject
// @Router /students/{id}/subjects [get]
func (h *StudentHandler) Subjects(c *gin.Context) {
	var id *models.LooseInt
	if !mergeID(c, &id) {
		return
	}
	if id == nil {
		response.Failure(c, errMissingID)
		return
	}
	subjects, err := h.enrollments.SubjectsByStudent(c.Request.Context(), id.Int64())
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.OK(c, subjects)
}
