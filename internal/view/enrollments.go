package view

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/noah-isme/enrollment-api/internal/models"
)

// EnrollmentController drives the enrollment screen. Besides the relation
// list it loads the student and subject selection lists.
type EnrollmentController struct {
	crud[models.EnrollmentDetail]
	students Store[models.Student]
	subjects Store[models.Subject]

	Form           EnrollmentForm
	StudentOptions []Option
	SubjectOptions []Option
}

// NewEnrollmentController binds a controller to the three stores.
func NewEnrollmentController(store Store[models.EnrollmentDetail], students Store[models.Student], subjects Store[models.Subject], out io.Writer, confirm ConfirmFunc) *EnrollmentController {
	return &EnrollmentController{
		crud: crud[models.EnrollmentDetail]{
			store: store, out: out, confirm: confirm, render: RenderEnrollments, noun: "enrollment",
		},
		students: students,
		subjects: subjects,
	}
}

// LoadOptions fills the student and subject selection lists.
func (c *EnrollmentController) LoadOptions(ctx context.Context) error {
	students, err := c.students.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("load students: %w", err)
	}
	subjects, err := c.subjects.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("load subjects: %w", err)
	}
	c.StudentOptions = make([]Option, 0, len(students))
	for _, s := range students {
		c.StudentOptions = append(c.StudentOptions, Option{Value: s.ID, Label: s.FullName})
	}
	c.SubjectOptions = make([]Option, 0, len(subjects))
	for _, s := range subjects {
		c.SubjectOptions = append(c.SubjectOptions, Option{Value: s.ID, Label: s.Name})
	}
	return nil
}

// Load fetches and renders the relations. approved is decoded through
// models.Flag, so "0" is false.
func (c *EnrollmentController) Load(ctx context.Context) error { return c.load(ctx) }

// Enrollments returns the last loaded list.
func (c *EnrollmentController) Enrollments() []models.EnrollmentDetail { return c.rows }

// Edit fills the form from a loaded row.
func (c *EnrollmentController) Edit(id int64) error {
	for _, e := range c.rows {
		if e.ID == id {
			c.Form = EnrollmentForm{
				ID:        strconv.FormatInt(e.ID, 10),
				StudentID: strconv.FormatInt(e.StudentID, 10),
				SubjectID: strconv.FormatInt(e.SubjectID, 10),
				Approved:  bool(e.Approved),
			}
			return nil
		}
	}
	return ErrNotLoaded
}

// Submit creates or updates depending on the form id; approved is sent as 1/0.
func (c *EnrollmentController) Submit(ctx context.Context) (string, error) {
	payload, err := c.Form.payload()
	if err != nil {
		return "", err
	}
	msg, err := c.submit(ctx, payload.ID == nil, payload)
	if err != nil {
		return "", err
	}
	c.Form = EnrollmentForm{}
	return msg, nil
}

// Delete asks for confirmation, removes the enrollment and reloads.
func (c *EnrollmentController) Delete(ctx context.Context, id int64) (string, error) {
	return c.remove(ctx, id)
}

// Cancel drops the id so the next submit creates.
func (c *EnrollmentController) Cancel() { c.Form.ID = "" }
