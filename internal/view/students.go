package view

import (
	"context"
	"io"
	"strconv"

	"github.com/noah-isme/enrollment-api/internal/models"
)

// StudentController drives the student screen.
type StudentController struct {
	crud[models.Student]
	Form StudentForm
}

// NewStudentController binds a controller to store, rendering tables to out.
func NewStudentController(store Store[models.Student], out io.Writer, confirm ConfirmFunc) *StudentController {
	return &StudentController{crud: crud[models.Student]{
		store: store, out: out, confirm: confirm, render: RenderStudents, noun: "student",
	}}
}

// Load fetches and renders every student.
func (c *StudentController) Load(ctx context.Context) error { return c.load(ctx) }

// Students returns the last loaded list.
func (c *StudentController) Students() []models.Student { return c.rows }

// Edit fills the form from a loaded row.
func (c *StudentController) Edit(id int64) error {
	for _, s := range c.rows {
		if s.ID == id {
			c.Form = StudentForm{
				ID:       strconv.FormatInt(s.ID, 10),
				FullName: s.FullName,
				Email:    s.Email,
				Age:      strconv.Itoa(s.Age),
			}
			return nil
		}
	}
	return ErrNotLoaded
}

// Submit creates when the form has no id and updates otherwise, then clears
// the form and reloads.
func (c *StudentController) Submit(ctx context.Context) (string, error) {
	payload, err := c.Form.payload()
	if err != nil {
		return "", err
	}
	msg, err := c.submit(ctx, payload.ID == nil, payload)
	if err != nil {
		return "", err
	}
	c.Form = StudentForm{}
	return msg, nil
}

// Delete asks for confirmation, removes the student and reloads.
func (c *StudentController) Delete(ctx context.Context, id int64) (string, error) {
	return c.remove(ctx, id)
}

// Cancel drops the id so the next submit creates.
func (c *StudentController) Cancel() { c.Form.ID = "" }
