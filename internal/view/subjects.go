package view

import (
	"context"
	"io"
	"strconv"

	"github.com/noah-isme/enrollment-api/internal/models"
)

// SubjectController drives the subject screen.
type SubjectController struct {
	crud[models.Subject]
	Form SubjectForm
}

// NewSubjectController binds a controller to store.
func NewSubjectController(store Store[models.Subject], out io.Writer, confirm ConfirmFunc) *SubjectController {
	return &SubjectController{crud: crud[models.Subject]{
		store: store, out: out, confirm: confirm, render: RenderSubjects, noun: "subject",
	}}
}

// Load fetches and renders every subject.
func (c *SubjectController) Load(ctx context.Context) error { return c.load(ctx) }

// Subjects returns the last loaded list.
func (c *SubjectController) Subjects() []models.Subject { return c.rows }

// Edit fills the form from a loaded row.
func (c *SubjectController) Edit(id int64) error {
	for _, s := range c.rows {
		if s.ID == id {
			c.Form = SubjectForm{ID: strconv.FormatInt(s.ID, 10), Name: s.Name}
			return nil
		}
	}
	return ErrNotLoaded
}

// Submit creates or updates depending on the form id.
func (c *SubjectController) Submit(ctx context.Context) (string, error) {
	payload, err := c.Form.payload()
	if err != nil {
		return "", err
	}
	msg, err := c.submit(ctx, payload.ID == nil, payload)
	if err != nil {
		return "", err
	}
	c.Form = SubjectForm{}
	return msg, nil
}

// Delete asks for confirmation, removes the subject and reloads.
func (c *SubjectController) Delete(ctx context.Context, id int64) (string, error) {
	return c.remove(ctx, id)
}

// Cancel drops the id so the next submit creates.
func (c *SubjectController) Cancel() { c.Form.ID = "" }
