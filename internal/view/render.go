package view

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/noah-isme/enrollment-api/internal/models"
)

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	return table
}

func actions(id int64) string {
	return fmt.Sprintf("edit %d | delete %d", id, id)
}

// RenderStudents writes the student table.
func RenderStudents(w io.Writer, students []models.Student) {
	table := newTable(w, []string{"ID", "Full name", "Email", "Age", "Actions"})
	for _, s := range students {
		table.Append([]string{strconv.FormatInt(s.ID, 10), s.FullName, s.Email, strconv.Itoa(s.Age), actions(s.ID)})
	}
	table.Render()
}

// RenderSubjects writes the subject table.
func RenderSubjects(w io.Writer, subjects []models.Subject) {
	table := newTable(w, []string{"ID", "Name", "Actions"})
	for _, s := range subjects {
		table.Append([]string{strconv.FormatInt(s.ID, 10), s.Name, actions(s.ID)})
	}
	table.Render()
}

// RenderEnrollments writes the enrollment table with approval as Sí/No.
func RenderEnrollments(w io.Writer, enrollments []models.EnrollmentDetail) {
	table := newTable(w, []string{"Student", "Subject", "Approved", "Actions"})
	for _, e := range enrollments {
		table.Append([]string{e.StudentFullName, e.SubjectName, e.Approved.Label(), actions(e.ID)})
	}
	table.Render()
}
