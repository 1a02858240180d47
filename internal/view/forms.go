package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/enrollment-api/internal/models"
)

// StudentForm mirrors the student edit form. An empty ID means create.
type StudentForm struct {
	ID       string
	FullName string
	Email    string
	Age      string
}

// SubjectForm mirrors the subject edit form.
type SubjectForm struct {
	ID   string
	Name string
}

// EnrollmentForm mirrors the enrollment form: two selections and a checkbox.
type EnrollmentForm struct {
	ID        string
	StudentID string
	SubjectID string
	Approved  bool
}

// Option is one entry of a selection list.
type Option struct {
	Value int64
	Label string
}

type studentPayload struct {
	ID       *int64 `json:"id,omitempty"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Age      int    `json:"age"`
}

type subjectPayload struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name"`
}

type enrollmentPayload struct {
	ID        *int64      `json:"id,omitempty"`
	StudentID int64       `json:"student_id"`
	SubjectID int64       `json:"subject_id"`
	Approved  models.Flag `json:"approved"`
}

func optionalID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q", raw)
	}
	return &id, nil
}

func requiredInt(field, raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return v, nil
}

func (f StudentForm) payload() (studentPayload, error) {
	id, err := optionalID(f.ID)
	if err != nil {
		return studentPayload{}, err
	}
	age, err := requiredInt("age", f.Age)
	if err != nil {
		return studentPayload{}, err
	}
	return studentPayload{ID: id, FullName: strings.TrimSpace(f.FullName), Email: strings.TrimSpace(f.Email), Age: int(age)}, nil
}

func (f SubjectForm) payload() (subjectPayload, error) {
	id, err := optionalID(f.ID)
	if err != nil {
		return subjectPayload{}, err
	}
	return subjectPayload{ID: id, Name: strings.TrimSpace(f.Name)}, nil
}

func (f EnrollmentForm) payload() (enrollmentPayload, error) {
	id, err := optionalID(f.ID)
	if err != nil {
		return enrollmentPayload{}, err
	}
	studentID, err := requiredInt("student", f.StudentID)
	if err != nil {
		return enrollmentPayload{}, err
	}
	subjectID, err := requiredInt("subject", f.SubjectID)
	if err != nil {
		return enrollmentPayload{}, err
	}
	return enrollmentPayload{ID: id, StudentID: studentID, SubjectID: subjectID, Approved: models.Flag(f.Approved)}, nil
}
