package models

// Enrollment is a row of students_subjects: a student taking a subject.
type Enrollment struct {
	ID        int64 `db:"id" json:"id"`
	StudentID int64 `db:"student_id" json:"student_id"`
	SubjectID int64 `db:"subject_id" json:"subject_id"`
	Approved  Flag  `db:"approved" json:"approved"`
}

// EnrollmentDetail enriches Enrollment with the student and subject names
// projected by the joined listing.
type EnrollmentDetail struct {
	Enrollment
	StudentFullName string `db:"student_fullname" json:"student_fullname"`
	SubjectName     string `db:"subject_name" json:"subject_name"`
}

// StudentSubject is one subject taken by a given student.
type StudentSubject struct {
	SubjectID int64  `db:"subject_id" json:"subject_id"`
	Name      string `db:"name" json:"name"`
	Approved  Flag   `db:"approved" json:"approved"`
}
