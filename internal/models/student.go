package models

// Student represents a learner that can be enrolled in subjects.
type Student struct {
	ID       int64  `db:"id" json:"id"`
	FullName string `db:"fullname" json:"fullname"`
	Email    string `db:"email" json:"email"`
	Age      int    `db:"age" json:"age"`
}
