package models

import "time"

// Section is a named grouping of students. The counters are computed from
// the students table whenever sections are read.
type Section struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Grade     *string   `db:"grade" json:"grade"`
	Students  int       `db:"students" json:"students"`
	Excellent int       `db:"excellent" json:"excellent"`
	Issues    int       `db:"issues" json:"issues"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
