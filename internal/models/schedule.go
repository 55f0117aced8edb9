package models

import "time"

// Schedule is a timetable entry. Section refers to a section by name and
// is not checked against the sections table; overlapping slots are allowed.
type Schedule struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Time      string    `db:"time" json:"time"`
	Section   string    `db:"section" json:"section"`
	Teacher   string    `db:"teacher" json:"teacher"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
