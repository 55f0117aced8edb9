package models

import "time"

// ActivityKind distinguishes recent-activity sources.
type ActivityKind string

const (
	ActivityStudentAdded ActivityKind = "student"
	ActivitySectionAdded ActivityKind = "section"
)

// RecentEntity is a lightweight projection used by the recent activity feed.
type RecentEntity struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}
