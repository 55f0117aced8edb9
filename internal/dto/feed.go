package dto

import "time"

// NotificationPriority orders notifications; urgent entries come first.
type NotificationPriority string

const (
	PriorityUrgent   NotificationPriority = "urgent"
	PriorityUpcoming NotificationPriority = "upcoming"
)

// Notification is one entry of the notifications feed. Text fields are
// rendered in Arabic for the front-end.
type Notification struct {
	StudentID string               `json:"studentId,omitempty"`
	Type      string               `json:"type"`
	Message   string               `json:"message"`
	Time      string               `json:"time"`
	Priority  string               `json:"priority"`
	Severity  NotificationPriority `json:"severity"`
	Color     string               `json:"color"`
}

// Activity is one entry of the recent activity feed.
type Activity struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"createdAt"`
}

// ImportResult reports the outcome of a spreadsheet upload.
type ImportResult struct {
	Message       string `json:"message"`
	StudentsAdded int    `json:"students_added"`
	RowsSkipped   int    `json:"rows_skipped"`
	Section       string `json:"section"`
}
