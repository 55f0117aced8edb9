package models

import "time"

// Student represents a learner tracked by the classroom backend.
// Color is derived from the four evaluation fields and is only written
// together with them.
type Student struct {
	ID                 string     `db:"id" json:"id"`
	Name               string     `db:"name" json:"name"`
	Section            string     `db:"section" json:"section"`
	Grade              *string    `db:"grade" json:"grade"`
	Badges             BadgeSet   `db:"badges" json:"badges"`
	Behavior           *string    `db:"behavior" json:"behavior"`
	OrderNumber        *int       `db:"order_number" json:"orderNumber"`
	BehaviorScore      *int       `db:"behavior_score" json:"behaviorScore"`
	ParticipationScore *int       `db:"participation_score" json:"participationScore"`
	HomeworkScore      *int       `db:"homework_score" json:"homeworkScore"`
	Attendance         *int       `db:"attendance" json:"attendance"`
	Color              *Color     `db:"color" json:"color"`
	EvaluatedAt        *time.Time `db:"evaluated_at" json:"evaluatedAt,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updatedAt"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Section string
	Colors  []Color
	Search  string
}

// BehaviorNote returns the free-text behavior note or an empty string.
func (s Student) BehaviorNote() string {
	if s.Behavior == nil {
		return ""
	}
	return *s.Behavior
}
