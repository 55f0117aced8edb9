package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/noah-isme/classroom-api/internal/models"
)

// StudentRequest is the payload for creating or replacing a student.
// Evaluation fields and color are written
// through the evaluate endpoint only.
type StudentRequest struct {
	Name     string          `json:"name" validate:"required"`
	Section  string          `json:"section" validate:"required"`
	Grade    *string         `json:"grade"`
	Badges   models.BadgeSet `json:"badges"`
	Behavior *string         `json:"behavior"`
}

// EvaluateRequest carries the four scores. All fields are mandatory.
type EvaluateRequest struct {
	BehaviorScore      *int `json:"behaviorScore" validate:"required,min=0,max=10"`
	ParticipationScore *int `json:"participationScore" validate:"required,min=0,max=10"`
	HomeworkScore      *int `json:"homeworkScore" validate:"required,min=0,max=10"`
	Attendance         *int `json:"attendance" validate:"required,min=0,max=100"`
}

// Evaluation converts the validated request into the domain value.
func (r EvaluateRequest) Evaluation() models.Evaluation {
	return models.Evaluation{
		BehaviorScore:      deref(r.BehaviorScore),
		ParticipationScore: deref(r.ParticipationScore),
		HomeworkScore:      deref(r.HomeworkScore),
		Attendance:         deref(r.Attendance),
	}
}

// EvaluateResponse is returned after a successful evaluation.
type EvaluateResponse struct {
	Message string       `json:"message"`
	Color   models.Color `json:"color"`
}

// OrderRequest updates the display order of a student.
type OrderRequest struct {
	OrderNumber OptionalInt `json:"orderNumber"`
}

// OrderResponse echoes the stored order number.
type OrderResponse struct {
	Message     string `json:"message"`
	OrderNumber *int   `json:"orderNumber"`
}

// OptionalInt distinguishes an absent field from an explicit null.
type OptionalInt struct {
	Set   bool
	Value *int
}

// UnmarshalJSON accepts an integer or null; anything else is rejected.
func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("orderNumber must be an integer or null")
	}
	o.Value = &v
	return nil
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
