package dto

// SectionRequest creates a section. Counters are computed, not accepted.
type SectionRequest struct {
	Name  string  `json:"name" validate:"required"`
	Grade *string `json:"grade"`
}

// ScheduleRequest creates a timetable entry.
type ScheduleRequest struct {
	Name    string `json:"name" validate:"required"`
	Time    string `json:"time" validate:"required"`
	Section string `json:"section" validate:"required"`
	Teacher string `json:"teacher" validate:"required"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
