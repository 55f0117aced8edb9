package models

// Color is the derived standing of a student.
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorBlue   Color = "blue"
	ColorRed    Color = "red"
	ColorGray   Color = "gray"
)

// Colors lists every color in severity display order.
var Colors = []Color{ColorGreen, ColorBlue, ColorGray, ColorYellow, ColorRed}

// Valid reports whether c is a known color.
func (c Color) Valid() bool {
	switch c {
	case ColorGreen, ColorYellow, ColorBlue, ColorRed, ColorGray:
		return true
	}
	return false
}

// Excellent reports whether the color counts towards the excellent bucket.
func (c Color) Excellent() bool { return c == ColorGreen }

// NeedsAttention reports whether the color counts as an issue (poor bucket).
func (c Color) NeedsAttention() bool { return c == ColorRed || c == ColorYellow }

// Average reports whether the color counts towards the average bucket.
func (c Color) Average() bool { return c == ColorBlue || c == ColorGray }

// Evaluation carries the four scores that drive classification.
type Evaluation struct {
	BehaviorScore      int `json:"behaviorScore"`
	ParticipationScore int `json:"participationScore"`
	HomeworkScore      int `json:"homeworkScore"`
	Attendance         int `json:"attendance"`
}

// EvaluationResult is the outcome of a persisted evaluation.
type EvaluationResult struct {
	StudentID string `json:"studentId"`
	Color     Color  `json:"color"`
	Evaluation
}
