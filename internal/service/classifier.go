package service

import (
	"fmt"

	"github.com/noah-isme/classroom-api/internal/models"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

const (
	maxScore      = 10
	maxAttendance = 100

	excellentThreshold = 8
	passThreshold      = 6
)

// ClassifyEvaluation validates the four scores and maps them to a color.
// Rules are applied in order and the first match wins.
func ClassifyEvaluation(eval models.Evaluation) (models.Color, error) {
	if err := validateEvaluation(eval); err != nil {
		return "", err
	}

	b, p, h := eval.BehaviorScore, eval.ParticipationScore, eval.HomeworkScore
	switch {
	case b >= excellentThreshold && p >= excellentThreshold && h >= excellentThreshold:
		return models.ColorGreen, nil
	case b < passThreshold && p >= passThreshold:
		return models.ColorYellow, nil
	case p < passThreshold && b >= passThreshold:
		return models.ColorBlue, nil
	case b < passThreshold && p < passThreshold:
		return models.ColorRed, nil
	default:
		return models.ColorGray, nil
	}
}

func validateEvaluation(eval models.Evaluation) error {
	checks := []struct {
		field string
		value int
		max   int
	}{
		{"behaviorScore", eval.BehaviorScore, maxScore},
		{"participationScore", eval.ParticipationScore, maxScore},
		{"homeworkScore", eval.HomeworkScore, maxScore},
		{"attendance", eval.Attendance, maxAttendance},
	}
	for _, c := range checks {
		if c.value < 0 || c.value > c.max {
			msg := fmt.Sprintf("%s must be between 0 and %d", c.field, c.max)
			return appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, msg), map[string]string{c.field: msg})
		}
	}
	return nil
}
