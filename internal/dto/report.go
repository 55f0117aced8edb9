package dto

import (
	"encoding/json"

	"github.com/noah-isme/classroom-api/internal/models"
)

// ReportType tags the payload shape of a report request.
type ReportType string

const (
	ReportLeaderboard        ReportType = "leaderboard"
	ReportOverview           ReportType = "overview"
	ReportSectionPerformance ReportType = "sectionPerformance"
	ReportBehaviorTrends     ReportType = "behaviorTrends"
)

// ReportRequest is the body of POST /api/generate-report. Data is decoded
// according to ReportType.
type ReportRequest struct {
	ReportType ReportType      `json:"reportType" validate:"required"`
	Data       json.RawMessage `json:"data" validate:"required"`
}

// LeaderboardEntry is one ranked student.
type LeaderboardEntry struct {
	Rank                int             `json:"rank"`
	StudentID           string          `json:"studentId,omitempty"`
	Name                string          `json:"name"`
	Section             string          `json:"section"`
	TotalPoints         float64         `json:"totalPoints"`
	ParticipationPoints float64         `json:"participationPoints"`
	BehaviorPoints      float64         `json:"behaviorPoints"`
	HomeworkPoints      float64         `json:"homeworkPoints"`
	Badges              models.BadgeSet `json:"badges"`
	StarRating          float64         `json:"starRating"`
}

// OverviewMetrics summarises the whole cohort.
type OverviewMetrics struct {
	TotalStudents          int     `json:"totalStudents"`
	ExcellentStudents      int     `json:"excellentStudents"`
	AverageStudents        int     `json:"averageStudents"`
	PoorStudents           int     `json:"poorStudents"`
	UnevaluatedStudents    int     `json:"unevaluatedStudents"`
	AverageGrade           float64 `json:"averageGrade"`
	AttendanceRate         float64 `json:"attendanceRate"`
	HomeworkCompletionRate float64 `json:"homeworkCompletionRate"`
	BehaviorScore          float64 `json:"behaviorScore"`
}

// SectionPerformance summarises one section.
type SectionPerformance struct {
	Section   string               `json:"section"`
	Average   float64              `json:"average"`
	Students  int                  `json:"students"`
	Excellent int                  `json:"excellent"`
	Poor      int                  `json:"poor"`
	Colors    map[models.Color]int `json:"colors,omitempty"`
}

// BehaviorTrend is one month of classification counts.
type BehaviorTrend struct {
	Month     string `json:"month"`
	Excellent int    `json:"excellent"`
	Good      int    `json:"good"`
	Poor      int    `json:"poor"`
}

// CertificateRequest is the body of POST /generate-certificate.
type CertificateRequest struct {
	StudentName string `json:"student_name" validate:"required"`
	BadgeName   string `json:"badge_name" validate:"required"`
	DateAwarded string `json:"date_awarded" validate:"required"`
}
