package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/internal/models"
)

const (
	maxStars        = 5
	pointsPerStar   = 6
	trendMonthKey   = "2006-01"
	reminderType    = "تذكير حصة"
	notificationNow = "الآن"

	urgentColorClass   = "bg-red-100 text-red-800"
	upcomingColorClass = "bg-orange-100 text-orange-800"
)

// studentPoints sums the three 0-10 scores; missing scores count as zero.
func studentPoints(s models.Student) int {
	return intValue(s.BehaviorScore) + intValue(s.ParticipationScore) + intValue(s.HomeworkScore)
}

// studentPercentage is the mean of the present 0-10 scores scaled to 100.
func studentPercentage(s models.Student) (float64, bool) {
	var sum, n int
	for _, v := range []*int{s.BehaviorScore, s.ParticipationScore, s.HomeworkScore} {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n) * 10, true
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.n++
}

func (m *mean) addInt(v *int, scale float64) {
	if v != nil {
		m.add(float64(*v) * scale)
	}
}

func (m mean) value() float64 {
	if m.n == 0 {
		return 0
	}
	return round1(m.sum / float64(m.n))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// BuildOverview summarises the whole cohort.
func BuildOverview(students []models.Student) dto.OverviewMetrics {
	var (
		metrics                                   dto.OverviewMetrics
		grade, attendance, homework, behaviorMean mean
	)
	metrics.TotalStudents = len(students)
	for _, s := range students {
		switch {
		case s.Color == nil:
			metrics.UnevaluatedStudents++
		case s.Color.Excellent():
			metrics.ExcellentStudents++
		case s.Color.NeedsAttention():
			metrics.PoorStudents++
		case s.Color.Average():
			metrics.AverageStudents++
		}
		if pct, ok := studentPercentage(s); ok {
			grade.add(pct)
		}
		attendance.addInt(s.Attendance, 1)
		homework.addInt(s.HomeworkScore, 10)
		behaviorMean.addInt(s.BehaviorScore, 1)
	}
	metrics.AverageGrade = grade.value()
	metrics.AttendanceRate = attendance.value()
	metrics.HomeworkCompletionRate = homework.value()
	metrics.BehaviorScore = behaviorMean.value()
	return metrics
}

// BuildSectionPerformance groups students by section, ordered by section name.
func BuildSectionPerformance(students []models.Student) []dto.SectionPerformance {
	type acc struct {
		perf    dto.SectionPerformance
		average mean
	}
	bySection := make(map[string]*acc)
	for _, s := range students {
		a, ok := bySection[s.Section]
		if !ok {
			a = &acc{perf: dto.SectionPerformance{Section: s.Section, Colors: make(map[models.Color]int)}}
			bySection[s.Section] = a
		}
		a.perf.Students++
		if s.Color != nil {
			a.perf.Colors[*s.Color]++
			if s.Color.Excellent() {
				a.perf.Excellent++
			}
			if s.Color.NeedsAttention() {
				a.perf.Poor++
			}
		}
		if pct, ok := studentPercentage(s); ok {
			a.average.add(pct)
		}
	}

	result := make([]dto.SectionPerformance, 0, len(bySection))
	for _, a := range bySection {
		a.perf.Average = a.average.value()
		result = append(result, a.perf)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Section < result[j].Section })
	return result
}

// BuildLeaderboard ranks students by total points, then name. limit <= 0
// keeps every student.
func BuildLeaderboard(students []models.Student, limit int) []dto.LeaderboardEntry {
	ranked := make([]models.Student, len(students))
	copy(ranked, students)
	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := studentPoints(ranked[i]), studentPoints(ranked[j])
		if pi != pj {
			return pi > pj
		}
		return ranked[i].Name < ranked[j].Name
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	entries := make([]dto.LeaderboardEntry, 0, len(ranked))
	for i, s := range ranked {
		points := studentPoints(s)
		stars := math.Min(math.Round(float64(points)/pointsPerStar), maxStars)
		badges := s.Badges
		if badges == nil {
			badges = models.BadgeSet{}
		}
		entries = append(entries, dto.LeaderboardEntry{
			Rank:                i + 1,
			StudentID:           s.ID,
			Name:                s.Name,
			Section:             s.Section,
			TotalPoints:         float64(points),
			ParticipationPoints: float64(intValue(s.ParticipationScore)),
			BehaviorPoints:      float64(intValue(s.BehaviorScore)),
			HomeworkPoints:      float64(intValue(s.HomeworkScore)),
			Badges:              badges,
			StarRating:          stars,
		})
	}
	return entries
}

// BuildBehaviorTrends counts evaluated students per month of their last
// evaluation, ascending by month.
func BuildBehaviorTrends(students []models.Student) []dto.BehaviorTrend {
	byMonth := make(map[string]*dto.BehaviorTrend)
	for _, s := range students {
		if s.Color == nil || s.EvaluatedAt == nil {
			continue
		}
		month := s.EvaluatedAt.UTC().Format(trendMonthKey)
		trend, ok := byMonth[month]
		if !ok {
			trend = &dto.BehaviorTrend{Month: month}
			byMonth[month] = trend
		}
		switch {
		case s.Color.Excellent():
			trend.Excellent++
		case s.Color.Average():
			trend.Good++
		case s.Color.NeedsAttention():
			trend.Poor++
		}
	}

	trends := make([]dto.BehaviorTrend, 0, len(byMonth))
	for _, t := range byMonth {
		trends = append(trends, *t)
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Month < trends[j].Month })
	return trends
}

// BuildNotifications turns red and yellow students into alerts, red first,
// followed by the static reminders.
func BuildNotifications(students []models.Student, reminders []string) []dto.Notification {
	notifications := make([]dto.Notification, 0, len(students)+len(reminders))
	for _, severity := range []models.Color{models.ColorRed, models.ColorYellow} {
		for _, s := range students {
			if s.Color == nil || *s.Color != severity {
				continue
			}
			notifications = append(notifications, studentNotification(s))
		}
	}
	for _, r := range reminders {
		if strings.TrimSpace(r) == "" {
			continue
		}
		notifications = append(notifications, dto.Notification{
			Type:     reminderType,
			Message:  r,
			Time:     notificationNow,
			Priority: "قريباً",
			Severity: dto.PriorityUpcoming,
			Color:    upcomingColorClass,
		})
	}
	return notifications
}

func studentNotification(s models.Student) dto.Notification {
	n := dto.Notification{StudentID: s.ID, Time: notificationNow}
	var phrase string
	if *s.Color == models.ColorRed {
		phrase = "يحتاج إلى متابعة سلوكية خاصة"
		n.Type = "تنبيه سلوكي"
		n.Priority = "عاجل"
		n.Severity = dto.PriorityUrgent
		n.Color = urgentColorClass
	} else {
		phrase = "قد يحتاج إلى انتباه"
		n.Type = "تنبيه"
		n.Priority = "قريباً"
		n.Severity = dto.PriorityUpcoming
		n.Color = upcomingColorClass
	}
	n.Message = fmt.Sprintf("%s من قسم %s %s", s.Name, s.Section, phrase)
	if note := strings.TrimSpace(s.BehaviorNote()); note != "" {
		n.Message += ": " + note
	}
	return n
}

// BuildRecentActivities merges recently added students and sections, newest first.
func BuildRecentActivities(students, sections []models.RecentEntity, now time.Time) []dto.Activity {
	activities := make([]dto.Activity, 0, len(students)+len(sections))
	for _, s := range students {
		activities = append(activities, dto.Activity{
			Kind:      string(models.ActivityStudentAdded),
			ID:        s.ID,
			Action:    "تم إضافة تلميذ جديد: " + s.Name,
			Time:      relativeTime(now, s.CreatedAt),
			CreatedAt: s.CreatedAt,
		})
	}
	for _, s := range sections {
		activities = append(activities, dto.Activity{
			Kind:      string(models.ActivitySectionAdded),
			ID:        s.ID,
			Action:    "تم إضافة قسم جديد: " + s.Name,
			Time:      relativeTime(now, s.CreatedAt),
			CreatedAt: s.CreatedAt,
		})
	}
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
	return activities
}

func relativeTime(now, at time.Time) string {
	d := now.Sub(at)
	switch {
	case d < time.Minute:
		return notificationNow
	case d < time.Hour:
		return fmt.Sprintf("منذ %d دقيقة", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("منذ %d ساعة", int(d/time.Hour))
	default:
		return fmt.Sprintf("منذ %d يوم", int(d/(24*time.Hour)))
	}
}
