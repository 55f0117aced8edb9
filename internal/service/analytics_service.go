package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/internal/models"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

// RecentLimit is the number of students and sections shown in the recent activity feed.
const RecentLimit = 5

type studentReader interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	ListRecent(ctx context.Context, limit int) ([]models.RecentEntity, error)
}

type recentSectionReader interface {
	ListRecent(ctx context.Context, limit int) ([]models.RecentEntity, error)
}

// AnalyticsService computes cohort summaries on demand. Cohort-wide
// aggregates are cached until the next student or section write.
type AnalyticsService struct {
	students  studentReader
	sections  recentSectionReader
	cache     *CacheService
	metrics   *MetricsService
	reminders []string
	logger    *zap.Logger
	now       func() time.Time
}

// NewAnalyticsService constructs an analytics service.
func NewAnalyticsService(students studentReader, sections recentSectionReader, cache *CacheService, metrics *MetricsService, reminders []string, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{
		students:  students,
		sections:  sections,
		cache:     cache,
		metrics:   metrics,
		reminders: reminders,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Overview returns cohort metrics. The boolean reports a cache hit.
func (s *AnalyticsService) Overview(ctx context.Context) (dto.OverviewMetrics, bool, error) {
	return cached(ctx, s, "overview", func(students []models.Student) dto.OverviewMetrics {
		return BuildOverview(students)
	})
}

// SectionPerformance returns one summary per section.
func (s *AnalyticsService) SectionPerformance(ctx context.Context) ([]dto.SectionPerformance, bool, error) {
	return cached(ctx, s, "section-performance", BuildSectionPerformance)
}

// Leaderboard ranks students, optionally within a single section.
func (s *AnalyticsService) Leaderboard(ctx context.Context, section string, limit int) ([]dto.LeaderboardEntry, bool, error) {
	section = strings.TrimSpace(section)
	key := fmt.Sprintf("leaderboard:%s:%d", section, limit)
	return cached(ctx, s, key, func(students []models.Student) []dto.LeaderboardEntry {
		if section != "" {
			filtered := make([]models.Student, 0, len(students))
			for _, st := range students {
				if st.Section == section {
					filtered = append(filtered, st)
				}
			}
			students = filtered
		}
		return BuildLeaderboard(students, limit)
	})
}

// BehaviorTrends returns monthly classification counts.
func (s *AnalyticsService) BehaviorTrends(ctx context.Context) ([]dto.BehaviorTrend, bool, error) {
	return cached(ctx, s, "behavior-trends", BuildBehaviorTrends)
}

// Notifications lists students needing attention followed by the configured reminders.
func (s *AnalyticsService) Notifications(ctx context.Context) ([]dto.Notification, error) {
	start := time.Now()
	students, err := s.students.List(ctx, models.StudentFilter{Colors: []models.Color{models.ColorRed, models.ColorYellow}})
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrStore, err, "failed to load notifications")
	}
	s.metrics.ObserveDBQuery("notifications", time.Since(start))
	return BuildNotifications(students, s.reminders), nil
}

// RecentActivities merges the latest students and sections.
func (s *AnalyticsService) RecentActivities(ctx context.Context) ([]dto.Activity, error) {
	students, err := s.students.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrStore, err, "failed to load recent students")
	}
	sections, err := s.sections.ListRecent(ctx, RecentLimit)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrStore, err, "failed to load recent sections")
	}
	return BuildRecentActivities(students, sections, s.now()), nil
}

func cached[T any](ctx context.Context, s *AnalyticsService, name string, build func([]models.Student) T) (T, bool, error) {
	generation, cacheable := s.cache.Generation(ctx, analyticsGenerationKey)
	key := fmt.Sprintf("analytics:%d:%s", generation, name)
	var value T
	if cacheable {
		if hit, err := s.cache.Get(ctx, key, &value); err == nil && hit {
			return value, true, nil
		}
	}

	start := time.Now()
	students, err := s.students.List(ctx, models.StudentFilter{})
	if err != nil {
		var zero T
		return zero, false, appErrors.WrapAs(appErrors.ErrStore, err, "failed to load students for "+name)
	}
	s.metrics.ObserveDBQuery("analytics_"+strings.SplitN(name, ":", 2)[0], time.Since(start))

	value = build(students)
	if cacheable {
		if err := s.cache.Set(ctx, key, value, 0); err != nil {
			s.logger.Debug("analytics not cached", zap.String("key", key))
		}
	}
	return value, false, nil
}
