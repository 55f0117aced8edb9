package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-api/internal/dto"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
	"github.com/noah-isme/classroom-api/pkg/response"
)

type analyticsService interface {
	Overview(ctx context.Context) (dto.OverviewMetrics, bool, error)
	SectionPerformance(ctx context.Context) ([]dto.SectionPerformance, bool, error)
	Leaderboard(ctx context.Context, section string, limit int) ([]dto.LeaderboardEntry, bool, error)
	BehaviorTrends(ctx context.Context) ([]dto.BehaviorTrend, bool, error)
	Notifications(ctx context.Context) ([]dto.Notification, error)
	RecentActivities(ctx context.Context) ([]dto.Activity, error)
}

// AnalyticsHandler exposes the aggregation endpoints.
type AnalyticsHandler struct {
	analytics analyticsService
}

// NewAnalyticsHandler constructs AnalyticsHandler.
func NewAnalyticsHandler(analytics analyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Overview godoc
// @Summary Cohort overview metrics
// @Tags Analytics
// @Produce json
// @Success 200 {object} dto.OverviewMetrics
// @Router /analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	metrics, hit, err := h.analytics.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	setCacheHeader(c, hit)
	response.JSON(c, http.StatusOK, metrics)
}

// SectionPerformance godoc
// @Summary Per-section performance
// @Tags Analytics
// @Produce json
// @Success 200 {array} dto.SectionPerformance
// @Router /analytics/section-performance [get]
func (h *AnalyticsHandler) SectionPerformance(c *gin.Context) {
	sections, hit, err := h.analytics.SectionPerformance(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	setCacheHeader(c, hit)
	response.JSON(c, http.StatusOK, sections)
}

// Leaderboard godoc
// @Summary Students ranked by total points
// @Tags Analytics
// @Produce json
// @Param section query string false "Restrict to one section"
// @Param limit query int false "Maximum entries"
// @Success 200 {array} dto.LeaderboardEntry
// @Router /analytics/leaderboard [get]
func (h *AnalyticsHandler) Leaderboard(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			response.Error(c, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "invalid limit"), map[string]string{"limit": "limit must be a non-negative integer"}))
			return
		}
		limit = v
	}
	entries, hit, err := h.analytics.Leaderboard(c.Request.Context(), c.Query("section"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	setCacheHeader(c, hit)
	response.JSON(c, http.StatusOK, entries)
}

// BehaviorTrends godoc
// @Summary Monthly behavior classification counts
// @Tags Analytics
// @Produce json
// @Success 200 {array} dto.BehaviorTrend
// @Router /analytics/behavior-trends [get]
func (h *AnalyticsHandler) BehaviorTrends(c *gin.Context) {
	trends, hit, err := h.analytics.BehaviorTrends(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	setCacheHeader(c, hit)
	response.JSON(c, http.StatusOK, trends)
}

// Notifications godoc
// @Summary Students needing attention and class reminders
// @Tags Analytics
// @Produce json
// @Success 200 {array} dto.Notification
// @Router /notifications [get]
func (h *AnalyticsHandler) Notifications(c *gin.Context) {
	notifications, err := h.analytics.Notifications(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notifications)
}

// RecentActivities godoc
// @Summary Recently added students and sections
// @Tags Analytics
// @Produce json
// @Success 200 {array} dto.Activity
// @Router /recent-activities [get]
func (h *AnalyticsHandler) RecentActivities(c *gin.Context) {
	activities, err := h.analytics.RecentActivities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activities)
}
