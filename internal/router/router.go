package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-api/internal/handler"
	"github.com/noah-isme/classroom-api/internal/middleware"
	"github.com/noah-isme/classroom-api/internal/service"
	"github.com/noah-isme/classroom-api/pkg/config"
	"github.com/noah-isme/classroom-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/classroom-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/classroom-api/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler mounted by the router.
type Handlers struct {
	Students  *handler.StudentHandler
	Sections  *handler.SectionHandler
	Schedules *handler.ScheduleHandler
	Imports   *handler.ImportHandler
	Analytics *handler.AnalyticsHandler
	Reports   *handler.ReportHandler
	Metrics   *handler.MetricsHandler
}

// New builds the gin engine with the shared middleware chain and route table.
func New(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metrics, "/metrics", "/health"))
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	r.GET("/health", h.Metrics.Health)
	if cfg.Docs.Enabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/generate-certificate", h.Reports.Certificate)

	api := r.Group(cfg.APIPrefix)
	{
		students := api.Group("/students")
		students.GET("", h.Students.List)
		students.POST("", h.Students.Create)
		students.GET("/:id", h.Students.Get)
		students.PUT("/:id", h.Students.Update)
		students.DELETE("/:id", h.Students.Delete)
		students.PUT("/:id/order", h.Students.UpdateOrder)
		students.POST("/:id/evaluate", h.Students.Evaluate)

		api.GET("/sections", h.Sections.List)
		api.POST("/sections", h.Sections.Create)
		api.DELETE("/sections/:id", h.Sections.Delete)

		api.GET("/schedules", h.Schedules.List)
		api.POST("/schedules", h.Schedules.Create)
		api.DELETE("/schedules/:id", h.Schedules.Delete)

		api.POST("/upload-excel", h.Imports.Upload)

		api.GET("/notifications", h.Analytics.Notifications)
		api.GET("/recent-activities", h.Analytics.RecentActivities)
		analytics := api.Group("/analytics")
		analytics.GET("/overview", h.Analytics.Overview)
		analytics.GET("/section-performance", h.Analytics.SectionPerformance)
		analytics.GET("/leaderboard", h.Analytics.Leaderboard)
		analytics.GET("/behavior-trends", h.Analytics.BehaviorTrends)

		api.POST("/generate-report", h.Reports.Generate)
	}

	return r
}
