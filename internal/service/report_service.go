package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-api/internal/dto"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
	"github.com/noah-isme/classroom-api/pkg/export"
	"github.com/noah-isme/classroom-api/pkg/validation"
)

// Report output formats.
const (
	FormatPDF = "pdf"
	FormatCSV = "csv"
)

type tableRenderer interface {
	Render(t export.Table) ([]byte, error)
}

// Document is a rendered file ready to be streamed to the client.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportService renders report payloads into downloadable documents.
type ReportService struct {
	renderers map[string]tableRenderer
	validator *validation.Validator
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewReportService constructs a report service. The csv renderer is optional.
func NewReportService(pdf tableRenderer, csv tableRenderer, validator *validation.Validator, metrics *MetricsService, logger *zap.Logger) *ReportService {
	if validator == nil {
		validator = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	renderers := map[string]tableRenderer{FormatPDF: pdf}
	if csv != nil {
		renderers[FormatCSV] = csv
	}
	return &ReportService{renderers: renderers, validator: validator, metrics: metrics, logger: logger}
}

var contentTypes = map[string]string{
	FormatPDF: "application/pdf",
	FormatCSV: "text/csv; charset=utf-8",
}

// Generate validates the request, builds the table for its type and renders
// it. An empty format selects PDF.
func (s *ReportService) Generate(ctx context.Context, req dto.ReportRequest, format string) (*Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(s.validator, err, "reportType and data are required")
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatPDF
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "unsupported report format"), map[string]string{"format": format + " is not supported"})
	}

	table, err := BuildReportTable(req.ReportType, req.Data)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := renderer.Render(table)
	if err != nil {
		s.logger.Error("render report failed", zap.String("report_type", string(req.ReportType)), zap.Error(err))
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to render report")
	}
	s.metrics.ObserveReport(string(req.ReportType), format, time.Since(start))

	return &Document{
		Filename:    fmt.Sprintf("%s_report.%s", req.ReportType, format),
		ContentType: contentTypes[format],
		Body:        body,
	}, nil
}

// BuildReportTable decodes data according to reportType and lays it out as a table.
func BuildReportTable(reportType dto.ReportType, data json.RawMessage) (export.Table, error) {
	switch reportType {
	case dto.ReportLeaderboard:
		var entries []dto.LeaderboardEntry
		if err := decodeReportData(data, &entries); err != nil {
			return export.Table{}, err
		}
		return leaderboardTable(entries), nil
	case dto.ReportOverview:
		var metrics dto.OverviewMetrics
		if err := decodeReportData(data, &metrics); err != nil {
			return export.Table{}, err
		}
		return overviewTable(metrics), nil
	case dto.ReportSectionPerformance:
		var sections []dto.SectionPerformance
		if err := decodeReportData(data, &sections); err != nil {
			return export.Table{}, err
		}
		return sectionPerformanceTable(sections), nil
	case dto.ReportBehaviorTrends:
		var trends []dto.BehaviorTrend
		if err := decodeReportData(data, &trends); err != nil {
			return export.Table{}, err
		}
		return behaviorTrendsTable(trends), nil
	default:
		return export.Table{}, appErrors.Clone(appErrors.ErrUnsupportedReportType, fmt.Sprintf("unsupported report type %q", reportType))
	}
}

func decodeReportData(data json.RawMessage, dest interface{}) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return appErrors.WithFields(
			appErrors.WrapAs(appErrors.ErrValidation, err, "report data does not match the report type"),
			map[string]string{"data": err.Error()},
		)
	}
	return nil
}

func leaderboardTable(entries []dto.LeaderboardEntry) export.Table {
	t := export.Table{
		Title: "Leaderboard Report",
		Columns: []export.Column{
			{Header: "الترتيب", Width: 15, Align: export.AlignCenter},
			{Header: "الاسم", Width: 40, Align: export.AlignRight},
			{Header: "القسم", Width: 25, Align: export.AlignRight},
			{Header: "إجمالي النقاط", Width: 25, Align: export.AlignCenter},
			{Header: "المشاركة", Width: 20, Align: export.AlignCenter},
			{Header: "السلوك", Width: 20, Align: export.AlignCenter},
			{Header: "الواجبات", Width: 20, Align: export.AlignCenter},
			{Header: "البادجات", Width: 30, Align: export.AlignRight},
			{Header: "التقييم", Width: 20, Align: export.AlignRight},
		},
	}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(e.Rank),
			e.Name,
			e.Section,
			formatNumber(e.TotalPoints),
			formatNumber(e.ParticipationPoints),
			formatNumber(e.BehaviorPoints),
			formatNumber(e.HomeworkPoints),
			strings.Join(e.Badges, ", "),
			formatNumber(e.StarRating) + " نجوم",
		})
	}
	return t
}

func overviewTable(m dto.OverviewMetrics) export.Table {
	t := export.Table{
		Title: "Overview Report",
		Columns: []export.Column{
			{Header: "المقياس", Width: 80, Align: export.AlignRight},
			{Header: "القيمة", Width: 80, Align: export.AlignCenter},
		},
	}
	rows := []struct {
		label string
		value string
	}{
		{"إجمالي التلاميذ", strconv.Itoa(m.TotalStudents)},
		{"المتفوقون", strconv.Itoa(m.ExcellentStudents)},
		{"المتوسطون", strconv.Itoa(m.AverageStudents)},
		{"يحتاجون تحسين", strconv.Itoa(m.PoorStudents)},
		{"المعدل العام", formatPercent(m.AverageGrade)},
		{"معدل الحضور", formatPercent(m.AttendanceRate)},
		{"معدل إكمال الواجبات", formatPercent(m.HomeworkCompletionRate)},
		{"نقاط السلوك", formatNumber(m.BehaviorScore)},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.label, r.value})
	}
	return t
}

func sectionPerformanceTable(sections []dto.SectionPerformance) export.Table {
	t := export.Table{
		Title: "Section Performance Report",
		Columns: []export.Column{
			{Header: "القسم", Width: 40, Align: export.AlignRight},
			{Header: "المعدل", Width: 25, Align: export.AlignCenter},
			{Header: "التلاميذ", Width: 25, Align: export.AlignCenter},
			{Header: "المتفوقون", Width: 25, Align: export.AlignCenter},
			{Header: "يحتاجون تحسين", Width: 35, Align: export.AlignCenter},
		},
	}
	for _, s := range sections {
		t.Rows = append(t.Rows, []string{
			s.Section,
			formatPercent(s.Average),
			strconv.Itoa(s.Students),
			strconv.Itoa(s.Excellent),
			strconv.Itoa(s.Poor),
		})
	}
	return t
}

func behaviorTrendsTable(trends []dto.BehaviorTrend) export.Table {
	t := export.Table{
		Title: "Behavior Trends Report",
		Columns: []export.Column{
			{Header: "الشهر", Width: 40, Align: export.AlignRight},
			{Header: "ممتاز", Width: 40, Align: export.AlignCenter},
			{Header: "جيد", Width: 40, Align: export.AlignCenter},
			{Header: "يحتاج تحسين", Width: 40, Align: export.AlignCenter},
		},
	}
	for _, tr := range trends {
		t.Rows = append(t.Rows, []string{
			tr.Month,
			strconv.Itoa(tr.Excellent),
			strconv.Itoa(tr.Good),
			strconv.Itoa(tr.Poor),
		})
	}
	return t
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPercent(v float64) string {
	return formatNumber(v) + "%"
}
