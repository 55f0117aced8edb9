package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/repository"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
	"github.com/noah-isme/classroom-api/pkg/spreadsheet"
)

// Spreadsheet column headers understood by the import.
const (
	ColumnName          = "الإسم"
	ColumnFamilyName    = "النسب"
	ColumnOrderNumber   = "ر.ت"
	ColumnGrade         = "الدرجة"
	ColumnBadges        = "الأوسمة"
	ColumnBehavior      = "السلوك"
	ColumnBehaviorScore = "تقييم السلوك"
	ColumnParticipation = "المشاركة في القسم"
	ColumnHomework      = "أداء الواجبات"
	ColumnAttendance    = "نسبة الحضور"

	badgeSeparator = " و"
)

type studentBatchWriter interface {
	BulkCreate(ctx context.Context, students []models.Student) error
}

// ImportService loads student rosters from spreadsheets. The file base name
// is the target section and all rows are written in one transaction.
type ImportService struct {
	repo    studentBatchWriter
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewImportService constructs the import service.
func NewImportService(repo studentBatchWriter, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Import reads the first sheet of the uploaded workbook and inserts one
// student per non-blank row. The extension is checked before anything is read.
func (s *ImportService) Import(ctx context.Context, filename string, r io.Reader) (*dto.ImportResult, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "No file selected for uploading")
	}
	if !spreadsheet.Supported(filename) {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFileType, "Invalid file type. Please upload an Excel file (.xlsx)")
	}
	section := strings.TrimSpace(spreadsheet.BaseName(filename))
	if section == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file name must name the section")
	}

	sheet, err := spreadsheet.ReadFirstSheet(r)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrImport, err, "An error occurred while processing the file")
	}

	students, rowNumbers, skipped := s.mapRows(sheet.Rows, section)
	if len(students) > 0 {
		if err := s.repo.BulkCreate(ctx, students); err != nil {
			var rowErr *repository.RowError
			if errors.As(err, &rowErr) && rowErr.Index >= 0 && rowErr.Index < len(rowNumbers) {
				err = fmt.Errorf("sheet row %d: %w", rowNumbers[rowErr.Index], rowErr.Err)
			}
			s.logger.Error("import failed", zap.String("file", filename), zap.Error(err))
			return nil, appErrors.WrapAs(appErrors.ErrImport, err, "An error occurred while processing the file")
		}
	}

	s.metrics.RecordImport(len(students), skipped)
	invalidateAnalytics(ctx, s.cache)
	s.logger.Info("students imported",
		zap.String("file", filename),
		zap.String("section", section),
		zap.Int("added", len(students)),
		zap.Int("skipped", skipped),
	)

	return &dto.ImportResult{
		Message:       "Successfully uploaded and processed " + filename,
		StudentsAdded: len(students),
		RowsSkipped:   skipped,
		Section:       section,
	}, nil
}

func (s *ImportService) mapRows(rows []spreadsheet.Row, section string) ([]models.Student, []int, int) {
	var (
		students   = make([]models.Student, 0, len(rows))
		rowNumbers = make([]int, 0, len(rows))
		skipped    int
		now        = s.now()
	)
	for _, row := range rows {
		student, ok := studentFromRow(row, section)
		if !ok {
			skipped++
			continue
		}
		if color, ok := classifyImported(student); ok {
			student.Color = &color
			evaluatedAt := now
			student.EvaluatedAt = &evaluatedAt
		}
		students = append(students, student)
		rowNumbers = append(rowNumbers, row.Number)
	}
	return students, rowNumbers, skipped
}

func studentFromRow(row spreadsheet.Row, section string) (models.Student, bool) {
	name := row.Get(ColumnName)
	if name == "" {
		return models.Student{}, false
	}
	if family := row.Get(ColumnFamilyName); family != "" {
		name += " " + family
	}
	student := models.Student{
		Name:               name,
		Section:            section,
		Grade:              optionalString(row.Get(ColumnGrade)),
		Behavior:           optionalString(row.Get(ColumnBehavior)),
		Badges:             models.NewBadgeSet(strings.Split(row.Get(ColumnBadges), badgeSeparator)...),
		OrderNumber:        parseScore(row.Get(ColumnOrderNumber), 0, math.MaxInt32),
		BehaviorScore:      parseScore(row.Get(ColumnBehaviorScore), 0, maxScore),
		ParticipationScore: parseScore(row.Get(ColumnParticipation), 0, maxScore),
		HomeworkScore:      parseScore(row.Get(ColumnHomework), 0, maxScore),
		Attendance:         parseScore(row.Get(ColumnAttendance), 0, maxAttendance),
	}
	return student, true
}

func classifyImported(s models.Student) (models.Color, bool) {
	if s.BehaviorScore == nil || s.ParticipationScore == nil || s.HomeworkScore == nil || s.Attendance == nil {
		return "", false
	}
	color, err := ClassifyEvaluation(models.Evaluation{
		BehaviorScore:      *s.BehaviorScore,
		ParticipationScore: *s.ParticipationScore,
		HomeworkScore:      *s.HomeworkScore,
		Attendance:         *s.Attendance,
	})
	return color, err == nil
}

// parseScore returns nil for blank, non-integral or out-of-range cells.
func parseScore(raw string, lo, hi int) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || f < float64(lo) || f > float64(hi) {
		return nil
	}
	v := int(f)
	return &v
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
