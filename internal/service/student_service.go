package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/internal/models"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
	"github.com/noah-isme/classroom-api/pkg/validation"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	UpdateOrder(ctx context.Context, id string, orderNumber *int) error
	SaveEvaluation(ctx context.Context, id string, eval models.Evaluation, color models.Color, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validation.Validator
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validator *validation.Validator, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *StudentService {
	if validator == nil {
		validator = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		repo:      repo,
		validator: validator,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns students matching the filter.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	for _, c := range filter.Colors {
		if !c.Valid() {
			return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "invalid color filter"), map[string]string{"color": string(c) + " is not a known color"})
		}
	}
	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrStore, err, "failed to list students")
	}
	return students, nil
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Student not found", "failed to load student")
	}
	return student, nil
}

// Create inserts a student. Evaluation fields start empty.
func (s *StudentService) Create(ctx context.Context, req dto.StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(s.validator, err, "Missing student name or section")
	}
	student := &models.Student{
		Name:     req.Name,
		Section:  req.Section,
		Grade:    req.Grade,
		Badges:   models.NewBadgeSet(req.Badges...),
		Behavior: req.Behavior,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrStore, err, "failed to create student")
	}
	s.invalidate(ctx)
	return student, nil
}

// Update replaces the descriptive fields of a student.
func (s *StudentService) Update(ctx context.Context, id string, req dto.StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(s.validator, err, "Missing student name or section")
	}
	student := &models.Student{
		ID:       id,
		Name:     req.Name,
		Section:  req.Section,
		Grade:    req.Grade,
		Badges:   models.NewBadgeSet(req.Badges...),
		Behavior: req.Behavior,
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, storeError(err, "Student not found", "failed to update student")
	}
	s.invalidate(ctx)
	return s.Get(ctx, id)
}

// Delete removes a student. Section counters are computed and need no update.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "Student not found", "failed to delete student")
	}
	s.invalidate(ctx)
	return nil
}

// UpdateOrder sets or clears the display order of a student.
func (s *StudentService) UpdateOrder(ctx context.Context, id string, req dto.OrderRequest) (*dto.OrderResponse, error) {
	if !req.OrderNumber.Set {
		return nil, appErrors.WithFields(
			appErrors.Clone(appErrors.ErrValidation, "Missing orderNumber in request data"),
			map[string]string{"orderNumber": "orderNumber is required"},
		)
	}
	if err := s.repo.UpdateOrder(ctx, id, req.OrderNumber.Value); err != nil {
		return nil, storeError(err, "Student not found", "failed to update order number")
	}
	return &dto.OrderResponse{Message: "Order number updated", OrderNumber: req.OrderNumber.Value}, nil
}

// Evaluate validates the scores, classifies them and stores scores and
// color together.
func (s *StudentService) Evaluate(ctx context.Context, id string, req dto.EvaluateRequest) (*models.EvaluationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(s.validator, err, "invalid evaluation payload")
	}
	eval := req.Evaluation()
	color, err := ClassifyEvaluation(eval)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveEvaluation(ctx, id, eval, color, s.now()); err != nil {
		return nil, storeError(err, "Student not found", "failed to save evaluation")
	}
	s.metrics.RecordEvaluation(color)
	s.invalidate(ctx)
	s.logger.Debug("student evaluated", zap.String("student_id", id), zap.String("color", string(color)))
	return &models.EvaluationResult{StudentID: id, Color: color, Evaluation: eval}, nil
}

func (s *StudentService) invalidate(ctx context.Context) {
	invalidateAnalytics(ctx, s.cache)
}
