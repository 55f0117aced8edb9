package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/repository"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
	"github.com/noah-isme/classroom-api/pkg/validation"
)

type sectionRepository interface {
	List(ctx context.Context) ([]models.Section, error)
	FindByID(ctx context.Context, id string) (*models.Section, error)
	Create(ctx context.Context, section *models.Section) error
	Delete(ctx context.Context, id string) error
}

// SectionService manages sections.
type SectionService struct {
	repo      sectionRepository
	validator *validation.Validator
	cache     *CacheService
	logger    *zap.Logger
}

// NewSectionService constructs the section service.
func NewSectionService(repo sectionRepository, validator *validation.Validator, cache *CacheService, logger *zap.Logger) *SectionService {
	if validator == nil {
		validator = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SectionService{repo: repo, validator: validator, cache: cache, logger: logger}
}

// List returns all sections with live counters.
func (s *SectionService) List(ctx context.Context) ([]models.Section, error) {
	sections, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrStore, err, "failed to list sections")
	}
	return sections, nil
}

// Create inserts a section; names are unique.
func (s *SectionService) Create(ctx context.Context, req dto.SectionRequest) (*models.Section, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(s.validator, err, "Missing section name")
	}
	section := &models.Section{Name: req.Name, Grade: req.Grade}
	if err := s.repo.Create(ctx, section); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "section "+req.Name+" already exists")
		}
		return nil, appErrors.WrapAs(appErrors.ErrStore, err, "failed to create section")
	}
	created, err := s.repo.FindByID(ctx, section.ID)
	if err != nil {
		s.logger.Warn("reload created section failed", zap.String("section_id", section.ID), zap.Error(err))
		created = section
	}
	invalidateAnalytics(ctx, s.cache)
	return created, nil
}

// Delete removes a section. Students referencing it by name are kept.
func (s *SectionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "Section not found", "failed to delete section")
	}
	invalidateAnalytics(ctx, s.cache)
	return nil
}

type scheduleRepository interface {
	List(ctx context.Context, section string) ([]models.Schedule, error)
	Create(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, id string) error
}

// ScheduleService manages timetable entries. Overlaps are not checked.
type ScheduleService struct {
	repo      scheduleRepository
	validator *validation.Validator
}

// NewScheduleService constructs the schedule service.
func NewScheduleService(repo scheduleRepository, validator *validation.Validator) *ScheduleService {
	if validator == nil {
		validator = validation.New()
	}
	return &ScheduleService{repo: repo, validator: validator}
}

// List returns schedules, optionally for a single section.
func (s *ScheduleService) List(ctx context.Context, section string) ([]models.Schedule, error) {
	schedules, err := s.repo.List(ctx, strings.TrimSpace(section))
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrStore, err, "failed to list schedules")
	}
	return schedules, nil
}

// Create inserts a schedule entry.
func (s *ScheduleService) Create(ctx context.Context, req dto.ScheduleRequest) (*models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(s.validator, err, "Missing schedule data (name, time, section, or teacher)")
	}
	schedule := &models.Schedule{Name: req.Name, Time: req.Time, Section: req.Section, Teacher: req.Teacher}
	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrStore, err, "failed to create schedule")
	}
	return schedule, nil
}

// Delete removes a schedule entry.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "Schedule not found", "failed to delete schedule")
	}
	return nil
}
