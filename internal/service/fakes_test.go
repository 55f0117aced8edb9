package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"time"

	"github.com/noah-isme/classroom-api/internal/models"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

type mockStudentRepo struct {
	students   map[string]models.Student
	order      []string
	seq        int
	lastFilter models.StudentFilter
	bulk       [][]models.Student
	bulkErr    error
	err        error
	onList     func()
}

func newMockStudentRepo(students ...models.Student) *mockStudentRepo {
	m := &mockStudentRepo{students: make(map[string]models.Student)}
	for _, s := range students {
		m.put(s)
	}
	return m
}

func (m *mockStudentRepo) put(s models.Student) {
	if s.ID == "" {
		m.seq++
		s.ID = fmt.Sprintf("student-%d", m.seq)
	}
	if _, ok := m.students[s.ID]; !ok {
		m.order = append(m.order, s.ID)
	}
	m.students[s.ID] = s
}

func (m *mockStudentRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Student, 0, len(m.order))
	defer func() {
		if m.onList != nil {
			m.onList()
		}
	}()
	for _, id := range m.order {
		s := m.students[id]
		if filter.Section != "" && s.Section != filter.Section {
			continue
		}
		if len(filter.Colors) > 0 {
			match := false
			for _, c := range filter.Colors {
				if s.Color != nil && *s.Color == c {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if m.err != nil {
		return m.err
	}
	m.put(*student)
	student.ID = m.order[len(m.order)-1]
	return nil
}

func (m *mockStudentRepo) BulkCreate(ctx context.Context, students []models.Student) error {
	if m.bulkErr != nil {
		return m.bulkErr
	}
	m.bulk = append(m.bulk, students)
	for _, s := range students {
		m.put(s)
	}
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	existing, ok := m.students[student.ID]
	if !ok {
		return sql.ErrNoRows
	}
	existing.Name = student.Name
	existing.Section = student.Section
	existing.Grade = student.Grade
	existing.Badges = student.Badges
	existing.Behavior = student.Behavior
	m.students[student.ID] = existing
	return nil
}

func (m *mockStudentRepo) UpdateOrder(ctx context.Context, id string, orderNumber *int) error {
	s, ok := m.students[id]
	if !ok {
		return sql.ErrNoRows
	}
	s.OrderNumber = orderNumber
	m.students[id] = s
	return nil
}

func (m *mockStudentRepo) SaveEvaluation(ctx context.Context, id string, eval models.Evaluation, color models.Color, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	s, ok := m.students[id]
	if !ok {
		return sql.ErrNoRows
	}
	s.BehaviorScore = &eval.BehaviorScore
	s.ParticipationScore = &eval.ParticipationScore
	s.HomeworkScore = &eval.HomeworkScore
	s.Attendance = &eval.Attendance
	s.Color = &color
	s.EvaluatedAt = &at
	m.students[id] = s
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.students[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.students, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockStudentRepo) ListRecent(ctx context.Context, limit int) ([]models.RecentEntity, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.RecentEntity, 0, limit)
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		s := m.students[m.order[i]]
		out = append(out, models.RecentEntity{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt})
	}
	return out, nil
}

type mockSectionRepo struct {
	sections map[string]models.Section
	recent   []models.RecentEntity
	createFn func(*models.Section) error
}

func (m *mockSectionRepo) List(ctx context.Context) ([]models.Section, error) {
	out := make([]models.Section, 0, len(m.sections))
	for _, s := range m.sections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockSectionRepo) FindByID(ctx context.Context, id string) (*models.Section, error) {
	s, ok := m.sections[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (m *mockSectionRepo) Create(ctx context.Context, section *models.Section) error {
	if m.createFn != nil {
		if err := m.createFn(section); err != nil {
			return err
		}
	}
	if m.sections == nil {
		m.sections = make(map[string]models.Section)
	}
	section.ID = "section-" + section.Name
	m.sections[section.ID] = *section
	return nil
}

func (m *mockSectionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.sections[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.sections, id)
	return nil
}

func (m *mockSectionRepo) ListRecent(ctx context.Context, limit int) ([]models.RecentEntity, error) {
	if len(m.recent) > limit {
		return m.recent[:limit], nil
	}
	return m.recent, nil
}

type mockCacheRepo struct {
	values      map[string][]byte
	counters    map[string]int64
	invalidated []string
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{values: make(map[string][]byte), counters: make(map[string]int64)}
}

func (m *mockCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *mockCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	for key := range m.values {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.values, key)
		}
	}
	return nil
}

func (m *mockCacheRepo) Counter(ctx context.Context, key string) (int64, error) {
	return m.counters[key], nil
}

func (m *mockCacheRepo) Incr(ctx context.Context, key string) (int64, error) {
	m.counters[key]++
	return m.counters[key], nil
}

func intPtr(v int) *int { return &v }

func colorPtr(c models.Color) *models.Color { return &c }

func strPtr(s string) *string { return &s }

func errNoRows() error { return sql.ErrNoRows }
