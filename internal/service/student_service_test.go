package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/internal/models"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

func newStudentService(repo *mockStudentRepo, cacheRepo *mockCacheRepo) *StudentService {
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, cacheRepo != nil)
	return NewStudentService(repo, nil, cache, NewMetricsService(), nil)
}

func TestStudentServiceCreateRequiresNameAndSection(t *testing.T) {
	svc := newStudentService(newMockStudentRepo(), nil)

	_, err := svc.Create(context.Background(), dto.StudentRequest{Name: "Amina"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "section")
}

func TestStudentServiceBadgesRoundTrip(t *testing.T) {
	repo := newMockStudentRepo()
	svc := newStudentService(repo, nil)

	var req dto.StudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Amina","section":"3A","badges":["b","a","a"]}`), &req))

	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	loaded, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, loaded.Badges)
	assert.Nil(t, loaded.Color)
}

func TestStudentServiceUpdateMissing(t *testing.T) {
	svc := newStudentService(newMockStudentRepo(), nil)

	_, err := svc.Update(context.Background(), "missing", dto.StudentRequest{Name: "A", Section: "B"})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestStudentServiceDeleteTwice(t *testing.T) {
	repo := newMockStudentRepo(models.Student{ID: "s1", Name: "Amina", Section: "3A"})
	svc := newStudentService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), "s1"))
	err := svc.Delete(context.Background(), "s1")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestStudentServiceEvaluate(t *testing.T) {
	repo := newMockStudentRepo(models.Student{ID: "s1", Name: "Amina", Section: "3A"})
	cacheRepo := newMockCacheRepo()
	svc := newStudentService(repo, cacheRepo)
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	result, err := svc.Evaluate(context.Background(), "s1", dto.EvaluateRequest{
		BehaviorScore:      intPtr(9),
		ParticipationScore: intPtr(8),
		HomeworkScore:      intPtr(10),
		Attendance:         intPtr(95),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ColorGreen, result.Color)

	stored := repo.students["s1"]
	require.NotNil(t, stored.Color)
	assert.Equal(t, models.ColorGreen, *stored.Color)
	assert.Equal(t, 95, *stored.Attendance)
	assert.Equal(t, fixed, *stored.EvaluatedAt)
	assert.Equal(t, []string{analyticsCachePattern}, cacheRepo.invalidated)
}

func TestStudentServiceEvaluateMissingField(t *testing.T) {
	repo := newMockStudentRepo(models.Student{ID: "s1", Name: "Amina", Section: "3A"})
	svc := newStudentService(repo, nil)

	_, err := svc.Evaluate(context.Background(), "s1", dto.EvaluateRequest{
		BehaviorScore:      intPtr(9),
		ParticipationScore: intPtr(8),
		HomeworkScore:      intPtr(10),
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Fields, "attendance")
	assert.Nil(t, repo.students["s1"].Color)
}

func TestStudentServiceEvaluateOutOfRange(t *testing.T) {
	repo := newMockStudentRepo(models.Student{ID: "s1", Name: "Amina", Section: "3A"})
	svc := newStudentService(repo, nil)

	_, err := svc.Evaluate(context.Background(), "s1", dto.EvaluateRequest{
		BehaviorScore:      intPtr(11),
		ParticipationScore: intPtr(8),
		HomeworkScore:      intPtr(10),
		Attendance:         intPtr(90),
	})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Nil(t, repo.students["s1"].BehaviorScore)
}

func TestStudentServiceEvaluateUnknownStudent(t *testing.T) {
	repo := newMockStudentRepo()
	svc := newStudentService(repo, nil)

	_, err := svc.Evaluate(context.Background(), "ghost", dto.EvaluateRequest{
		BehaviorScore:      intPtr(5),
		ParticipationScore: intPtr(5),
		HomeworkScore:      intPtr(5),
		Attendance:         intPtr(50),
	})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Empty(t, repo.students)
}

func TestStudentServiceEvaluateStoreFailure(t *testing.T) {
	repo := newMockStudentRepo()
	repo.err = errors.New("connection reset")
	svc := newStudentService(repo, nil)

	_, err := svc.Evaluate(context.Background(), "s1", dto.EvaluateRequest{
		BehaviorScore:      intPtr(5),
		ParticipationScore: intPtr(5),
		HomeworkScore:      intPtr(5),
		Attendance:         intPtr(50),
	})
	assert.True(t, errors.Is(err, appErrors.ErrStore))
}

func TestStudentServiceUpdateOrder(t *testing.T) {
	repo := newMockStudentRepo(models.Student{ID: "s1", Name: "Amina", Section: "3A"})
	svc := newStudentService(repo, nil)

	_, err := svc.UpdateOrder(context.Background(), "s1", dto.OrderRequest{})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	var req dto.OrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"orderNumber":3}`), &req))
	resp, err := svc.UpdateOrder(context.Background(), "s1", req)
	require.NoError(t, err)
	assert.Equal(t, 3, *resp.OrderNumber)

	require.NoError(t, json.Unmarshal([]byte(`{"orderNumber":null}`), &req))
	resp, err = svc.UpdateOrder(context.Background(), "s1", req)
	require.NoError(t, err)
	assert.Nil(t, resp.OrderNumber)
	assert.Nil(t, repo.students["s1"].OrderNumber)
}

func TestStudentServiceListRejectsUnknownColor(t *testing.T) {
	svc := newStudentService(newMockStudentRepo(), nil)

	_, err := svc.List(context.Background(), models.StudentFilter{Colors: []models.Color{"purple"}})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
