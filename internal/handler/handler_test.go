package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/service"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
	"github.com/noah-isme/classroom-api/pkg/export"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *appErrors.Error {
	t.Helper()
	var body struct {
		Error *appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error
}

type studentServiceMock struct {
	created    dto.StudentRequest
	evaluated  dto.EvaluateRequest
	orderReq   dto.OrderRequest
	evalResult *models.EvaluationResult
	err        error
}

func (m *studentServiceMock) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	return []models.Student{}, m.err
}

func (m *studentServiceMock) Get(ctx context.Context, id string) (*models.Student, error) {
	return &models.Student{ID: id}, m.err
}

func (m *studentServiceMock) Create(ctx context.Context, req dto.StudentRequest) (*models.Student, error) {
	m.created = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.Student{ID: "s1", Name: req.Name, Section: req.Section, Badges: req.Badges}, nil
}

func (m *studentServiceMock) Update(ctx context.Context, id string, req dto.StudentRequest) (*models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Student{ID: id, Name: req.Name, Section: req.Section}, nil
}

func (m *studentServiceMock) Delete(ctx context.Context, id string) error {
	return m.err
}

func (m *studentServiceMock) UpdateOrder(ctx context.Context, id string, req dto.OrderRequest) (*dto.OrderResponse, error) {
	m.orderReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.OrderResponse{Message: "Order number updated", OrderNumber: req.OrderNumber.Value}, nil
}

func (m *studentServiceMock) Evaluate(ctx context.Context, id string, req dto.EvaluateRequest) (*models.EvaluationResult, error) {
	m.evaluated = req
	if m.err != nil {
		return nil, m.err
	}
	return m.evalResult, nil
}

func TestStudentHandlerCreate(t *testing.T) {
	svc := &studentServiceMock{}
	h := NewStudentHandler(svc)

	c, w := newGinContext(http.MethodPost, "/api/students", []byte(`{"name":"Amina","section":"3A","badges":["a","b"]}`))
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.BadgeSet{"a", "b"}, svc.created.Badges)
	var student models.Student
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &student))
	assert.Equal(t, "s1", student.ID)
}

func TestStudentHandlerCreateMalformedBody(t *testing.T) {
	h := NewStudentHandler(&studentServiceMock{})

	c, w := newGinContext(http.MethodPost, "/api/students", []byte(`{"name":`))
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, decodeError(t, w).Code)
}

func TestStudentHandlerUpdateNotFound(t *testing.T) {
	h := NewStudentHandler(&studentServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "Student not found")})

	c, w := newGinContext(http.MethodPut, "/api/students/missing", []byte(`{"name":"A","section":"B"}`))
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.Update(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Student not found", decodeError(t, w).Message)
}

func TestStudentHandlerDelete(t *testing.T) {
	h := NewStudentHandler(&studentServiceMock{})

	c, w := newGinContext(http.MethodDelete, "/api/students/s1", nil)
	c.Params = gin.Params{{Key: "id", Value: "s1"}}
	h.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestStudentHandlerUpdateOrder(t *testing.T) {
	svc := &studentServiceMock{}
	h := NewStudentHandler(svc)

	c, w := newGinContext(http.MethodPut, "/api/students/s1/order", []byte(`{"orderNumber":"first"}`))
	h.UpdateOrder(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newGinContext(http.MethodPut, "/api/students/s1/order", []byte(`{"orderNumber":null}`))
	h.UpdateOrder(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.orderReq.OrderNumber.Set)
	assert.JSONEq(t, `{"message":"Order number updated","orderNumber":null}`, w.Body.String())
}

func TestStudentHandlerEvaluate(t *testing.T) {
	svc := &studentServiceMock{evalResult: &models.EvaluationResult{StudentID: "s1", Color: models.ColorYellow}}
	h := NewStudentHandler(svc)

	c, w := newGinContext(http.MethodPost, "/api/students/s1/evaluate", []byte(`{"behaviorScore":5,"participationScore":7,"homeworkScore":6,"attendance":90}`))
	c.Params = gin.Params{{Key: "id", Value: "s1"}}
	h.Evaluate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Evaluation submitted","color":"yellow"}`, w.Body.String())
	assert.Equal(t, 7, *svc.evaluated.ParticipationScore)
}

func TestStudentHandlerEvaluateWrongType(t *testing.T) {
	h := NewStudentHandler(&studentServiceMock{})

	c, w := newGinContext(http.MethodPost, "/api/students/s1/evaluate", []byte(`{"behaviorScore":"high"}`))
	h.Evaluate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type batchWriterStub struct {
	students []models.Student
}

func (b *batchWriterStub) BulkCreate(ctx context.Context, students []models.Student) error {
	b.students = append(b.students, students...)
	return nil
}

func multipartRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" || content != nil {
		part, err := writer.CreateFormFile(uploadField, filename)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/upload-excel", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func workbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{service.ColumnName, service.ColumnAttendance}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Amina", 90}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Omar", "absent"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestImportHandlerUpload(t *testing.T) {
	writer := &batchWriterStub{}
	h := NewImportHandler(service.NewImportService(writer, nil, nil, nil), 1<<20)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "3A.xlsx", workbook(t))
	h.Upload(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, float64(2), result["students_added"])
	assert.Equal(t, "Successfully uploaded and processed 3A.xlsx", result["message"])
	require.Len(t, writer.students, 2)
	assert.Nil(t, writer.students[1].Attendance)
}

func TestImportHandlerRejectsBadUploads(t *testing.T) {
	h := NewImportHandler(service.NewImportService(&batchWriterStub{}, nil, nil, nil), 1<<20)

	cases := []struct {
		name   string
		req    *http.Request
		code   string
		status int
	}{
		{"missing file", multipartRequest(t, "", nil), appErrors.ErrValidation.Code, http.StatusBadRequest},
		{"empty file", multipartRequest(t, "3A.xlsx", []byte{}), appErrors.ErrValidation.Code, http.StatusBadRequest},
		{"wrong extension", multipartRequest(t, "3A.txt", []byte("hello")), appErrors.ErrUnsupportedFileType.Code, http.StatusBadRequest},
		{"corrupt workbook", multipartRequest(t, "3A.xlsx", []byte("hello")), appErrors.ErrImport.Code, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = tc.req
			h.Upload(c)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decodeError(t, w).Code)
		})
	}
}

func TestReportHandlerGenerate(t *testing.T) {
	reports := service.NewReportService(export.NewPDFExporter(export.PDFOptions{}), export.NewCSVExporter(), nil, nil, nil)
	h := NewReportHandler(reports, nil)

	c, w := newGinContext(http.MethodPost, "/api/generate-report", []byte(`{"reportType":"overview","data":{"totalStudents":3}}`))
	h.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=overview_report.pdf", w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestReportHandlerUnknownType(t *testing.T) {
	reports := service.NewReportService(export.NewPDFExporter(export.PDFOptions{}), nil, nil, nil, nil)
	h := NewReportHandler(reports, nil)

	c, w := newGinContext(http.MethodPost, "/api/generate-report", []byte(`{"reportType":"unknown","data":[]}`))
	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrUnsupportedReportType.Code, decodeError(t, w).Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestReportHandlerCertificate(t *testing.T) {
	pdf := export.NewPDFExporter(export.PDFOptions{})
	h := NewReportHandler(nil, service.NewCertificateService(pdf, nil, nil))

	c, w := newGinContext(http.MethodPost, "/generate-certificate", []byte(`{"student_name":"Amina"}`))
	h.Certificate(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newGinContext(http.MethodPost, "/generate-certificate", []byte(`{"student_name":"Amina","badge_name":"Reader","date_awarded":"2024-05-01"}`))
	h.Certificate(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=Amina_Reader.pdf", w.Header().Get("Content-Disposition"))
}

type analyticsServiceMock struct {
	limit int
	err   error
}

func (m *analyticsServiceMock) Overview(ctx context.Context) (dto.OverviewMetrics, bool, error) {
	return dto.OverviewMetrics{TotalStudents: 2}, true, m.err
}

func (m *analyticsServiceMock) SectionPerformance(ctx context.Context) ([]dto.SectionPerformance, bool, error) {
	return []dto.SectionPerformance{}, false, m.err
}

func (m *analyticsServiceMock) Leaderboard(ctx context.Context, section string, limit int) ([]dto.LeaderboardEntry, bool, error) {
	m.limit = limit
	return []dto.LeaderboardEntry{}, false, m.err
}

func (m *analyticsServiceMock) BehaviorTrends(ctx context.Context) ([]dto.BehaviorTrend, bool, error) {
	return []dto.BehaviorTrend{}, false, m.err
}

func (m *analyticsServiceMock) Notifications(ctx context.Context) ([]dto.Notification, error) {
	return []dto.Notification{}, m.err
}

func (m *analyticsServiceMock) RecentActivities(ctx context.Context) ([]dto.Activity, error) {
	return []dto.Activity{}, m.err
}

func TestAnalyticsHandler(t *testing.T) {
	svc := &analyticsServiceMock{}
	h := NewAnalyticsHandler(svc)

	c, w := newGinContext(http.MethodGet, "/api/analytics/overview", nil)
	h.Overview(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	c, w = newGinContext(http.MethodGet, "/api/notifications", nil)
	h.Notifications(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	c, w = newGinContext(http.MethodGet, "/api/analytics/leaderboard?limit=3", nil)
	h.Leaderboard(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, svc.limit)

	c, w = newGinContext(http.MethodGet, "/api/analytics/leaderboard?limit=-1", nil)
	h.Leaderboard(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsHandlerStoreError(t *testing.T) {
	h := NewAnalyticsHandler(&analyticsServiceMock{err: appErrors.WrapAs(appErrors.ErrStore, io.ErrUnexpectedEOF, "failed to load recent students")})

	c, w := newGinContext(http.MethodGet, "/api/recent-activities", nil)
	h.RecentActivities(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, io.ErrUnexpectedEOF.Error(), decodeError(t, w).Details)
}
