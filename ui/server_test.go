package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sheetviz/app"
	"sheetviz/domain/chart"
	"sheetviz/domain/core"
	"sheetviz/domain/dataset"
	"sheetviz/domain/tabular"
	"sheetviz/internal"
	apperrors "sheetviz/internal/errors"
	"sheetviz/internal/series"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFileService struct {
	mock.Mock
}

func (m *mockFileService) Upload(ctx context.Context, req app.UploadRequest) (*app.UploadResult, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*app.UploadResult)
	return r, args.Error(1)
}

func (m *mockFileService) GetFile(ctx context.Context, id core.ID) (*dataset.UploadedFile, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*dataset.UploadedFile)
	return f, args.Error(1)
}

func (m *mockFileService) ListFiles(ctx context.Context, limit, offset int) ([]*dataset.UploadedFile, error) {
	args := m.Called(ctx, limit, offset)
	f, _ := args.Get(0).([]*dataset.UploadedFile)
	return f, args.Error(1)
}

func (m *mockFileService) DeleteFile(ctx context.Context, id core.ID) error {
	return m.Called(ctx, id).Error(0)
}

type mockChartService struct {
	mock.Mock
}

func (m *mockChartService) BuildSeries(ctx context.Context, fileID core.ID, req series.Request) (*tabular.SeriesData, error) {
	args := m.Called(ctx, fileID, req)
	d, _ := args.Get(0).(*tabular.SeriesData)
	return d, args.Error(1)
}

func (m *mockChartService) SaveChart(ctx context.Context, req app.SaveChartRequest) (*chart.Chart, error) {
	args := m.Called(ctx, req)
	c, _ := args.Get(0).(*chart.Chart)
	return c, args.Error(1)
}

func (m *mockChartService) GetChart(ctx context.Context, id core.ID) (*chart.Chart, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*chart.Chart)
	return c, args.Error(1)
}

func (m *mockChartService) ListCharts(ctx context.Context, fileID core.ID, limit, offset int) ([]*chart.Chart, error) {
	args := m.Called(ctx, fileID, limit, offset)
	c, _ := args.Get(0).([]*chart.Chart)
	return c, args.Error(1)
}

func (m *mockChartService) DeleteChart(ctx context.Context, id core.ID) error {
	return m.Called(ctx, id).Error(0)
}

func newTestServer(maxUpload int64) (*Server, *mockFileService, *mockChartService) {
	files := new(mockFileService)
	charts := new(mockChartService)
	s := NewServer(files, charts, Config{GinMode: gin.TestMode, MaxUploadBytes: maxUpload}, internal.NewNopLogger())
	return s, files, charts
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestUploadHandler(t *testing.T) {
	s, files, _ := newTestServer(1024)
	content := []byte("month,revenue\nJan,100\n")

	files.On("Upload", mock.Anything, mock.MatchedBy(func(r app.UploadRequest) bool {
		return r.Filename == "sales.csv" && bytes.Equal(r.Data, content)
	})).Return(&app.UploadResult{
		File:       &dataset.UploadedFile{ID: core.NewID(), OriginalFilename: "sales.csv"},
		Suggestion: tabular.ChartConfiguration{XAxis: "month", YAxis: []string{"revenue"}, ChartType: tabular.ChartLine},
	}, nil)

	body, contentType := multipartBody(t, "file", "sales.csv", content)
	req := httptest.NewRequest(http.MethodPost, "/api/files", body)
	req.Header.Set("Content-Type", contentType)
	w := do(s, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var got struct {
		Suggestion tabular.ChartConfiguration `json:"suggestion"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "month", got.Suggestion.XAxis)
	files.AssertExpectations(t)
}

func TestUploadHandlerErrors(t *testing.T) {
	s, files, _ := newTestServer(16)

	body, contentType := multipartBody(t, "file", "big.csv", []byte(strings.Repeat("a", 64)))
	req := httptest.NewRequest(http.MethodPost, "/api/files", body)
	req.Header.Set("Content-Type", contentType)
	w := do(s, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, apperrors.CodeFileTooLarge, decodeError(t, w)["code"])

	body, contentType = multipartBody(t, "upload", "x.csv", []byte("a\n1\n"))
	req = httptest.NewRequest(http.MethodPost, "/api/files", body)
	req.Header.Set("Content-Type", contentType)
	w = do(s, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.CodeInvalidInput, decodeError(t, w)["code"])

	files.On("Upload", mock.Anything, mock.Anything).Return(nil, core.NewParseError("csv", nil)).Once()
	body, contentType = multipartBody(t, "file", "bad.csv", []byte("a\n1\n"))
	req = httptest.NewRequest(http.MethodPost, "/api/files", body)
	req.Header.Set("Content-Type", contentType)
	w = do(s, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperrors.CodeParseError, decodeError(t, w)["code"])
}

func TestFileRoutes(t *testing.T) {
	s, files, _ := newTestServer(1024)
	id := core.NewID()
	missing := core.NewID()

	files.On("GetFile", mock.Anything, id).Return(&dataset.UploadedFile{ID: id, Status: dataset.StatusReady}, nil)
	files.On("GetFile", mock.Anything, missing).Return(nil, core.NewNotFoundError(core.ErrFileNotFound, missing.String()))
	files.On("ListFiles", mock.Anything, 10, 20).Return([]*dataset.UploadedFile{{ID: id}}, nil)
	files.On("DeleteFile", mock.Anything, id).Return(nil)

	w := do(s, httptest.NewRequest(http.MethodGet, "/api/files/"+id.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(s, httptest.NewRequest(http.MethodGet, "/api/files/"+missing.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.CodeNotFound, decodeError(t, w)["code"])

	w = do(s, httptest.NewRequest(http.MethodGet, "/api/files/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(s, httptest.NewRequest(http.MethodGet, "/api/files?limit=10&offset=20", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(s, httptest.NewRequest(http.MethodGet, "/api/files?limit=ten", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(s, httptest.NewRequest(http.MethodDelete, "/api/files/"+id.String(), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	files.AssertExpectations(t)
}

func TestBuildSeriesRoute(t *testing.T) {
	s, _, charts := newTestServer(1024)
	id := core.NewID()
	req := series.Request{XAxis: "month", YAxis: []string{"revenue"}, ChartType: tabular.ChartBar}

	charts.On("BuildSeries", mock.Anything, id, req).Return(&tabular.SeriesData{
		Labels:   []string{"Jan"},
		Datasets: []tabular.Dataset{{Label: "revenue", Data: []float64{100}}},
	}, nil)
	charts.On("BuildSeries", mock.Anything, id, series.Request{XAxis: "month"}).Return(nil, core.ErrNoYAxisSelected)

	w := do(s, httptest.NewRequest(http.MethodPost, "/api/files/"+id.String()+"/series",
		strings.NewReader(`{"xAxis":"month","yAxis":["revenue"],"chartType":"bar"}`)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data tabular.SeriesData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	assert.Equal(t, []string{"Jan"}, data.Labels)

	w = do(s, httptest.NewRequest(http.MethodPost, "/api/files/"+id.String()+"/series", strings.NewReader(`{"xAxis":"month"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.CodeNoYAxis, decodeError(t, w)["code"])

	w = do(s, httptest.NewRequest(http.MethodPost, "/api/files/"+id.String()+"/series", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.CodeInvalidInput, decodeError(t, w)["code"])
}

func TestChartRoutes(t *testing.T) {
	s, _, charts := newTestServer(1024)
	fileID := core.NewID()
	saved := chart.NewChart(fileID, "Revenue", tabular.ChartConfiguration{XAxis: "month", YAxis: []string{"revenue"}, ChartType: tabular.ChartPie},
		tabular.SeriesData{Labels: []string{"Jan"}, Datasets: []tabular.Dataset{{Label: "revenue", Data: []float64{1}}}})

	charts.On("SaveChart", mock.Anything, app.SaveChartRequest{
		FileID: fileID, Title: "Revenue", ChartType: tabular.ChartPie, XAxis: "month", YAxis: []string{"revenue"},
	}).Return(saved, nil)
	charts.On("GetChart", mock.Anything, saved.ID).Return(saved, nil)
	charts.On("ListCharts", mock.Anything, fileID, 0, 0).Return([]*chart.Chart{saved}, nil)
	charts.On("ListCharts", mock.Anything, core.ID(""), 0, 0).Return([]*chart.Chart{}, nil)
	charts.On("DeleteChart", mock.Anything, saved.ID).Return(nil)

	body := `{"fileId":"` + strings.ToUpper(fileID.String()) + `","title":"Revenue","chartType":"pie","xAxis":"month","yAxis":["revenue"]}`
	w := do(s, httptest.NewRequest(http.MethodPost, "/api/charts", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	for _, key := range []string{"title", "chartType", "data", "metadata"} {
		assert.Contains(t, payload, key)
	}

	w = do(s, httptest.NewRequest(http.MethodGet, "/api/charts/"+saved.ID.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(s, httptest.NewRequest(http.MethodGet, "/api/charts?fileId="+fileID.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(s, httptest.NewRequest(http.MethodGet, "/api/charts", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(s, httptest.NewRequest(http.MethodGet, "/api/charts?fileId=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(s, httptest.NewRequest(http.MethodDelete, "/api/charts/"+saved.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	charts.AssertExpectations(t)
}

func TestChartTypesRoute(t *testing.T) {
	s, _, _ := newTestServer(1024)
	w := do(s, httptest.NewRequest(http.MethodGet, "/api/chart-types", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"chartTypes":["bar","line","pie","doughnut","area","scatter","radar"]}`, w.Body.String())
}

func TestInternalErrorsHideDetails(t *testing.T) {
	s, files, _ := newTestServer(1024)
	id := core.NewID()
	files.On("GetFile", mock.Anything, id).Return(nil, assert.AnError)

	w := do(s, httptest.NewRequest(http.MethodGet, "/api/files/"+id.String(), nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "Internal Server Error", body["error"])
	assert.Equal(t, apperrors.CodeInternalError, body["code"])
}
