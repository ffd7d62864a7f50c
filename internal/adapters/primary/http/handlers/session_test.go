package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"csv-insight-service/internal/adapters/primary/http/dto"
	"csv-insight-service/internal/adapters/secondary/memory"
	"csv-insight-service/internal/adapters/secondary/tabular"
	"csv-insight-service/internal/core/domain"
	"csv-insight-service/internal/core/services"
	"csv-insight-service/internal/testutil"
)

const cookieName = "csv_session"

type testEnv struct {
	router   *gin.Engine
	model    *testutil.MockLanguageModel
	renderer *testutil.MockChartRenderer
}

func newTestEnv(t *testing.T, maxUpload int64) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	model := new(testutil.MockLanguageModel)
	model.On("Name").Return("Gemini API").Maybe()
	renderer := new(testutil.MockChartRenderer)

	pipelineSvc := services.NewPipelineService(model, renderer, nil)
	sessionSvc := services.NewSessionService(memory.NewSessionRepository(time.Hour), tabular.NewParser(), 5)

	h := New(pipelineSvc, sessionSvc, SessionCookie{Name: cookieName, MaxAge: time.Hour}, "/charts", maxUpload)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1/csv-insight"))

	return &testEnv{router: r, model: model, renderer: renderer}
}

func uploadRequest(t *testing.T, fileName, content, question string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	if question != "" {
		require.NoError(t, mw.WriteField("question", question))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/csv-insight/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", cookieName)
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.InsightResponse {
	t.Helper()
	var resp dto.InsightResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

const salesCSV = "Region,Sales\nNorth,10\nSouth,20\nEast,30\nWest,40\nCentral,50\nIslands,60\n"

func TestUpload_StoresDatasetAndReturnsPreview(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	w := env.do(uploadRequest(t, "sales.csv", salesCSV, ""))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode(t, w)
	assert.Equal(t, "Region,Sales\nNorth,10\nSouth,20\nEast,30\nWest,40\n... (showing first 5 lines of 7 total)", resp.Preview)
	assert.Empty(t, resp.Response)
	assert.Equal(t, resp.SessionID, sessionCookie(t, w).Value)
	env.model.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestUpload_WithChartQuestion(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	env.model.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "North, 10\n") && strings.HasSuffix(p, "\nQuestion: plot of Sales by Region")
	})).Return("Sure. DATA: labels=[North,South], values=[10,20]", nil)
	env.renderer.On("Render", mock.Anything, mock.MatchedBy(func(s domain.ChartSpec) bool {
		return s.Title == "Sales by Region" && len(s.Series) == 2
	})).Return(&domain.ChartArtifact{FileName: "graph-42.png", Path: "static/charts/graph-42.png"}, nil)

	w := env.do(uploadRequest(t, "sales.csv", salesCSV, "plot of Sales by Region"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode(t, w)
	assert.True(t, resp.HasChart)
	assert.Equal(t, "graph-42.png", resp.ChartFileName)
	assert.Equal(t, "/charts/graph-42.png", resp.ChartURL)
	assert.Equal(t, "Sure. DATA: labels=[North,South], values=[10,20]\n[Graph generated and available below:graph-42.png]", resp.Response)
	assert.NotEmpty(t, resp.Preview)
	env.model.AssertExpectations(t)
	env.renderer.AssertExpectations(t)
}

func TestUpload_Errors(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  string
		maxBytes int64
		wantCode int
	}{
		{"missing file", "", "", 1 << 20, http.StatusBadRequest},
		{"empty file", "a.csv", "", 1 << 20, http.StatusBadRequest},
		{"unsupported format", "a.pdf", "x", 1 << 20, http.StatusBadRequest},
		{"malformed csv", "a.csv", "a,\"b\n", 1 << 20, http.StatusBadRequest},
		{"too large", "a.csv", salesCSV, 8, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.maxBytes)
			w := env.do(uploadRequest(t, tt.fileName, tt.content, ""))
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
		})
	}
}

func TestUpload_IgnoresUnknownSessionCookie(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	forged := "6f1c1c1e-8a55-4a5e-9f53-3a9a4d6f0b11"
	req := uploadRequest(t, "sales.csv", salesCSV, "")
	req.AddCookie(&http.Cookie{Name: cookieName, Value: forged})
	w := env.do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode(t, w)
	assert.NotEqual(t, forged, resp.SessionID)
	assert.Equal(t, resp.SessionID, sessionCookie(t, w).Value)
}

func TestUpload_ReplacesDatasetInExistingSession(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	w := env.do(uploadRequest(t, "sales.csv", salesCSV, ""))
	first := sessionCookie(t, w)

	req := uploadRequest(t, "fruit.csv", "Fruit,Count\nApple,3\n", "")
	req.AddCookie(first)
	w = env.do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, first.Value, decode(t, w).SessionID)
}

func TestAsk_WithoutUpload(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/csv-insight/ask", strings.NewReader(`{"question":"total?"}`))
	req.Header.Set("Content-Type", "application/json")
	w := env.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No CSV file uploaded yet. Please upload a file first."}`, w.Body.String())
}

func TestAsk_FollowUpUsesSessionDataset(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	w := env.do(uploadRequest(t, "sales.csv", salesCSV, ""))
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)

	env.model.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Islands, 60\n")
	})).Return("The total is 210.", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/csv-insight/ask", strings.NewReader("question=What+is+the+total%3F"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	w = env.do(req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	assert.Equal(t, "The total is 210.", resp.Response)
	assert.False(t, resp.HasChart)
	assert.Empty(t, resp.ChartURL)
	assert.Equal(t, "answered", resp.Outcome)
	env.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestAsk_EmptyQuestion(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/csv-insight/ask", strings.NewReader(`{"question":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	w := env.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), domain.ErrEmptyQuestion.Error())
}

func TestAsk_TransportFailureStillOK(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	w := env.do(uploadRequest(t, "sales.csv", salesCSV, ""))
	cookie := sessionCookie(t, w)

	env.model.On("Generate", mock.Anything, mock.Anything).Return("", assert.AnError)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/csv-insight/ask", strings.NewReader(`{"question":"chart it"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w = env.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, strings.HasPrefix(resp.Response, "Error calling Gemini API or generating graph: "))
	assert.Equal(t, "transport_failed", resp.Outcome)
}

func TestResetAndSession(t *testing.T) {
	env := newTestEnv(t, 1<<20)

	w := env.do(uploadRequest(t, "sales.csv", salesCSV, ""))
	cookie := sessionCookie(t, w)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/csv-insight/session", nil)
	req.AddCookie(cookie)
	w = env.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	var sess dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	assert.Equal(t, "sales.csv", sess.FileName)
	assert.Equal(t, 7, sess.Rows)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/csv-insight/reset", nil)
	req.AddCookie(cookie)
	w = env.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, -1, sessionCookie(t, w).MaxAge)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/csv-insight/session", nil)
	req.AddCookie(cookie)
	w = env.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
