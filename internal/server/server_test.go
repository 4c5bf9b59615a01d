package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/task"
)

type fakeAnalyzer struct {
	resp *model.AnalysisResponse
	err  error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResponse, error) {
	return f.resp, f.err
}

func newTestServer(analyzer Analyzer) *Server {
	return New(analyzer, task.NewStore(time.Minute), nil, Options{MinTextSize: 10})
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakeAnalyzer{})
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Request-ID"); got == "" {
		t.Error("expected a request ID header")
	}
}

func TestAnalyzeText(t *testing.T) {
	analyzer := &fakeAnalyzer{resp: &model.AnalysisResponse{
		TrustScore: 0.72,
		Summary:    "Looks fine.",
		Flags:      []string{},
	}}
	srv := newTestServer(analyzer)

	body := `{"text": "This is a long enough piece of text.", "url": "https://example.com/a"}`
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/text/analyze", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var resp model.AnalysisResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TrustScore != 0.72 {
		t.Errorf("trust score = %v, want 0.72", resp.TrustScore)
	}
}

func TestAnalyzeTextTooShort(t *testing.T) {
	srv := newTestServer(&fakeAnalyzer{})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/text/analyze", strings.NewReader(`{"text": "short"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "at least 10 characters") {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}
}

func TestAnalyzeTextInvalidJSON(t *testing.T) {
	srv := newTestServer(&fakeAnalyzer{})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/text/analyze", strings.NewReader("{broken")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeTextPipelineFailure(t *testing.T) {
	srv := newTestServer(&fakeAnalyzer{err: fmt.Errorf("boom")})

	body := `{"text": "This is a long enough piece of text."}`
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/text/analyze", strings.NewReader(body)))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	srv := newTestServer(&fakeAnalyzer{})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tasks/does-not-exist", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListTasks(t *testing.T) {
	tasks := task.NewStore(time.Minute)
	srv := New(&fakeAnalyzer{}, tasks, nil, Options{})
	created := tasks.Create("audio")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tasks", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var list []task.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("unexpected task list: %+v", list)
	}
}

func TestGetTask(t *testing.T) {
	tasks := task.NewStore(time.Minute)
	srv := New(&fakeAnalyzer{}, tasks, nil, Options{})
	created := tasks.Create("image")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tasks/"+created.ID, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var status task.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if status.State != task.StatePending {
		t.Errorf("state = %s, want PENDING", status.State)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(&fakeAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "caller-supplied" {
		t.Errorf("request ID = %q, want the caller's", got)
	}
}
