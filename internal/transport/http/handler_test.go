package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"quiz-solver-service/internal/domain"
)

type captureScheduler struct {
	scheduled []domain.QuizRequest
}

func (s *captureScheduler) Schedule(req domain.QuizRequest) {
	s.scheduled = append(s.scheduled, req)
}

func newTestHandler() (*Handler, *captureScheduler) {
	sched := &captureScheduler{}
	return NewHandler("s3cret", sched, zerolog.Nop()), sched
}

func TestServeQuizSchedulesRun(t *testing.T) {
	handler, sched := newTestHandler()

	body := `{"email":"a@b.c","secret":"s3cret","url":"https://quiz.example.com/1"}`
	req := httptest.NewRequest(http.MethodPost, "/quiz", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeQuiz(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Quiz received") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if len(sched.scheduled) != 1 {
		t.Fatalf("expected one scheduled run, got %d", len(sched.scheduled))
	}
	if sched.scheduled[0].URL != "https://quiz.example.com/1" {
		t.Fatalf("unexpected scheduled request: %+v", sched.scheduled[0])
	}
}

func TestServeQuizRejectsBadSecret(t *testing.T) {
	handler, sched := newTestHandler()

	body := `{"email":"a@b.c","secret":"wrong","url":"https://quiz.example.com/1"}`
	req := httptest.NewRequest(http.MethodPost, "/quiz", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeQuiz(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid secret") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if len(sched.scheduled) != 0 {
		t.Fatalf("expected no scheduled runs, got %d", len(sched.scheduled))
	}
}

func TestServeQuizRejectsBadRequests(t *testing.T) {
	handler, sched := newTestHandler()

	cases := map[string]struct {
		method string
		body   string
		want   int
	}{
		"wrong method":   {http.MethodGet, "", http.StatusMethodNotAllowed},
		"broken json":    {http.MethodPost, "{", http.StatusBadRequest},
		"missing fields": {http.MethodPost, `{"email":"a@b.c"}`, http.StatusBadRequest},
	}
	for name, tc := range cases {
		req := httptest.NewRequest(tc.method, "/quiz", strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		handler.ServeQuiz(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", name, tc.want, rec.Code)
		}
	}
	if len(sched.scheduled) != 0 {
		t.Fatalf("expected no scheduled runs, got %d", len(sched.scheduled))
	}
}

func TestServeRoot(t *testing.T) {
	handler, _ := newTestHandler()

	rec := httptest.NewRecorder()
	handler.ServeRoot(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "The quiz API is running") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeRoot(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", rec.Code)
	}
}
