package http

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"quiz-solver-service/internal/domain"
)

// Scheduler hands a quiz request off for asynchronous execution.
type Scheduler interface {
	Schedule(req domain.QuizRequest)
}

// Handler owns the inbound HTTP surface: the quiz trigger and the liveness root.
type Handler struct {
	secret string
	sched  Scheduler
	log    zerolog.Logger
}

func NewHandler(secret string, sched Scheduler, log zerolog.Logger) *Handler {
	return &Handler{secret: secret, sched: sched, log: log}
}

// ServeQuiz accepts a quiz trigger, checks the shared secret, schedules a
// background run, and acknowledges immediately. The response says nothing
// about how the run later fares; outcomes live in logs only.
func (h *Handler) ServeQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return
	}
	if req.Email == "" || req.Secret == "" || req.URL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "missing email, secret, or url"})
		return
	}

	if req.Secret != h.secret {
		h.log.Warn().Str("email", req.Email).Msg("invalid secret on quiz request")
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Invalid secret"})
		return
	}

	h.sched.Schedule(req)
	h.log.Info().Str("email", req.Email).Str("quiz_url", req.URL).Msg("quiz request scheduled")
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Quiz received and is being processed."})
}

// ServeRoot answers the liveness probe on exactly "/".
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "The quiz API is running. Send a POST request to /quiz to start.",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
