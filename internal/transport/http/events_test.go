package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"quiz-solver-service/internal/app"
	"quiz-solver-service/internal/domain"
)

func TestServeEventsStreamsRunEvents(t *testing.T) {
	broker := app.NewRunBroker()
	handler := NewEventsHandler(broker, zerolog.Nop())

	server := httptest.NewServer(http.HandlerFunc(handler.ServeEvents))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The handler subscribes shortly after the handshake; keep publishing
	// until the event lands.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				broker.Publish(domain.RunEvent{RunID: "r1", Stage: "solve", Message: "computing answer"})
			case <-stop:
				return
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event domain.RunEvent
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if event.RunID != "r1" || event.Stage != "solve" {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestServeEventsRejectsPlainHTTP(t *testing.T) {
	handler := NewEventsHandler(app.NewRunBroker(), zerolog.Nop())

	rec := httptest.NewRecorder()
	handler.ServeEvents(rec, httptest.NewRequest(http.MethodGet, "/events", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-websocket request, got %d", rec.Code)
	}
}
