package http

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"quiz-solver-service/internal/app"
)

// EventsHandler streams run events over a websocket. It is push-only: clients
// watch runs progress, they cannot query results.
type EventsHandler struct {
	broker   *app.RunBroker
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewEventsHandler(broker *app.RunBroker, log zerolog.Logger) *EventsHandler {
	return &EventsHandler{
		broker: broker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// ServeEvents upgrades the connection and forwards broker events until the
// client goes away.
func (h *EventsHandler) ServeEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("events upgrade failed")
		return
	}
	defer conn.Close()

	events, cancel := h.broker.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				h.log.Warn().Err(err).Msg("events write failed")
				return
			}
		case <-done:
			return
		}
	}
}
