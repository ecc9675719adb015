package app

import (
	"sync"

	"quiz-solver-service/internal/domain"
)

// RunBroker fans pipeline events out to live subscribers (the /events
// websocket). Subscribers that fall behind lose their oldest event rather
// than blocking a run.
type RunBroker struct {
	mu          sync.Mutex
	subscribers map[chan domain.RunEvent]struct{}
}

func NewRunBroker() *RunBroker {
	return &RunBroker{
		subscribers: make(map[chan domain.RunEvent]struct{}),
	}
}

// Subscribe returns a channel of run events. The caller must invoke the
// returned cancel function to avoid leaks.
func (b *RunBroker) Subscribe() (<-chan domain.RunEvent, func()) {
	ch := make(chan domain.RunEvent, 16)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber without ever blocking the
// publishing run.
func (b *RunBroker) Publish(event domain.RunEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- event
		}
	}
}
