package memory

import (
	"context"
	"sync"
)

// VisitedSet is the in-memory cycle guard used when no Redis is configured.
type VisitedSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[string]struct{})}
}

// Visit marks url as attempted and reports whether this was its first visit.
func (s *VisitedSet) Visit(_ context.Context, url string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[url]; ok {
		return false, nil
	}
	s.seen[url] = struct{}{}
	return true, nil
}
