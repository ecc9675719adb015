package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// VisitedSet records quiz URLs attempted recently so chained runs cannot loop
// through the same quiz twice. Entries expire after ttl; a quiz series is a
// short-lived affair and stale guards should not block tomorrow's runs.
type VisitedSet struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVisitedSet(client *redis.Client, ttl time.Duration) *VisitedSet {
	return &VisitedSet{client: client, ttl: ttl}
}

// Visit marks url as attempted and reports whether this was its first visit.
func (s *VisitedSet) Visit(ctx context.Context, url string) (bool, error) {
	return s.client.SetNX(ctx, s.key(url), "1", s.ttl).Result()
}

func (s *VisitedSet) key(url string) string {
	return "quiz:visited:" + url
}
