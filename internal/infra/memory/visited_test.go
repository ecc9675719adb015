package memory

import (
	"context"
	"testing"
)

func TestVisitedSetTracksURLs(t *testing.T) {
	set := NewVisitedSet()
	ctx := context.Background()

	first, err := set.Visit(ctx, "https://x/1")
	if err != nil {
		t.Fatalf("visit: %v", err)
	}
	if !first {
		t.Fatalf("expected first visit to report true")
	}

	again, err := set.Visit(ctx, "https://x/1")
	if err != nil {
		t.Fatalf("visit again: %v", err)
	}
	if again {
		t.Fatalf("expected repeat visit to report false")
	}

	other, err := set.Visit(ctx, "https://x/2")
	if err != nil {
		t.Fatalf("visit other: %v", err)
	}
	if !other {
		t.Fatalf("expected distinct url to report true")
	}
}
