package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"courierdispatch/internal/domain"
)

type recordingComputer struct {
	calls int64
	mu    sync.Mutex
	seen  map[string]bool
	fail  domain.Coord
}

func (r *recordingComputer) Route(ctx context.Context, start, end domain.Coord) (domain.Route, float64, error) {
	atomic.AddInt64(&r.calls, 1)
	r.mu.Lock()
	if r.seen == nil {
		r.seen = map[string]bool{}
	}
	r.seen[start.String()+"|"+end.String()] = true
	r.mu.Unlock()
	return domain.Route{}, 1.0, nil
}

func TestWarmerVisitsEveryOrderedPair(t *testing.T) {
	a := mustCoord(t, "0.0", "0.0")
	b := mustCoord(t, "1.0", "1.0")
	c := mustCoord(t, "2.0", "2.0")

	rc := &recordingComputer{}
	w := NewWarmer(rc, 2)

	if err := w.Warm(context.Background(), []domain.Coord{a, b, c}); err != nil {
		t.Fatalf("Warm: %v", err)
	}

	if rc.calls != 6 {
		t.Fatalf("calls = %d, want 6 (3 coords, 2 distinct ordered pairs each)", rc.calls)
	}
	for _, pair := range []string{
		a.String() + "|" + b.String(),
		b.String() + "|" + a.String(),
		a.String() + "|" + c.String(),
		c.String() + "|" + a.String(),
		b.String() + "|" + c.String(),
		c.String() + "|" + b.String(),
	} {
		if !rc.seen[pair] {
			t.Errorf("missing pair %q", pair)
		}
	}
}

func TestWarmerDefaultsConcurrencyToOne(t *testing.T) {
	w := NewWarmer(&recordingComputer{}, 0)
	if w.concurrency != 1 {
		t.Fatalf("concurrency = %d, want 1", w.concurrency)
	}
}
