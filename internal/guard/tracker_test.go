package guard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestBeginSupersedesEarlierToken(t *testing.T) {
	tracker := NewTracker()

	first := tracker.Begin("session-1")
	if !first.Current() {
		t.Fatalf("expected fresh token to be current")
	}
	second := tracker.Begin("session-1")
	if first.Current() {
		t.Fatalf("expected first token to be stale after a newer Begin")
	}
	if !second.Current() {
		t.Fatalf("expected latest token to be current")
	}
	if !errors.Is(first.Check(context.Background()), ErrStale) {
		t.Fatalf("expected ErrStale from superseded token")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	tracker := NewTracker()
	a := tracker.Begin("a")
	_ = tracker.Begin("b")
	if !a.Current() {
		t.Fatalf("a new generation on another key must not supersede")
	}
}

func TestCheckReportsCancelledContext(t *testing.T) {
	tracker := NewTracker()
	tok := tracker.Begin("page")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tok.Check(ctx)
	if !errors.Is(err, ErrStale) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected stale and canceled, got %v", err)
	}
}

func TestCheckIgnoresExpiredDeadline(t *testing.T) {
	tracker := NewTracker()
	tok := tracker.Begin("page")
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	if err := tok.Check(ctx); err != nil {
		t.Fatalf("expected an expired deadline not to be stale, got %v", err)
	}
	_ = tracker.Begin("page")
	if !errors.Is(tok.Check(ctx), ErrStale) {
		t.Fatalf("expected superseded token to be stale regardless of deadline")
	}
}

func TestDoneOnlyReleasesLatestGeneration(t *testing.T) {
	tracker := NewTracker()
	old := tracker.Begin("k")
	latest := tracker.Begin("k")

	old.Done()
	if !latest.Current() {
		t.Fatalf("releasing an old token must not affect the latest")
	}
	latest.Done()
	if len(tracker.generations) != 0 {
		t.Fatalf("expected key released, got %v", tracker.generations)
	}
}

func TestZeroTokenIsCurrent(t *testing.T) {
	var tok Token
	if !tok.Current() || tok.Check(context.Background()) != nil {
		t.Fatalf("zero token should always be current")
	}
}

func TestConcurrentBegin(t *testing.T) {
	tracker := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tracker.Begin("shared").Current()
		}()
	}
	wg.Wait()
	if got := tracker.Begin("shared").generation; got != 51 {
		t.Fatalf("expected generation 51, got %d", got)
	}
}

func TestReleasedKeyDoesNotReviveOldToken(t *testing.T) {
	tracker := NewTracker()
	old := tracker.Begin("k")
	latest := tracker.Begin("k")
	latest.Done()

	_ = tracker.Begin("k")
	if old.Current() {
		t.Fatalf("old token must stay stale after the key is reused")
	}
}
