package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/thep200/github-event-tracker/internal/githubapi"
)

func TestSchedulerRunsImmediatelyThenOnInterval(t *testing.T) {
	fetcher := &fakeFetcher{events: map[string][]githubapi.RawEvent{}}
	store := newFakeStore()
	trk, _ := NewTracker(nopLogger{}, testConfig("golang/go"), store, fetcher, nil)

	scheduler, err := NewScheduler(nopLogger{}, trk, 30*time.Millisecond)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}

	// Một chu kỳ ngay khi khởi động cộng thêm các tick theo interval
	if fetcher.calls < 2 {
		t.Errorf("fetch calls = %d, want at least 2", fetcher.calls)
	}
}
