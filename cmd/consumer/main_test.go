package main

import (
	"context"
	"testing"
	"time"

	"github.com/thep200/github-event-tracker/internal/model"
)

type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, format string, args ...interface{})  {}
func (nopLogger) Error(ctx context.Context, format string, args ...interface{}) {}
func (nopLogger) Warn(ctx context.Context, format string, args ...interface{})  {}
func (nopLogger) Debug(ctx context.Context, format string, args ...interface{}) {}

type fakeBatchStore struct {
	batches [][]model.Event
	flushed chan struct{}
}

func (s *fakeBatchStore) CreateBatch(events []model.Event) (int64, error) {
	s.batches = append(s.batches, events)
	if s.flushed != nil {
		s.flushed <- struct{}{}
	}
	return int64(len(events)), nil
}

func TestProcessBatchedEventsFlushesOnShutdown(t *testing.T) {
	store := &fakeBatchStore{}
	messages := make(chan model.EventMessage, 10)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		// Batch size và timeout lớn để chỉ shutdown mới kích hoạt flush
		processBatchedEvents(ctx, messages, 100, time.Hour, nopLogger{}, store)
		close(done)
	}()

	messages <- model.EventMessage{ID: "1", Org: "golang", Repo: "go", Type: "WatchEvent"}
	messages <- model.EventMessage{ID: "2", Org: "golang", Repo: "go", Type: "WatchEvent"}
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("processor did not stop after context cancellation")
	}

	// Batch dở dang phải được flush trước khi processor trả về,
	// để main có thể đóng database an toàn sau đó
	if len(store.batches) != 1 {
		t.Fatalf("flushed %d batches, want 1", len(store.batches))
	}
	if len(store.batches[0]) != 2 {
		t.Errorf("flushed %d events, want 2", len(store.batches[0]))
	}
}

func TestProcessBatchedEventsFlushesFullBatch(t *testing.T) {
	store := &fakeBatchStore{flushed: make(chan struct{}, 1)}
	messages := make(chan model.EventMessage, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		processBatchedEvents(ctx, messages, 2, time.Hour, nopLogger{}, store)
		close(done)
	}()

	messages <- model.EventMessage{ID: "1"}
	messages <- model.EventMessage{ID: "2"}

	select {
	case <-store.flushed:
	case <-time.After(time.Second):
		t.Fatal("full batch was never flushed")
	}

	cancel()
	<-done
	if len(store.batches[0]) != 2 {
		t.Errorf("flushed %d events, want 2", len(store.batches[0]))
	}
}
