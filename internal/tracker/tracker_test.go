package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thep200/github-event-tracker/cfg"
	"github.com/thep200/github-event-tracker/internal/githubapi"
	"github.com/thep200/github-event-tracker/internal/model"
	reporef "github.com/thep200/github-event-tracker/internal/repo_ref"
)

// nopLogger keeps test output clean
type nopLogger struct{}

func (nopLogger) Info(ctx context.Context, format string, args ...interface{})  {}
func (nopLogger) Error(ctx context.Context, format string, args ...interface{}) {}
func (nopLogger) Warn(ctx context.Context, format string, args ...interface{})  {}
func (nopLogger) Debug(ctx context.Context, format string, args ...interface{}) {}

type fakeFetcher struct {
	calls  int
	events map[string][]githubapi.RawEvent
	errs   map[string]error
}

func (f *fakeFetcher) Call(ctx context.Context, repo reporef.Ref) ([]githubapi.RawEvent, error) {
	f.calls++
	if err := f.errs[repo.String()]; err != nil {
		return nil, err
	}
	return f.events[repo.String()], nil
}

// fakeStore enforces id uniqueness the way the real store does
type fakeStore struct {
	insertCalls int
	cutoffErr   error
	insertErr   error
	stored      map[string]model.Event
	batches     [][]model.Event
}

func newFakeStore() *fakeStore {
	return &fakeStore{stored: make(map[string]model.Event)}
}

func (s *fakeStore) FindLatestCreatedAt(org, repo string) (time.Time, bool, error) {
	if s.cutoffErr != nil {
		return time.Time{}, false, s.cutoffErr
	}
	var latest time.Time
	found := false
	for _, event := range s.stored {
		if event.Org == org && event.Repo == repo && event.CreatedAt.After(latest) {
			latest = event.CreatedAt
			found = true
		}
	}
	return latest, found, nil
}

func (s *fakeStore) CreateBatch(events []model.Event) (int64, error) {
	s.insertCalls++
	if s.insertErr != nil {
		return 0, s.insertErr
	}
	s.batches = append(s.batches, events)
	var inserted int64
	for _, event := range events {
		if _, exists := s.stored[event.ID]; exists {
			continue
		}
		s.stored[event.ID] = event
		inserted++
	}
	return inserted, nil
}

type fakePublisher struct {
	published []interface{}
	failIDs   map[string]bool
}

func (p *fakePublisher) Publish(ctx context.Context, key string, value interface{}) error {
	if msg, ok := value.(model.EventMessage); ok && p.failIDs[msg.ID] {
		return errors.New("kafka unavailable")
	}
	p.published = append(p.published, value)
	return nil
}

func testConfig(repos ...string) *cfg.Config {
	loader, _ := cfg.NewMockLoader()
	config, _ := loader.Load()
	config.Tracker.Repos = repos
	config.Tracker.RequestDelayMs = 0
	return config
}

func rawEvent(id string, eventType string, createdAt time.Time) githubapi.RawEvent {
	return githubapi.RawEvent{
		Id:        id,
		Type:      eventType,
		Actor:     &githubapi.Actor{Login: "octocat", AvatarUrl: "https://x/a.png"},
		CreatedAt: createdAt,
		Payload:   map[string]interface{}{"action": "started"},
	}
}

func TestRunOnceStoresEvents(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{events: map[string][]githubapi.RawEvent{
		"golang/go": {
			rawEvent("1", "WatchEvent", base),
			rawEvent("2", "WatchEvent", base.Add(time.Minute)),
		},
	}}
	store := newFakeStore()

	trk, err := NewTracker(nopLogger{}, testConfig("golang/go"), store, fetcher, nil)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	trk.RunOnce(context.Background())

	if len(store.stored) != 2 {
		t.Fatalf("stored %d events, want 2", len(store.stored))
	}
	event := store.stored["1"]
	if event.Org != "golang" || event.Repo != "go" {
		t.Errorf("event org/repo = %s/%s, want golang/go", event.Org, event.Repo)
	}
	if event.Username != "octocat" {
		t.Errorf("username = %q, want octocat", event.Username)
	}
	if event.IsSensitive {
		t.Error("is_sensitive must always be false at ingestion")
	}

	stats := trk.Snapshot()
	if stats.EventsInserted != 2 {
		t.Errorf("stats.EventsInserted = %d, want 2", stats.EventsInserted)
	}
}

func TestRunOnceIdempotent(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{events: map[string][]githubapi.RawEvent{
		"golang/go": {
			rawEvent("1", "WatchEvent", base),
			rawEvent("2", "WatchEvent", base.Add(time.Minute)),
		},
	}}
	store := newFakeStore()
	trk, _ := NewTracker(nopLogger{}, testConfig("golang/go"), store, fetcher, nil)

	trk.RunOnce(context.Background())
	firstCount := len(store.stored)
	trk.RunOnce(context.Background())

	if firstCount != 2 {
		t.Fatalf("first cycle stored %d events, want 2", firstCount)
	}
	if len(store.stored) != 2 {
		t.Errorf("second cycle stored %d new events, want 0", len(store.stored)-firstCount)
	}
}

func TestCutoffFilter(t *testing.T) {
	cutoff := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.stored["old"] = model.Event{ID: "old", Org: "golang", Repo: "go", CreatedAt: cutoff}

	fetcher := &fakeFetcher{events: map[string][]githubapi.RawEvent{
		"golang/go": {
			rawEvent("before", "WatchEvent", cutoff.Add(-time.Second)),
			rawEvent("at", "WatchEvent", cutoff),
			rawEvent("after", "WatchEvent", cutoff.Add(time.Second)),
		},
	}}
	trk, _ := NewTracker(nopLogger{}, testConfig("golang/go"), store, fetcher, nil)
	trk.RunOnce(context.Background())

	if len(store.batches) != 1 {
		t.Fatalf("insert batches = %d, want 1", len(store.batches))
	}

	// Sự kiện đúng bằng cutoff phải được giữ lại, cũ hơn bị lọc bỏ
	batch := store.batches[0]
	if len(batch) != 2 {
		t.Fatalf("retained %d events, want 2", len(batch))
	}
	ids := map[string]bool{}
	for _, event := range batch {
		ids[event.ID] = true
	}
	if !ids["at"] || !ids["after"] || ids["before"] {
		t.Errorf("retained ids = %v, want {at, after}", ids)
	}
}

func TestOverlapGuard(t *testing.T) {
	fetcher := &fakeFetcher{events: map[string][]githubapi.RawEvent{}}
	store := newFakeStore()
	trk, _ := NewTracker(nopLogger{}, testConfig("golang/go"), store, fetcher, nil)

	trk.running.Store(true)
	trk.RunOnce(context.Background())

	if fetcher.calls != 0 {
		t.Errorf("fetch calls = %d, want 0 while a cycle is running", fetcher.calls)
	}
	if store.insertCalls != 0 {
		t.Errorf("insert calls = %d, want 0 while a cycle is running", store.insertCalls)
	}
	if trk.Snapshot().CyclesSkipped != 1 {
		t.Errorf("cyclesSkipped = %d, want 1", trk.Snapshot().CyclesSkipped)
	}
}

func TestEmptyRepoList(t *testing.T) {
	fetcher := &fakeFetcher{}
	store := newFakeStore()
	trk, _ := NewTracker(nopLogger{}, testConfig(), store, fetcher, nil)

	trk.RunOnce(context.Background())

	if fetcher.calls != 0 {
		t.Errorf("fetch calls = %d, want 0 for empty repo list", fetcher.calls)
	}
	if trk.running.Load() {
		t.Error("running flag must be released")
	}
}

func TestPerRepoFailureIsolation(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{
		events: map[string][]githubapi.RawEvent{
			"torvalds/linux": {rawEvent("1", "WatchEvent", base)},
		},
		errs: map[string]error{
			"golang/go": errors.New("boom"),
		},
	}
	store := newFakeStore()
	trk, _ := NewTracker(nopLogger{}, testConfig("golang/go", "torvalds/linux"), store, fetcher, nil)

	trk.RunOnce(context.Background())

	if fetcher.calls != 2 {
		t.Errorf("fetch calls = %d, want 2", fetcher.calls)
	}
	if len(store.stored) != 1 {
		t.Errorf("stored %d events, want 1 from the healthy repo", len(store.stored))
	}

	stats := trk.Snapshot()
	if stats.ReposFailed != 1 {
		t.Errorf("reposFailed = %d, want 1", stats.ReposFailed)
	}
	if stats.LastError == "" {
		t.Error("lastError must record the failure")
	}
}

func TestStoreFailureIsolation(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{events: map[string][]githubapi.RawEvent{
		"golang/go":      {rawEvent("1", "WatchEvent", base)},
		"torvalds/linux": {rawEvent("2", "WatchEvent", base)},
	}}
	store := newFakeStore()
	store.insertErr = errors.New("connection lost")
	trk, _ := NewTracker(nopLogger{}, testConfig("golang/go", "torvalds/linux"), store, fetcher, nil)

	trk.RunOnce(context.Background())

	// Lỗi store của một repo không chặn repo tiếp theo
	if fetcher.calls != 2 {
		t.Errorf("fetch calls = %d, want 2", fetcher.calls)
	}
	if trk.Snapshot().ReposFailed != 2 {
		t.Errorf("reposFailed = %d, want 2", trk.Snapshot().ReposFailed)
	}
}

func TestPublishesStoredEvents(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{events: map[string][]githubapi.RawEvent{
		"golang/go": {rawEvent("1", "WatchEvent", base)},
	}}
	store := newFakeStore()
	publisher := &fakePublisher{}
	trk, _ := NewTracker(nopLogger{}, testConfig("golang/go"), store, fetcher, publisher)

	trk.RunOnce(context.Background())

	if len(publisher.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(publisher.published))
	}
	msg, ok := publisher.published[0].(model.EventMessage)
	if !ok {
		t.Fatalf("published message type = %T, want model.EventMessage", publisher.published[0])
	}
	if msg.ID != "1" || msg.Org != "golang" {
		t.Errorf("message = %+v, want id 1 org golang", msg)
	}
}

func TestPublishContinuesAfterError(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{events: map[string][]githubapi.RawEvent{
		"golang/go": {
			rawEvent("1", "WatchEvent", base),
			rawEvent("2", "WatchEvent", base.Add(time.Minute)),
			rawEvent("3", "WatchEvent", base.Add(2*time.Minute)),
		},
	}}
	store := newFakeStore()
	publisher := &fakePublisher{failIDs: map[string]bool{"2": true}}
	trk, _ := NewTracker(nopLogger{}, testConfig("golang/go"), store, fetcher, publisher)

	trk.RunOnce(context.Background())

	// Một message lỗi không làm rơi các bản ghi đứng sau nó
	if len(publisher.published) != 2 {
		t.Fatalf("published %d messages, want 2", len(publisher.published))
	}
	ids := map[string]bool{}
	for _, value := range publisher.published {
		msg := value.(model.EventMessage)
		ids[msg.ID] = true
	}
	if !ids["1"] || !ids["3"] {
		t.Errorf("published ids = %v, want {1, 3}", ids)
	}
}

func TestNormalizedDataStored(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	event := rawEvent("1", "WatchEvent", base)
	fetcher := &fakeFetcher{events: map[string][]githubapi.RawEvent{
		"golang/go": {event},
	}}
	store := newFakeStore()
	trk, _ := NewTracker(nopLogger{}, testConfig("golang/go"), store, fetcher, nil)

	trk.RunOnce(context.Background())

	stored := store.stored["1"]
	want := `{"type":"WatchEvent","action":"started"}`
	if stored.Data != want {
		t.Errorf("data = %s, want %s", stored.Data, want)
	}
}
