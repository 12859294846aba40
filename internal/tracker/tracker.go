// Gói tracker điều phối chu kỳ thu thập sự kiện: fetch, xác định cutoff,
// chuẩn hoá, khử trùng lặp và lưu theo từng repository được theo dõi.

package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/thep200/github-event-tracker/cfg"
	"github.com/thep200/github-event-tracker/internal/githubapi"
	"github.com/thep200/github-event-tracker/internal/limiter"
	"github.com/thep200/github-event-tracker/internal/metrics"
	"github.com/thep200/github-event-tracker/internal/model"
	"github.com/thep200/github-event-tracker/internal/normalizer"
	reporef "github.com/thep200/github-event-tracker/internal/repo_ref"
	"github.com/thep200/github-event-tracker/pkg/log"
)

// Fetcher lấy danh sách sự kiện thô của một repository
type Fetcher interface {
	Call(ctx context.Context, repo reporef.Ref) ([]githubapi.RawEvent, error)
}

// EventStore là gateway tới kho lưu trữ sự kiện
type EventStore interface {
	FindLatestCreatedAt(org, repo string) (time.Time, bool, error)
	CreateBatch(events []model.Event) (int64, error)
}

// Publisher đẩy các sự kiện đã lưu ra kênh phụ
type Publisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
}

type Tracker struct {
	Logger   log.Logger
	Config   *cfg.Config
	Store    EventStore
	Fetcher  Fetcher
	Producer Publisher // nil khi Kafka không được cấu hình
	Repos    []reporef.Ref

	pacer   *limiter.Pacer
	running atomic.Bool
	stats   statsKeeper
}

func NewTracker(logger log.Logger, config *cfg.Config, store EventStore, fetcher Fetcher, producer Publisher) (*Tracker, error) {
	return &Tracker{
		Logger:   logger,
		Config:   config,
		Store:    store,
		Fetcher:  fetcher,
		Producer: producer,
		Repos:    reporef.ParseList(config.Tracker.Repos),
		pacer:    limiter.NewPacer(time.Duration(config.Tracker.RequestDelayMs) * time.Millisecond),
	}, nil
}

// RunOnce chạy một chu kỳ đầy đủ trên toàn bộ danh sách repository.
// Không bao giờ chạy chồng: lời gọi đến khi chu kỳ trước chưa xong bị bỏ qua.
// Lỗi của từng repository được cô lập, không làm hỏng cả chu kỳ.
func (t *Tracker) RunOnce(ctx context.Context) {
	if !t.running.CompareAndSwap(false, true) {
		t.Logger.Warn(ctx, "Previous cycle still running, skipping this tick")
		metrics.CyclesSkipped.Inc()
		t.stats.update(func(s *Stats) { s.CyclesSkipped++ })
		return
	}
	defer t.running.Store(false)

	if len(t.Repos) == 0 {
		t.Logger.Warn(ctx, "Tracked repository list is empty, nothing to ingest. Configure repos like: owner/repo")
		return
	}

	startTime := time.Now()
	t.stats.update(func(s *Stats) {
		s.IsRunning = true
		s.StartTime = startTime
		s.Cycles++
	})

	for _, repo := range t.Repos {
		if err := t.ingestRepo(ctx, repo); err != nil {
			t.Logger.Error(ctx, "[%s] failed: %v", repo, err)
			t.stats.update(func(s *Stats) {
				s.ReposFailed++
				s.LastError = err.Error()
			})
		}

		// Giãn cách giữa các repository để tôn trọng rate limit
		t.pacer.Wait(ctx)
	}

	duration := time.Since(startTime)
	metrics.CyclesCompleted.Inc()
	metrics.CycleDuration.Observe(duration.Seconds())
	t.stats.update(func(s *Stats) {
		s.IsRunning = false
		s.LastDuration = duration.String()
	})
	t.Logger.Info(ctx, "Cycle finished in %v over %d repositories", duration, len(t.Repos))
}

// ingestRepo là ranh giới lỗi cho một repository trong chu kỳ
func (t *Tracker) ingestRepo(ctx context.Context, repo reporef.Ref) error {
	rawEvents, err := t.Fetcher.Call(ctx, repo)
	if err != nil {
		metrics.FetchFailures.Inc()
		return fmt.Errorf("fetch events: %w", err)
	}

	records, err := t.buildRecords(repo, rawEvents)
	if err != nil {
		return err
	}

	var inserted int64
	if len(records) > 0 {
		inserted, err = t.Store.CreateBatch(records)
		if err != nil {
			metrics.StoreFailures.Inc()
			return fmt.Errorf("store events: %w", err)
		}
	}

	metrics.EventsFetched.Add(float64(len(rawEvents)))
	metrics.EventsInserted.Add(float64(inserted))
	t.stats.update(func(s *Stats) {
		s.EventsFetched += int64(len(rawEvents))
		s.EventsInserted += inserted
	})
	t.Logger.Info(ctx, "[%s] fetched %d events, inserted %d", repo, len(rawEvents), inserted)

	t.publish(ctx, records)
	return nil
}

// buildRecords lọc theo cutoff rồi chuẩn hoá các sự kiện còn lại.
// Bộ lọc thời gian chỉ là tối ưu, khử trùng lặp thực sự nằm ở ràng buộc id.
func (t *Tracker) buildRecords(repo reporef.Ref, rawEvents []githubapi.RawEvent) ([]model.Event, error) {
	cutoff, hasCutoff, err := t.Store.FindLatestCreatedAt(repo.Owner, repo.Name)
	if err != nil {
		return nil, fmt.Errorf("find cutoff: %w", err)
	}

	records := make([]model.Event, 0, len(rawEvents))
	for _, raw := range rawEvents {
		if hasCutoff && raw.CreatedAt.Before(cutoff) {
			continue
		}

		data := normalizer.Normalize(raw.Type, raw.Payload)
		if _, ok := data.(normalizer.UnknownEvent); ok {
			metrics.EventsUnknown.Inc()
		}

		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode event %s: %w", raw.Id, err)
		}

		var username, avatar string
		if raw.Actor != nil {
			username = raw.Actor.Login
			avatar = raw.Actor.AvatarUrl
		}

		records = append(records, model.Event{
			ID:          raw.Id,
			Org:         repo.Owner,
			Repo:        repo.Name,
			Username:    model.TruncateString(username, 250),
			Avatar:      model.TruncateString(avatar, 500),
			Type:        raw.Type,
			CreatedAt:   raw.CreatedAt,
			Data:        string(encoded),
			IsSensitive: false,
		})
	}

	return records, nil
}

// publish đẩy các bản ghi đã giữ lại lên Kafka, best effort.
// Một message lỗi chỉ được ghi log, các bản ghi còn lại vẫn được đẩy tiếp.
// Consumer insert lại cũng an toàn nhờ khử trùng lặp theo id.
func (t *Tracker) publish(ctx context.Context, records []model.Event) {
	if t.Producer == nil {
		return
	}

	for _, record := range records {
		if err := t.Producer.Publish(ctx, "event", model.NewEventMessage(record)); err != nil {
			t.Logger.Error(ctx, "Failed to publish event %s to kafka: %v", record.ID, err)
		}
	}
}

// Snapshot trả về thống kê hiện tại của tracker
func (t *Tracker) Snapshot() Stats {
	return t.stats.snapshot()
}
