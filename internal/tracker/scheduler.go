package tracker

import (
	"context"
	"time"

	"github.com/thep200/github-event-tracker/pkg/log"
)

// Scheduler chạy một chu kỳ ngay khi khởi động, sau đó theo chu kỳ cố định.
// Chỉ một timer duy nhất, tick đến khi chu kỳ đang chạy sẽ bị bỏ qua
// nhờ guard trong Tracker.RunOnce.
type Scheduler struct {
	Logger   log.Logger
	Tracker  *Tracker
	Interval time.Duration
}

func NewScheduler(logger log.Logger, tracker *Tracker, interval time.Duration) (*Scheduler, error) {
	return &Scheduler{
		Logger:   logger,
		Tracker:  tracker,
		Interval: interval,
	}, nil
}

// Run chạy cho đến khi context bị huỷ. Việc huỷ dừng phát chu kỳ mới
// và chờ chu kỳ đang chạy kết thúc, không cắt ngang giữa chừng.
func (s *Scheduler) Run(ctx context.Context) {
	cycleCtx := context.WithoutCancel(ctx)

	s.Tracker.RunOnce(cycleCtx)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Logger.Info(ctx, "Scheduler stopped")
			return
		case <-ticker.C:
			s.Tracker.RunOnce(cycleCtx)
		}
	}
}
