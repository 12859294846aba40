package tracker

import (
	"sync"
	"time"
)

// Stats chứa thống kê về quá trình thu thập sự kiện
type Stats struct {
	IsRunning      bool      `json:"isRunning"`
	StartTime      time.Time `json:"startTime"`
	Duration       string    `json:"duration"`
	LastDuration   string    `json:"lastDuration"`
	Cycles         int64     `json:"cycles"`
	CyclesSkipped  int64     `json:"cyclesSkipped"`
	EventsFetched  int64     `json:"eventsFetched"`
	EventsInserted int64     `json:"eventsInserted"`
	ReposFailed    int64     `json:"reposFailed"`
	LastError      string    `json:"lastError"`
}

type statsKeeper struct {
	mu    sync.RWMutex
	stats Stats
}

func (k *statsKeeper) update(updateFn func(*Stats)) {
	k.mu.Lock()
	defer k.mu.Unlock()
	updateFn(&k.stats)
}

func (k *statsKeeper) snapshot() Stats {
	k.mu.RLock()
	defer k.mu.RUnlock()

	stats := k.stats
	if stats.IsRunning {
		stats.Duration = time.Since(stats.StartTime).String()
	}
	return stats
}
