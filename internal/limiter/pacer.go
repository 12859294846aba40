package limiter

import (
	"context"
	"time"
)

// Pacer giãn cách các request ra bên ngoài với một khoảng chờ cố định
// để tôn trọng rate limit của upstream
type Pacer struct {
	delay time.Duration
}

func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay}
}

// Wait chờ hết khoảng giãn cách hoặc đến khi context bị huỷ
func (p *Pacer) Wait(ctx context.Context) {
	if p.delay <= 0 {
		return
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
