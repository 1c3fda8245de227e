package reconciler

import (
	"context"
	"time"
)

const defaultPollInterval = 30 * time.Second

// Poller refreshes the cart once at start and then on a fixed interval. No
// backoff and no retry: a failed refresh already logged itself and the next
// tick is the recovery path.
type Poller struct {
	rec      *Reconciler
	interval time.Duration
}

func NewPoller(rec *Reconciler, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{rec: rec, interval: interval}
}

// Run blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	_ = p.rec.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = p.rec.Refresh(ctx)
		case <-ctx.Done():
			return
		}
	}
}
