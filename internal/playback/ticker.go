package playback

import (
	"sync"
	"time"
)

// Ticker runs a fixed-period callback while a replay is playing. At most one
// loop is active at a time; Start while running is a no-op and Stop is safe
// to call from inside the callback and from other goroutines. The loop must
// be stopped whenever the clock leaves the playing state or the owning view
// closes, otherwise it keeps firing against a torn-down surface.
type Ticker struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

// NewTicker creates a stopped ticker with the given period. A non-positive
// interval falls back to the standard tick.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Duration(TickIntervalMs) * time.Millisecond
	}
	return &Ticker{interval: interval}
}

// Start launches the tick loop, invoking fn with the elapsed real
// milliseconds of each period until Stop is called.
func (t *Ticker) Start(fn func(elapsedMs int64)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	stop := make(chan struct{})
	t.stop = stop
	elapsed := t.interval.Milliseconds()

	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fn(elapsed)
			}
		}
	}()
}

// Stop terminates the tick loop. Safe to call on a stopped ticker.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == nil {
		return
	}
	close(t.stop)
	t.stop = nil
}

// Running reports whether the tick loop is active.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}
