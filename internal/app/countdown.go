package app

import (
	"sync"
	"time"
)

// Countdown is a single-use per-question timer. It ticks once per interval,
// reporting the remaining seconds, and fires onExpire exactly once when the
// count reaches zero. Cancel stops all further callbacks.
//
// The interval is one second in production; tests inject a shorter one.
type Countdown struct {
	interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
}

func NewCountdown(interval time.Duration) *Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start begins ticking from seconds down to zero. It must be called at most
// once per Countdown; the session allocates a fresh one for every question.
func (c *Countdown) Start(seconds int, onTick func(remaining int), onExpire func()) {
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		remaining := seconds
		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				if c.canceled() {
					return
				}
				remaining--
				if onTick != nil {
					onTick(remaining)
				}
				if remaining <= 0 {
					c.Cancel()
					if onExpire != nil {
						onExpire()
					}
					return
				}
			}
		}
	}()
}

// Cancel stops the countdown. It is idempotent and safe to call from tick
// callbacks; a tick already in flight may still be delivered, so callers
// guard submission with their own already-submitted flag.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stopped {
		c.stopped = true
		close(c.stop)
	}
}

func (c *Countdown) canceled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}
