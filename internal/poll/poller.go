// Package poll provides the fixed-interval scheduling the application
// uses to observe remote changes. There is no push/subscription channel;
// readers accept state up to one interval old.
package poll

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Task is one unit of scheduled work. It receives the poller's context
// and should return promptly once the context is cancelled.
type Task func(ctx context.Context) error

// Poller runs a task on a fixed interval until its context is cancelled.
type Poller struct {
	name     string
	interval time.Duration
}

// New creates a poller. The name only labels log lines.
func New(name string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Poller{name: name, interval: interval}
}

// Run executes the task immediately, then on every tick, and blocks
// until ctx is cancelled. Task errors are logged, not propagated; the
// next tick retries.
func (p *Poller) Run(ctx context.Context, task Task) {
	log := logrus.WithField("poller", p.name)

	runOnce := func() {
		if err := task(ctx); err != nil && ctx.Err() == nil {
			log.WithError(err).Warn("poll task failed")
		}
	}

	runOnce()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("poller stopped")
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
