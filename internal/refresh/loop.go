// Package refresh samples a telemetry source on a fixed period, off the UI
// goroutine, and hands each snapshot to a UI-side callback.
package refresh

import (
	"context"
	"sync"
	"time"

	"obd-dashboard.klederson.com/internal/config"
	"obd-dashboard.klederson.com/internal/errors"
	"obd-dashboard.klederson.com/internal/logger"
	"obd-dashboard.klederson.com/internal/telemetry"
)

// PostFunc delivers a snapshot to the UI goroutine. It must not block for
// long; tea.Program.Send and a buffered channel send both qualify.
type PostFunc func(telemetry.Snapshot)

// Loop drives one source at a fixed interval.
type Loop struct {
	source   telemetry.Source
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a loop. A non-positive interval uses the default.
func New(source telemetry.Source, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = config.DefaultRefreshInterval
	}
	return &Loop{source: source, interval: interval}
}

// Interval is the sampling period.
func (l *Loop) Interval() time.Duration { return l.interval }

// Run samples immediately and then once per interval until ctx is
// cancelled. A tick that panics is logged and the loop carries on.
func (l *Loop) Run(ctx context.Context, post PostFunc) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.tick(ctx, post)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.tick(ctx, post)
		}
	}
}

func (l *Loop) tick(ctx context.Context, post PostFunc) {
	Guard("tick", func() {
		snap := l.source.Sample(ctx)
		if ctx.Err() != nil {
			return
		}
		post(snap)
	})
}

// Guard runs fn and recovers a panic from it, logging it under name.
// It reports whether fn returned normally.
func Guard(name string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.Newf(errors.ErrRefreshLoop, "%s panicked: %v", name, r)
			logger.ErrorWithCode(err).Msg("Refresh step failed")
			ok = false
		}
	}()
	fn()
	return true
}

// Start runs the loop in the background until Stop.
func (l *Loop) Start(post PostFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		l.Run(ctx, post)
	}(l.done)
}

// Stop halts a started loop and waits for the in-flight tick to finish.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
