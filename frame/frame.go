// Package frame coalesces bursts of signals into at most one pending pass
// per rendering frame.
package frame

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/glass"
)

// Scheduler runs a callback at the next frame.
type Scheduler interface {
	Schedule(fn func())
}

// Coalescer queues at most one pending pass. Any number of Request calls
// made before that pass runs collapse into it.
type Coalescer struct {
	sched   Scheduler
	pass    func()
	pending atomic.Bool
}

// NewCoalescer returns a Coalescer running pass on sched.
func NewCoalescer(sched Scheduler, pass func()) *Coalescer {
	return &Coalescer{sched: sched, pass: pass}
}

// Request schedules a pass unless one is already pending.
// It reports whether a new pass was scheduled.
func (c *Coalescer) Request() bool {
	if !c.pending.CompareAndSwap(false, true) {
		return false
	}
	c.sched.Schedule(c.run)
	return true
}

// Pending reports whether a pass is queued and has not run yet.
func (c *Coalescer) Pending() bool {
	return c.pending.Load()
}

func (c *Coalescer) run() {
	defer c.pending.Store(false)
	c.pass()
}

// Loop is a Scheduler that runs queued callbacks once per frame.
type Loop struct {
	mu     sync.Mutex
	queued []func()
	frames atomic.Uint64
}

// NewLoop creates an idle loop.
func NewLoop() *Loop {
	return &Loop{}
}

// Schedule implements Scheduler.
func (l *Loop) Schedule(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queued = append(l.queued, fn)
	l.mu.Unlock()
}

// Flush runs one frame: every callback queued before the call.
// Callbacks scheduled while flushing run on the next frame.
// It returns the number of callbacks run.
func (l *Loop) Flush() int {
	l.mu.Lock()
	batch := l.queued
	l.queued = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	l.frames.Add(1)
	return len(batch)
}

// Frames returns the number of frames flushed so far.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// Run flushes a frame every interval until ctx is done.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	glass.Logger().Debug("frame: loop started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Flush()
		}
	}
}
