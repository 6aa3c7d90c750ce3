package contrast

import (
	"github.com/gogpu/glass"
	"github.com/gogpu/glass/frame"
)

// Watcher recolors the nav text in response to scroll and resize signals,
// at most once per frame.
type Watcher struct {
	sel      *Selector
	dst      ClassApplier
	coalesce *frame.Coalescer
	passes   int
	last     Class
}

// NewWatcher creates a Watcher scheduling passes on sched.
func NewWatcher(sel *Selector, dst ClassApplier, sched frame.Scheduler) *Watcher {
	w := &Watcher{sel: sel, dst: dst}
	w.coalesce = frame.NewCoalescer(sched, w.pass)
	return w
}

// Notify records a scroll or resize signal.
func (w *Watcher) Notify() {
	w.coalesce.Request()
}

// RecolorNow runs a pass immediately, as done once at initialization.
func (w *Watcher) RecolorNow() (Class, error) {
	w.passes++
	c, err := w.sel.Recolor(w.dst)
	w.last = c
	return c, err
}

// Passes returns the number of recoloring passes run so far.
// It must be read from the goroutine running the scheduler.
func (w *Watcher) Passes() int {
	return w.passes
}

// Last returns the class applied by the most recent pass.
func (w *Watcher) Last() Class {
	return w.last
}

func (w *Watcher) pass() {
	if _, err := w.RecolorNow(); err != nil {
		glass.Logger().Warn("contrast: recolor failed", "err", err)
	}
}
