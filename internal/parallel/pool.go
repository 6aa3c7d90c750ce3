// Package parallel runs raster work on a fixed pool of goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines for parallel rasterization.
//
// Work items are pulled from a single shared queue. ExecuteAll blocks until
// every submitted item has run, so callers observe a fully written raster.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queue   chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// submit is held shared while queueing and exclusively by Close, so no
	// item enters the queue once done is closed.
	submit sync.RWMutex
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), workers*4),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}

	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			p.drainQueue()
			return
		case work := <-p.queue:
			work()
		}
	}
}

// drainQueue runs the work left in the queue at shutdown.
func (p *WorkerPool) drainQueue() {
	for {
		select {
		case work := <-p.queue:
			work()
		default:
			return
		}
	}
}

// ExecuteAll distributes work across workers and waits for all to complete.
// If the pool is closed, work runs on the calling goroutine.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}

	var completion sync.WaitGroup
	for _, fn := range work {
		if fn == nil {
			continue
		}
		p.submit.RLock()
		if !p.running.Load() {
			p.submit.RUnlock()
			fn()
			continue
		}

		completion.Add(1)
		p.queue <- func() {
			defer completion.Done()
			fn()
		}
		p.submit.RUnlock()
	}

	completion.Wait()
}

// Close stops the workers after they finish the queued work.
// Close is safe to call multiple times and concurrently with ExecuteAll.
func (p *WorkerPool) Close() {
	p.submit.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.submit.Unlock()
		return
	}
	close(p.done)
	p.submit.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// RowBands splits height rows into contiguous bands, about four per
// worker, and returns one work item per band calling render(y0, y1).
func RowBands(height, workers int, render func(y0, y1 int)) []func() {
	if height <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	bands := min(workers*4, height)
	step := (height + bands - 1) / bands

	work := make([]func(), 0, bands)
	for y0 := 0; y0 < height; y0 += step {
		y1 := min(y0+step, height)
		work = append(work, func() { render(y0, y1) })
	}
	return work
}
