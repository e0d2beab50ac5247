package workers

import (
	"context"
	"runtime"
	"sync"
)

// Job is one unit of work, usually a band of field rows.
type Job func()

// Pool runs jobs on a fixed set of goroutines.
type Pool struct {
	jobQueue chan Job
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup // workers
	pending  sync.WaitGroup // submitted jobs not yet finished

	mu     sync.RWMutex // held shared by submitters, exclusively by Shutdown
	closed bool
}

// NewPool starts workers goroutines reading from a queue of queueSize.
// workers <= 0 uses GOMAXPROCS.
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobQueue: make(chan Job, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Workers returns the number of goroutines.
func (p *Pool) Workers() int { return p.workers }

// Submit queues a job without blocking. It returns false if the queue is
// full or the pool has been shut down.
func (p *Pool) Submit(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	p.pending.Add(1)
	select {
	case p.jobQueue <- job:
		return true
	default:
		p.pending.Done()
		return false
	}
}

// SubmitBlocking queues a job, waiting for room. It returns false once the
// pool has been shut down.
func (p *Pool) SubmitBlocking(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed || p.ctx.Err() != nil {
		return false
	}
	p.pending.Add(1)
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		p.pending.Done()
		return false
	}
}

// Wait blocks until every submitted job has finished.
func (p *Pool) Wait() { p.pending.Wait() }

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			job()
			p.pending.Done()
		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers. Jobs still queued are dropped. Submits that
// race with it either land in the queue before it drains or are refused.
func (p *Pool) Shutdown() {
	p.cancel()
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wg.Wait()
	for {
		select {
		case <-p.jobQueue:
			p.pending.Done()
		default:
			return
		}
	}
}

// Rows calls fn over [0, h) split into contiguous bands, one band per
// worker, and returns when all bands are done. Small inputs run inline.
func Rows(h int, fn func(y0, y1 int)) {
	const minBand = 16
	workers := runtime.GOMAXPROCS(0)
	if h < 2*minBand || workers < 2 {
		fn(0, h)
		return
	}
	bands := min(workers, h/minBand)
	p := NewPool(bands, bands)
	defer p.Shutdown()
	for i := 0; i < bands; i++ {
		y0, y1 := i*h/bands, (i+1)*h/bands
		p.SubmitBlocking(func() { fn(y0, y1) })
	}
	p.Wait()
}
