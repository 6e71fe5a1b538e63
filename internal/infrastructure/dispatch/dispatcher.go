package dispatch

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

type task struct {
	name string
	job  func(ctx context.Context)
}

// Dispatcher runs submitted jobs on a fixed pool of workers. Submission
// is fire-and-forget; callers observe completion through side effects
// only.
type Dispatcher struct {
	queue chan task
	log   zerolog.Logger

	mu      sync.Mutex
	started bool
	closed  bool
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	workers int
}

func New(workers, queueSize int, log zerolog.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{
		queue:   make(chan task, queueSize),
		log:     log.With().Str("component", "dispatcher").Logger(),
		workers: workers,
	}
}

// Start launches the worker pool. Jobs submitted before Start sit in
// the queue.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run(ctx)
	}
	d.log.Info().Int("workers", d.workers).Msg("dispatcher started")
}

// Submit enqueues a job. When the queue is full the job is dropped with
// a warning rather than blocking the caller. The lock is held across the
// send so Stop cannot close the queue between the closed check and the
// send; the send never blocks, so the hold is bounded.
func (d *Dispatcher) Submit(name string, job func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.log.Warn().Str("job", name).Msg("dispatcher stopped, job dropped")
		return
	}

	select {
	case d.queue <- task{name: name, job: job}:
	default:
		d.log.Warn().Str("job", name).Msg("dispatch queue full, job dropped")
	}
}

// Stop closes the queue and waits for the workers to drain it. Queued
// jobs run to completion with a live context; the context is only
// canceled once the pool has exited.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed || !d.started {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	d.cancel()
	d.log.Info().Msg("dispatcher stopped")
}

func (d *Dispatcher) run(ctx context.Context) {
	defer d.wg.Done()
	for t := range d.queue {
		d.execute(ctx, t)
	}
}

func (d *Dispatcher) execute(ctx context.Context, t task) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Str("job", t.name).Interface("panic", r).Msg("background job panicked")
		}
	}()
	d.log.Debug().Str("job", t.name).Msg("running background job")
	t.job(ctx)
}
