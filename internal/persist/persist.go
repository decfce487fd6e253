// Package persist runs persistence writes off the gameplay path.
package persist

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrQueueClosed is returned when submitting to a closed queue.
var ErrQueueClosed = errors.New("write queue is closed")

// WriteFunc performs one persistence write.
type WriteFunc func(ctx context.Context) error

// Writer accepts fire-and-forget writes. Failures are reported through the
// writer's logger and never returned to the submitter.
type Writer interface {
	Submit(name string, fn WriteFunc) error
}

type job struct {
	name string
	fn   WriteFunc
}

// Queue runs writes in submission order on a single background worker.
// Submit never blocks on a slow store.
type Queue struct {
	logger *log.Logger

	mu      sync.Mutex
	pending []job
	closed  bool
	busy    bool
	wake    chan struct{}
	idle    chan struct{} // closed and replaced whenever the queue drains
	done    chan struct{}
}

// NewQueue starts a queue and its worker.
func NewQueue(logger *log.Logger) *Queue {
	q := &Queue{
		logger: logger.With("component", "persist"),
		wake:   make(chan struct{}, 1),
		idle:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	close(q.idle)
	go q.run()
	return q
}

// Submit enqueues a write.
func (q *Queue) Submit(name string, fn WriteFunc) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	if len(q.pending) == 0 && !q.busy {
		q.idle = make(chan struct{})
	}
	q.pending = append(q.pending, job{name: name, fn: fn})
	q.logger.Debug("write enqueued", "write", name, "queue_len", len(q.pending))

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return nil
}

// Flush waits until every write submitted so far has run.
func (q *Queue) Flush(ctx context.Context) error {
	q.mu.Lock()
	idle := q.idle
	q.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting writes and waits for the pending ones to finish.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.wake)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		q.logger.Debug("write queue closed")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		if j, ok := q.next(); ok {
			q.exec(j)
			q.finish()
			continue
		}
		if _, open := <-q.wake; !open {
			for {
				j, ok := q.next()
				if !ok {
					return
				}
				q.exec(j)
				q.finish()
			}
		}
	}
}

func (q *Queue) next() (job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return job{}, false
	}
	j := q.pending[0]
	q.pending = q.pending[1:]
	q.busy = true
	return j, true
}

func (q *Queue) finish() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.busy = false
	if len(q.pending) == 0 {
		close(q.idle)
	}
}

func (q *Queue) exec(j job) {
	if err := j.fn(context.Background()); err != nil {
		q.logger.Error("write failed", "write", j.name, "err", err)
		return
	}
	q.logger.Debug("write done", "write", j.name)
}

// Inline runs each write synchronously on the submitting goroutine. Short
// CLI commands use it so the process does not exit with writes in flight.
type Inline struct {
	logger *log.Logger
}

// NewInline returns a synchronous Writer.
func NewInline(logger *log.Logger) *Inline {
	return &Inline{logger: logger.With("component", "persist")}
}

func (w *Inline) Submit(name string, fn WriteFunc) error {
	if err := fn(context.Background()); err != nil {
		w.logger.Error("write failed", "write", name, "err", err)
	}
	return nil
}
