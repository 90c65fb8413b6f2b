// Package parallel provides controlled concurrent execution for batches of
// independent saturation jobs. Each job owns its entire engine state, so
// the only shared structure is the job queue itself; the pool bounds
// concurrency to keep large batches from exhausting memory or scheduler
// capacity.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// ErrPoolShutdown is returned when submitting jobs to a shutdown pool.
var ErrPoolShutdown = fmt.Errorf("worker pool has been shutdown")

// WorkerPool manages a fixed set of goroutines that drain a buffered job
// queue. The buffer doubles as backpressure: once full, Submit blocks until
// a worker frees up or the caller's context is cancelled.
type WorkerPool struct {
	maxWorkers   int
	jobChan      chan func()
	workerWg     sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once
}

// NewWorkerPool creates a pool with the specified number of workers.
// If maxWorkers is 0 or negative, it defaults to the number of CPU cores.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		maxWorkers:   maxWorkers,
		jobChan:      make(chan func(), maxWorkers*2),
		shutdownChan: make(chan struct{}),
	}

	for i := 0; i < maxWorkers; i++ {
		pool.workerWg.Add(1)
		go pool.worker()
	}

	return pool
}

// worker is the main worker loop that processes jobs from the queue.
func (wp *WorkerPool) worker() {
	defer wp.workerWg.Done()

	for {
		select {
		case job := <-wp.jobChan:
			if job != nil {
				job()
			}
		case <-wp.shutdownChan:
			return
		}
	}
}

// Submit enqueues a job for execution. If the queue is full, this call
// blocks until a worker becomes available, the context is cancelled, or
// the pool shuts down.
func (wp *WorkerPool) Submit(ctx context.Context, job func()) error {
	// Check for context cancellation before racing against a free queue
	// slot, so a cancelled batch stops deterministically.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	select {
	case wp.jobChan <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-wp.shutdownChan:
		return ErrPoolShutdown
	}
}

// Shutdown gracefully shuts down the pool, waiting for the workers to
// finish their current jobs. Jobs still sitting in the queue are dropped.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		close(wp.shutdownChan)
		wp.workerWg.Wait()
	})
}
