package core

import (
	"context"
	"runtime"
	"sync"
)

// WorkerPool runs submitted jobs on a fixed set of goroutines.
type WorkerPool struct {
	numWorkers int
	jobQueue   chan func()
	wg         sync.WaitGroup
	quit       chan struct{}

	// stopMu orders Submit's sends before Stop closes quit.
	stopMu  sync.RWMutex
	stopped bool
}

// NewWorkerPool creates a pool with numWorkers goroutines (CPU count when <= 0).
// Call Start before submitting.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan func(), numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	for {
		select {
		case job := <-wp.jobQueue:
			job()
			wp.wg.Done()
		case <-wp.quit:
			wp.drain()
			return
		}
	}
}

// drain runs whatever was queued before Stop.
func (wp *WorkerPool) drain() {
	for {
		select {
		case job := <-wp.jobQueue:
			job()
			wp.wg.Done()
		default:
			return
		}
	}
}

// Submit queues a job. It blocks while the queue is full. After Stop it
// returns false and the job is not run; callers run it themselves.
func (wp *WorkerPool) Submit(job func()) bool {
	wp.stopMu.RLock()
	defer wp.stopMu.RUnlock()
	if wp.stopped {
		return false
	}
	wp.wg.Add(1)
	wp.jobQueue <- job
	return true
}

// Wait blocks until every submitted job has finished.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Stop shuts the workers down once every queued job has run. It is safe to
// call more than once.
func (wp *WorkerPool) Stop() {
	wp.stopMu.Lock()
	defer wp.stopMu.Unlock()
	if wp.stopped {
		return
	}
	wp.stopped = true
	close(wp.quit)
}

// ParallelFor calls fn for every index in [start, end) and waits for all of them.
func (wp *WorkerPool) ParallelFor(start, end int, fn func(int)) {
	wp.ParallelForWithContext(context.Background(), start, end, fn)
}

// ParallelForWithContext is ParallelFor that stops handing out indices once
// ctx is done.
func (wp *WorkerPool) ParallelForWithContext(ctx context.Context, start, end int, fn func(int)) {
	if start >= end {
		return
	}

	chunkSize := max(1, (end-start)/wp.numWorkers)

	var wg sync.WaitGroup
	for i := start; i < end; i += chunkSize {
		chunkStart := i
		chunkEnd := min(i+chunkSize, end)
		wg.Add(1)
		job := func() {
			defer wg.Done()
			for j := chunkStart; j < chunkEnd; j++ {
				select {
				case <-ctx.Done():
					return
				default:
					fn(j)
				}
			}
		}
		if !wp.Submit(job) {
			job()
		}
	}
	wg.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}
