package rendering

import (
	"sync"

	"gridcaster/internal/mathutil"
	"gridcaster/internal/threading/core"
)

// Batch limits for spreading screen columns or rows over the pool.
const (
	inlineThreshold = 8
	minBatchSize    = 4
	maxBatchSize    = 32
)

// ParallelRenderer spreads per-column and per-row render work over a
// long-lived worker pool.
type ParallelRenderer struct {
	workerPool *core.WorkerPool
}

// NewParallelRenderer starts a renderer with the given worker count
// (CPU count when <= 0).
func NewParallelRenderer(workers int) *ParallelRenderer {
	return &ParallelRenderer{
		workerPool: core.CreateDefaultWorkerPool(workers),
	}
}

// ParallelFor calls fn for each index in [start, end) and returns once all
// calls are done. Small ranges run inline. Safe for concurrent callers.
func (pr *ParallelRenderer) ParallelFor(start, end int, fn func(int)) {
	n := end - start
	if n <= 0 {
		return
	}
	if n <= inlineThreshold {
		for i := start; i < end; i++ {
			fn(i)
		}
		return
	}

	batchSize := BatchSize(n, pr.workerPool.GetNumWorkers())

	var wg sync.WaitGroup
	for i := start; i < end; i += batchSize {
		lo := i
		hi := mathutil.IntMin(i+batchSize, end)

		wg.Add(1)
		job := func() {
			defer wg.Done()
			for j := lo; j < hi; j++ {
				fn(j)
			}
		}
		if !pr.workerPool.Submit(job) {
			job()
		}
	}
	wg.Wait()
}

// BatchSize splits n items over workers, clamped to [4, 32] per batch.
func BatchSize(n, workers int) int {
	if workers <= 0 {
		workers = 1
	}
	return mathutil.IntClamp(n/workers, minBatchSize, maxBatchSize)
}

func (pr *ParallelRenderer) Workers() int {
	return pr.workerPool.GetNumWorkers()
}

// Stop shuts down the parallel renderer
func (pr *ParallelRenderer) Stop() {
	pr.workerPool.Stop()
}
