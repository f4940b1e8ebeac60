package core

import (
	"context"
	"runtime"
	"sync"

	"gridcaster/internal/mathutil"
)

// CreateDefaultWorkerPool creates and starts a pool of the given size
// (CPU count when <= 0).
func CreateDefaultWorkerPool(workers int) *WorkerPool {
	pool := NewWorkerPool(workers)
	pool.Start()
	return pool
}

// ParallelMap applies fn to every item on short-lived goroutines.
// Results keep the order of items.
func ParallelMap[T any, R any](items []T, fn func(T) R) []R {
	return ParallelMapWithContext(context.Background(), items, fn)
}

// ParallelMapWithContext is ParallelMap with cancellation between items.
// Items skipped after cancellation keep the zero value.
func ParallelMapWithContext[T any, R any](ctx context.Context, items []T, fn func(T) R) []R {
	if len(items) == 0 {
		return nil
	}

	numWorkers := mathutil.IntMin(runtime.NumCPU(), len(items))
	chunkSize := mathutil.IntMax(1, len(items)/numWorkers)

	results := make([]R, len(items))
	var wg sync.WaitGroup

	for i := 0; i < len(items); i += chunkSize {
		start := i
		end := mathutil.IntMin(i+chunkSize, len(items))

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				select {
				case <-ctx.Done():
					return
				default:
					results[j] = fn(items[j])
				}
			}
		}(start, end)
	}

	wg.Wait()
	return results
}
