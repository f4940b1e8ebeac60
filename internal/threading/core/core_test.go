package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolCreation(t *testing.T) {
	wp := NewWorkerPool(0)
	if wp.GetNumWorkers() != runtime.NumCPU() {
		t.Errorf("Expected %d workers (CPU count), got %d", runtime.NumCPU(), wp.GetNumWorkers())
	}

	wp2 := NewWorkerPool(4)
	if wp2.GetNumWorkers() != 4 {
		t.Errorf("Expected 4 workers, got %d", wp2.GetNumWorkers())
	}
}

func TestWorkerPoolJobExecution(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Start()
	defer wp.Stop()

	var counter int32
	for i := 0; i < 10; i++ {
		wp.Submit(func() {
			atomic.AddInt32(&counter, 1)
		})
	}
	wp.Wait()

	if counter != 10 {
		t.Errorf("Expected counter to be 10, got %d", counter)
	}
}

func TestWorkerPoolParallelFor(t *testing.T) {
	wp := NewWorkerPool(3)
	wp.Start()
	defer wp.Stop()

	var results [10]int32
	wp.ParallelFor(0, 10, func(i int) {
		atomic.StoreInt32(&results[i], int32(i*2))
		time.Sleep(time.Millisecond)
	})

	for i := 0; i < 10; i++ {
		if got := atomic.LoadInt32(&results[i]); got != int32(i*2) {
			t.Errorf("Expected results[%d] = %d, got %d", i, i*2, got)
		}
	}

	// Empty and inverted ranges are no-ops.
	wp.ParallelFor(5, 5, func(int) { t.Error("fn called for empty range") })
	wp.ParallelFor(5, 2, func(int) { t.Error("fn called for inverted range") })
}

func TestWorkerPoolParallelForCancelled(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Start()
	defer wp.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	wp.ParallelForWithContext(ctx, 0, 100, func(int) { calls.Add(1) })
	if calls.Load() != 0 {
		t.Errorf("Expected no calls after cancel, got %d", calls.Load())
	}
}

func TestWorkerPoolConcurrentAccess(t *testing.T) {
	wp := NewWorkerPool(4)
	wp.Start()
	defer wp.Stop()

	var counter int64
	numGoroutines := 10
	jobsPerGoroutine := 50

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < jobsPerGoroutine; j++ {
				wp.Submit(func() {
					atomic.AddInt64(&counter, 1)
				})
			}
		}()
	}

	wg.Wait()
	wp.Wait()

	expected := int64(numGoroutines * jobsPerGoroutine)
	if atomic.LoadInt64(&counter) != expected {
		t.Errorf("Expected counter to be %d, got %d", expected, counter)
	}
}

func TestWorkerPoolStopTwice(t *testing.T) {
	wp := CreateDefaultWorkerPool(1)
	wp.Stop()
	wp.Stop()
}

func TestWorkerPoolAfterStop(t *testing.T) {
	wp := CreateDefaultWorkerPool(2)
	wp.Stop()

	if wp.Submit(func() { t.Error("job ran on a stopped pool") }) {
		t.Error("Expected Submit to refuse work after Stop")
	}

	// More chunks than the queue holds; runs inline instead of blocking.
	done := make(chan struct{})
	var visited atomic.Int32
	go func() {
		wp.ParallelFor(0, 100, func(int) { visited.Add(1) })
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ParallelFor blocked on a stopped pool")
	}
	if visited.Load() != 100 {
		t.Errorf("Expected 100 indices visited, got %d", visited.Load())
	}
}

func TestWorkerPoolStopRunsQueuedJobs(t *testing.T) {
	wp := CreateDefaultWorkerPool(1)
	var ran atomic.Int32
	for i := 0; i < 2; i++ {
		wp.Submit(func() { ran.Add(1) })
	}
	wp.Stop()
	wp.Wait()
	if ran.Load() != 2 {
		t.Errorf("Expected both queued jobs to run, got %d", ran.Load())
	}
}

func TestParallelMapKeepsOrder(t *testing.T) {
	items := make([]int, 257)
	for i := range items {
		items[i] = i
	}

	results := ParallelMap(items, func(v int) string {
		return string(rune('a' + v%26))
	})

	if len(results) != len(items) {
		t.Fatalf("Expected %d results, got %d", len(items), len(results))
	}
	for i, r := range results {
		if want := string(rune('a' + i%26)); r != want {
			t.Errorf("results[%d] = %q, want %q", i, r, want)
		}
	}

	if ParallelMap([]int(nil), func(v int) int { return v }) != nil {
		t.Error("Expected nil for empty input")
	}
}

func BenchmarkWorkerPoolSubmit(b *testing.B) {
	wp := NewWorkerPool(4)
	wp.Start()
	defer wp.Stop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wp.Submit(func() {})
	}
	wp.Wait()
}
