package rendering

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestParallelRendererVisitsEveryIndex(t *testing.T) {
	renderer := NewParallelRenderer(3)
	defer renderer.Stop()

	for _, n := range []int{0, 1, 8, 9, 100, 1000} {
		counts := make([]int32, n)
		renderer.ParallelFor(0, n, func(i int) {
			atomic.AddInt32(&counts[i], 1)
		})
		for i, c := range counts {
			if c != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, c)
			}
		}
	}
}

func TestParallelRendererAfterStop(t *testing.T) {
	renderer := NewParallelRenderer(2)
	renderer.Stop()

	counts := make([]int32, 200)
	renderer.ParallelFor(0, len(counts), func(i int) {
		atomic.AddInt32(&counts[i], 1)
	})
	for i, c := range counts {
		if c != 1 {
			t.Fatalf("index %d visited %d times after Stop", i, c)
		}
	}
}

func TestParallelRendererOffsetRange(t *testing.T) {
	renderer := NewParallelRenderer(2)
	defer renderer.Stop()

	var sum atomic.Int64
	renderer.ParallelFor(10, 60, func(i int) {
		sum.Add(int64(i))
	})
	// 10 + 11 + ... + 59
	if sum.Load() != 1725 {
		t.Errorf("Expected sum 1725, got %d", sum.Load())
	}
}

func TestParallelRendererConcurrency(t *testing.T) {
	renderer := NewParallelRenderer(4)
	defer renderer.Stop()

	var wg sync.WaitGroup
	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(renderID int) {
			defer wg.Done()
			n := 50 + renderID*10
			var visited atomic.Int32
			renderer.ParallelFor(0, n, func(int) { visited.Add(1) })
			if int(visited.Load()) != n {
				t.Errorf("Render %d: expected %d calls, got %d", renderID, n, visited.Load())
			}
		}(r)
	}
	wg.Wait()
}

func TestBatchSize(t *testing.T) {
	tests := []struct {
		n, workers, want int
	}{
		{256, 8, 32},
		{256, 64, 4},
		{100, 10, 10},
		{1000, 0, 32},
	}
	for _, tt := range tests {
		if got := BatchSize(tt.n, tt.workers); got != tt.want {
			t.Errorf("BatchSize(%d, %d) = %d, want %d", tt.n, tt.workers, got, tt.want)
		}
	}
}

func TestSliceCacheCreatesOnce(t *testing.T) {
	cache := NewSliceCache()
	var created int
	create := func() *ebiten.Image {
		created++
		return nil
	}

	key := SliceKey{Texture: "red_brick", Column: 5}
	cache.GetOrCreate(key, create)
	cache.GetOrCreate(key, create)
	cache.GetOrCreate(SliceKey{Texture: "red_brick", Column: 6}, create)

	if created != 2 {
		t.Errorf("Expected 2 creations, got %d", created)
	}
	if cache.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", cache.Len())
	}
	hits, misses := cache.Stats()
	if hits != 1 || misses != 2 {
		t.Errorf("Expected 1 hit and 2 misses, got %d and %d", hits, misses)
	}

	cache.Purge()
	if cache.Len() != 0 {
		t.Errorf("Expected empty cache after purge, got %d", cache.Len())
	}
}

func TestSliceCacheEvictsOldest(t *testing.T) {
	cache := NewSliceCache()
	create := func() *ebiten.Image { return nil }

	for i := 0; i < sliceCacheMaxSize+1; i++ {
		cache.GetOrCreate(SliceKey{Texture: "t", Column: i}, create)
	}
	if cache.Len() > sliceCacheMaxSize {
		t.Errorf("Cache grew past max: %d", cache.Len())
	}

	var recreated bool
	cache.GetOrCreate(SliceKey{Texture: "t", Column: 0}, func() *ebiten.Image {
		recreated = true
		return nil
	})
	if !recreated {
		t.Error("Expected the oldest entry to be evicted")
	}
}

func TestCommandBatchQueue(t *testing.T) {
	batch := NewCommandBatch()
	batch.Add(DrawJob{X: 1})
	batch.AddAll([]DrawJob{{X: 2}, {X: 3}})
	batch.AddAll(nil)

	if batch.Len() != 3 {
		t.Errorf("Expected 3 queued jobs, got %d", batch.Len())
	}

	// Jobs without images are skipped, and the queue is emptied.
	if drawn := batch.RenderAll(nil); drawn != 0 {
		t.Errorf("Expected nothing drawn, got %d", drawn)
	}
	if batch.Len() != 0 {
		t.Errorf("Expected empty queue after render, got %d", batch.Len())
	}

	batch.Add(DrawJob{})
	batch.Clear()
	if batch.Len() != 0 {
		t.Errorf("Expected empty queue after clear, got %d", batch.Len())
	}
}
