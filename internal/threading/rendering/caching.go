package rendering

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Eviction drops back to the target size in one pass once max is reached.
const (
	sliceCacheMaxSize    = 2048
	sliceCacheTargetSize = 1536
)

// SliceKey names one single-pixel-wide column of a texture.
type SliceKey struct {
	Texture string
	Column  int
}

// SliceCache keeps the column sub-images that wall and sprite commands draw
// from, so each frame reuses the same *ebiten.Image values. Safe for
// concurrent use. Oldest entries are evicted first.
type SliceCache struct {
	cache      map[SliceKey]*ebiten.Image
	mutex      sync.RWMutex
	cacheOrder []SliceKey
	hits       uint64
	misses     uint64
}

func NewSliceCache() *SliceCache {
	return &SliceCache{
		cache:      make(map[SliceKey]*ebiten.Image, sliceCacheMaxSize),
		cacheOrder: make([]SliceKey, 0, sliceCacheMaxSize),
	}
}

// GetOrCreate returns the cached slice for key, calling createFunc on a miss.
func (sc *SliceCache) GetOrCreate(key SliceKey, createFunc func() *ebiten.Image) *ebiten.Image {
	sc.mutex.RLock()
	if img, ok := sc.cache[key]; ok {
		sc.mutex.RUnlock()
		sc.mutex.Lock()
		sc.hits++
		sc.mutex.Unlock()
		return img
	}
	sc.mutex.RUnlock()

	img := createFunc()

	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	// Another goroutine may have stored it meanwhile.
	if cached, ok := sc.cache[key]; ok {
		sc.hits++
		return cached
	}
	sc.misses++

	if len(sc.cache) >= sliceCacheMaxSize {
		evictCount := len(sc.cacheOrder) - sliceCacheTargetSize
		if evictCount > 0 {
			for i := 0; i < evictCount; i++ {
				delete(sc.cache, sc.cacheOrder[i])
			}
			sc.cacheOrder = append(sc.cacheOrder[:0], sc.cacheOrder[evictCount:]...)
		}
	}

	sc.cache[key] = img
	sc.cacheOrder = append(sc.cacheOrder, key)
	return img
}

func (sc *SliceCache) Len() int {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()
	return len(sc.cache)
}

// Stats returns the hit and miss counts since creation or the last Purge.
func (sc *SliceCache) Stats() (hits, misses uint64) {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()
	return sc.hits, sc.misses
}

// Purge drops every entry, e.g. after textures are reloaded.
func (sc *SliceCache) Purge() {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	clear(sc.cache)
	sc.cacheOrder = sc.cacheOrder[:0]
	sc.hits, sc.misses = 0, 0
}
