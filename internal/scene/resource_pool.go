package scene

import (
	"Terra3D/internal/logger"
	"sync"

	"go.uber.org/zap"
)

// PoolStats provides debugging and profiling information
type PoolStats struct {
	TotalBuilt  int
	CacheHits   int
	CacheMisses int
	Active      int
}

// BuildFunc constructs the backing resource for a name and returns an
// opaque handle (GPU buffer, shader program, file descriptor).
type BuildFunc func(name string) (uint32, error)

// DestroyFunc tears the backing resource down.
type DestroyFunc func(name string, handle uint32)

// ResourcePool shares named resources between surfaces with reference
// counting. The last release destroys the resource.
type ResourcePool struct {
	build   BuildFunc
	destroy DestroyFunc

	handles  map[string]uint32
	refCount map[string]int
	mu       sync.RWMutex
	stats    PoolStats
}

// NewResourcePool creates an empty pool. Either function may be nil
// when the backing resources need no construction or teardown.
func NewResourcePool(build BuildFunc, destroy DestroyFunc) *ResourcePool {
	return &ResourcePool{
		build:    build,
		destroy:  destroy,
		handles:  make(map[string]uint32),
		refCount: make(map[string]int),
	}
}

// Acquire returns the shared handle for name, building it on first use.
// Every Acquire must be paired with a Release.
func (rp *ResourcePool) Acquire(name string) (uint32, error) {
	rp.mu.Lock()
	defer rp.mu.Unlock()

	if handle, exists := rp.handles[name]; exists {
		rp.refCount[name]++
		rp.stats.CacheHits++

		logger.Log.Debug("Resource cache hit",
			zap.String("name", name),
			zap.Uint32("handle", handle),
			zap.Int("refCount", rp.refCount[name]))

		return handle, nil
	}

	rp.stats.CacheMisses++

	var handle uint32
	if rp.build != nil {
		built, err := rp.build(name)
		if err != nil {
			return 0, err
		}
		handle = built
	}

	rp.handles[name] = handle
	rp.refCount[name] = 1
	rp.stats.TotalBuilt++
	rp.stats.Active++

	logger.Log.Info("Resource built",
		zap.String("name", name),
		zap.Uint32("handle", handle))

	return handle, nil
}

// Release drops one reference to name, destroying the resource when the
// count reaches zero.
func (rp *ResourcePool) Release(name string) {
	rp.mu.Lock()
	defer rp.mu.Unlock()

	refCount, exists := rp.refCount[name]
	if !exists {
		logger.Log.Warn("Attempted to release unknown resource",
			zap.String("name", name))
		return
	}

	refCount--
	rp.refCount[name] = refCount

	logger.Log.Debug("Resource reference released",
		zap.String("name", name),
		zap.Int("refCount", refCount))

	if refCount <= 0 {
		handle := rp.handles[name]
		if rp.destroy != nil {
			rp.destroy(name, handle)
		}

		delete(rp.handles, name)
		delete(rp.refCount, name)
		rp.stats.Active--

		logger.Log.Info("Resource freed",
			zap.String("name", name),
			zap.Uint32("handle", handle))
	}
}

// RefCount reports the live reference count for name.
func (rp *ResourcePool) RefCount(name string) int {
	rp.mu.RLock()
	defer rp.mu.RUnlock()
	return rp.refCount[name]
}

// GetStats returns current pool statistics
func (rp *ResourcePool) GetStats() PoolStats {
	rp.mu.RLock()
	defer rp.mu.RUnlock()

	stats := rp.stats
	stats.Active = len(rp.refCount)
	return stats
}
