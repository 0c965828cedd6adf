// Package pool provides unified high-performance object pooling for Strata.
// It offers zero-allocation memory management with automatic object recycling,
// reducing garbage collection pressure on the hot construction paths.
//
// The package provides:
//   - Generic type-safe object pooling with Pool[T]
//   - Pre-configured global pools for the shapes the adapters churn through
//     (key slices for the row-mapping scan, raw value slices)
//   - Statistics for monitoring hit/miss rates
package pool

import (
	"sync"
	"sync/atomic"
)

// Pool represents a generic object pool with type safety.
// It wraps sync.Pool with statistics tracking and automatic reset
// functionality. The pool is safe for concurrent use.
type Pool[T any] struct {
	pool  sync.Pool
	new   func() T
	reset func(T)
	stats struct {
		allocated int64
		inUse     int64
		hits      int64
	}
}

// New creates a new typed pool with custom allocation and reset functions.
// The new function is called when the pool is empty. The reset function, if
// non-nil, is called before an object is returned to the pool.
func New[T any](newFn func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{
		new:   newFn,
		reset: reset,
	}
	p.pool.New = func() interface{} {
		atomic.AddInt64(&p.stats.allocated, 1)
		return newFn()
	}
	return p
}

// Get retrieves an object from the pool, creating one if the pool is empty.
func (p *Pool[T]) Get() T {
	atomic.AddInt64(&p.stats.inUse, 1)
	obj := p.pool.Get().(T)
	atomic.AddInt64(&p.stats.hits, 1)
	return obj
}

// Put returns an object to the pool for reuse, resetting it first when a
// reset function was configured.
func (p *Pool[T]) Put(obj T) {
	if p.reset != nil {
		p.reset(obj)
	}
	atomic.AddInt64(&p.stats.inUse, -1)
	p.pool.Put(obj)
}

// Stats returns pool usage counters: total allocations, objects currently
// checked out, and total Get hits.
func (p *Pool[T]) Stats() (allocated, inUse, hits int64) {
	return atomic.LoadInt64(&p.stats.allocated),
		atomic.LoadInt64(&p.stats.inUse),
		atomic.LoadInt64(&p.stats.hits)
}

var keySlicePool = New(
	func() *[]string {
		s := make([]string, 0, 32)
		return &s
	},
	func(s *[]string) { *s = (*s)[:0] },
)

// GetKeySlice returns a pooled string slice for collecting mapping keys.
// Return it with PutKeySlice once the keys have been consumed.
func GetKeySlice() *[]string {
	return keySlicePool.Get()
}

// PutKeySlice returns a key slice to the pool.
func PutKeySlice(s *[]string) {
	if cap(*s) > 4096 { // don't pool very large slices
		return
	}
	keySlicePool.Put(s)
}

var valueSlicePool = New(
	func() *[]interface{} {
		s := make([]interface{}, 0, 256)
		return &s
	},
	func(s *[]interface{}) { *s = (*s)[:0] },
)

// GetValueSlice returns a pooled raw value slice used while accumulating
// column values during adaptation.
func GetValueSlice() *[]interface{} {
	return valueSlicePool.Get()
}

// PutValueSlice returns a value slice to the pool.
func PutValueSlice(s *[]interface{}) {
	if cap(*s) > 1<<16 {
		return
	}
	valueSlicePool.Put(s)
}
