// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about shape generation, batch execution and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the geometry engine
// stays free of any particular metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetShapeHooks(&myShapeHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Shapes().OnGeometryWarning(node.Name, layer.Name)
//	observability.Pipeline().OnBatchComplete(ctx, id, n, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Shape Hooks
// =============================================================================

// ShapeHooks receives events from the geometry engine. The engine has no
// context, so these hooks take none.
type ShapeHooks interface {
	// OnNodeShapes records a completed node shape request.
	OnNodeShapes(node string, polygons int, duration time.Duration)

	// OnArcShapes records a completed arc shape request.
	OnArcShapes(arc string, polygons int, duration time.Duration)

	// OnGeometryWarning records a malformed polygon that was emitted anyway.
	OnGeometryWarning(primitive, layer string)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the request pipeline.
type PipelineHooks interface {
	// Single requests
	OnRequestStart(ctx context.Context, kind, name string)
	OnRequestComplete(ctx context.Context, kind, name string, polygons int, duration time.Duration, err error)

	// Batches
	OnBatchStart(ctx context.Context, id string, requests int)
	OnBatchComplete(ctx context.Context, id string, requests int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopShapeHooks is a no-op implementation of ShapeHooks.
type NoopShapeHooks struct{}

func (NoopShapeHooks) OnNodeShapes(string, int, time.Duration) {}
func (NoopShapeHooks) OnArcShapes(string, int, time.Duration)  {}
func (NoopShapeHooks) OnGeometryWarning(string, string)        {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRequestStart(context.Context, string, string) {}
func (NoopPipelineHooks) OnRequestComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnBatchStart(context.Context, string, int)                          {}
func (NoopPipelineHooks) OnBatchComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	shapeHooks    ShapeHooks    = NoopShapeHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetShapeHooks registers custom shape hooks.
// This should be called once at application startup before any shape requests.
func SetShapeHooks(h ShapeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		shapeHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Shapes returns the registered shape hooks.
func Shapes() ShapeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return shapeHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	shapeHooks = NoopShapeHooks{}
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
