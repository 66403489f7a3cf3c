package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/primgeom/pkg/cache"
	primio "github.com/matzehuels/primgeom/pkg/io"
	"github.com/matzehuels/primgeom/pkg/observability"
	"github.com/matzehuels/primgeom/pkg/shape"
	"github.com/matzehuels/primgeom/pkg/tech"
)

// Runner executes shape requests against one technology with caching.
//
// The Runner keeps no per-request state; multiple goroutines can share it.
type Runner struct {
	Tech      *tech.Technology
	Providers *shape.Providers
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger

	fingerprintOnce sync.Once
	fingerprint     string
}

// NewRunner creates a runner for tc.
// If providers is nil, every request uses a permissive shape.Builder.
// If c is nil, a NullCache is used (caching disabled).
// If keyer is nil, a DefaultKeyer is used.
func NewRunner(tc *tech.Technology, providers *shape.Providers, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if providers == nil {
		providers = shape.NewProviders(shape.NewBuilder(tc.Scale, logger))
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Runner{
		Tech:      tc,
		Providers: providers,
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
	}
}

// Fingerprint returns the technology fingerprint used in cache keys.
func (r *Runner) Fingerprint() string {
	r.fingerprintOnce.Do(func() { r.fingerprint = r.Tech.Fingerprint() })
	return r.fingerprint
}

// Execute runs one request, serving it from the cache when possible.
func (r *Runner) Execute(ctx context.Context, req Request, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	start := time.Now()
	observability.Pipeline().OnRequestStart(ctx, string(req.Kind), req.Name)
	res, err := r.execute(ctx, req, opts)
	if err != nil {
		observability.Pipeline().OnRequestComplete(ctx, string(req.Kind), req.Name, 0, time.Since(start), err)
		return nil, fmt.Errorf("%s: %w", req.label(), err)
	}
	res.Duration = time.Since(start)
	n := len(res.Polygons)
	observability.Pipeline().OnRequestComplete(ctx, string(req.Kind), req.Name, n, res.Duration, nil)

	opts.Logger.Debug("shapes ready",
		"request", req.label(),
		"polygons", n,
		"cached", res.CacheHit,
		"duration", res.Duration)
	return res, nil
}

func (r *Runner) execute(ctx context.Context, req Request, opts Options) (*Result, error) {
	key := r.key(req)

	if !opts.Refresh {
		if polys, ok := r.lookup(ctx, key, req, opts.Logger); ok {
			return &Result{Request: req, Polygons: polys, CacheHit: true}, nil
		}
	}

	polys, err := r.build(req)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, req, polys, opts.Logger)
	return &Result{Request: req, Polygons: polys}, nil
}

// build asks the technology's provider for the request's polygons.
func (r *Runner) build(req Request) ([]shape.Polygon, error) {
	prov := r.Providers.For(r.Tech.Name)

	switch req.Kind {
	case KindArc:
		a, err := r.Tech.Arc(req.Name)
		if err != nil {
			return nil, err
		}
		return prov.ArcShapes(a, *req.Arc)
	case KindNode, KindPort:
		n, err := r.Tech.Node(req.Name)
		if err != nil {
			return nil, err
		}
		inst := shape.DefaultInstance(n)
		if req.Node != nil {
			inst = *req.Node
		}
		if req.Kind == KindNode {
			return prov.NodeShapes(n, inst)
		}
		p, err := prov.PortShape(n, inst, req.Port)
		if err != nil {
			return nil, err
		}
		return []shape.Polygon{p}, nil
	}
	return nil, ValidateKind(req.Kind)
}

// keyParams is everything besides the technology and name that changes a
// request's output, including the provider's settings.
type keyParams struct {
	Kind     Kind               `json:"kind"`
	Provider string             `json:"provider,omitempty"`
	Node     *shape.Instance    `json:"node,omitempty"`
	Arc      *shape.ArcInstance `json:"arc,omitempty"`
	Port     int                `json:"port,omitempty"`
}

func (r *Runner) key(req Request) string {
	params := keyParams{
		Kind:     req.Kind,
		Provider: shape.ScopeOf(r.Providers.For(r.Tech.Name)),
		Node:     req.Node,
		Arc:      req.Arc,
		Port:     req.Port,
	}
	if req.Kind == KindArc {
		return r.Keyer.ArcKey(r.Fingerprint(), req.Name, params)
	}
	return r.Keyer.NodeKey(r.Fingerprint(), req.Name, params)
}

// lookup reads a cached result. Backend failures are retried, then treated
// as a miss.
func (r *Runner) lookup(ctx context.Context, key string, req Request, logger *log.Logger) ([]shape.Polygon, bool) {
	var (
		data []byte
		hit  bool
	)
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		logger.Warn("cache lookup failed", "request", req.label(), "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, string(req.Kind))
		return nil, false
	}
	polys, err := primio.UnmarshalShapes(data, r.Tech)
	if err != nil {
		// Stale layout from an older encoding: rebuild.
		logger.Debug("discarding cache entry", "request", req.label(), "err", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, string(req.Kind))
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, string(req.Kind))
	return polys, true
}

func (r *Runner) store(ctx context.Context, key string, req Request, polys []shape.Polygon, logger *log.Logger) {
	data, err := primio.MarshalShapes(polys)
	if err != nil {
		logger.Warn("encode shapes for cache", "request", req.label(), "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		logger.Warn("cache store failed", "request", req.label(), "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, string(req.Kind), len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
