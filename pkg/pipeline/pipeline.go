// Package pipeline turns shape requests into polygons for CLI and batch use.
//
// # Overview
//
// A [Request] names one primitive of a technology and carries its instance
// parameters. The [Runner] validates it, looks the result up in the shape
// cache, and otherwise asks the technology's [shape.Provider] to build it.
// Results are cached under a key derived from the technology fingerprint,
// so editing a technology file invalidates everything built from it.
//
// # Usage
//
//	runner := pipeline.NewRunner(tc, nil, cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Request{
//	    Kind: pipeline.KindNode,
//	    Name: "metal-1-poly-contact",
//	}, pipeline.Options{})
//
// [Runner.Batch] evaluates many requests concurrently, bounded by
// [Options.Workers].
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/primgeom/pkg/shape"
)

const (
	// DefaultWorkers bounds batch concurrency when Options.Workers is zero.
	DefaultWorkers = 8

	// MaxWorkers is the largest accepted Options.Workers.
	MaxWorkers = 256
)

// Kind selects what a request builds.
type Kind string

// Request kinds.
const (
	KindNode Kind = "node" // all polygons of a node instance
	KindArc  Kind = "arc"  // all polygons of an arc instance
	KindPort Kind = "port" // the outline of one port of a node instance
)

// ValidKinds is the set of supported request kinds.
var ValidKinds = map[Kind]bool{
	KindNode: true,
	KindArc:  true,
	KindPort: true,
}

// ValidateKind checks that a request kind is valid.
func ValidateKind(k Kind) error {
	if !ValidKinds[k] {
		return fmt.Errorf("invalid kind: %q (must be one of: node, arc, port)", k)
	}
	return nil
}

// Request is one shape request. Coordinates are grid units.
type Request struct {
	ID   string `json:"id,omitempty"`
	Kind Kind   `json:"kind"`
	Name string `json:"name"`

	// Node is the node instance for node and port requests. Nil uses the
	// node's default instance.
	Node *shape.Instance `json:"node,omitempty"`

	// Arc is the arc instance for arc requests. Required.
	Arc *shape.ArcInstance `json:"arc,omitempty"`

	// Port is the port index for port requests.
	Port int `json:"port,omitempty"`
}

// Validate checks that the request is complete.
func (r *Request) Validate() error {
	if err := ValidateKind(r.Kind); err != nil {
		return err
	}
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Kind == KindArc && r.Arc == nil {
		return fmt.Errorf("arc %q: arc instance is required", r.Name)
	}
	if r.Kind == KindPort && r.Port < 0 {
		return fmt.Errorf("port %d: must not be negative", r.Port)
	}
	return nil
}

// label identifies the request in logs.
func (r *Request) label() string {
	if r.ID != "" {
		return r.ID
	}
	return string(r.Kind) + ":" + r.Name
}

// Options configures a pipeline run. It supports JSON so batch files can
// carry it alongside their requests.
type Options struct {
	// Workers bounds concurrent requests in a batch.
	Workers int `json:"workers,omitempty"`

	// Refresh skips cache lookups; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// FailFast stops a batch at the first failing request. Otherwise
	// failures are recorded per result.
	FailFast bool `json:"fail_fast,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Workers < 0 || o.Workers > MaxWorkers {
		return fmt.Errorf("workers: %d out of range [0, %d]", o.Workers, MaxWorkers)
	}
	o.SetDefaults()
	o.validated = true
	return nil
}

// SetDefaults fills in zero values.
func (o *Options) SetDefaults() {
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Result is the outcome of one request.
type Result struct {
	Request  Request
	Polygons []shape.Polygon
	CacheHit bool
	Duration time.Duration

	// Err is set for failed requests in a batch that is not FailFast.
	Err error
}

// BatchResult is the outcome of Runner.Batch.
type BatchResult struct {
	ID       string
	Results  []Result
	Failed   int
	Duration time.Duration
}
