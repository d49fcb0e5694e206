// Package tracer defines the backend interface shared by the CPU and
// GPU execution strategies. All backends run the same conceptual
// pipeline: one geometry trace per parameter change, one shading pass
// per displayed frame.
package tracer

import (
	"time"

	"github.com/hunterpaulson/blackhole/scene"
)

// Tracer statistics for the last geometry trace and shaded frame.
type Stats struct {
	// Time spent building the current hit map.
	TraceTime time.Duration

	// Time spent shading the most recent frame.
	FrameTime time.Duration
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Shutdown and release all backend resources. Any in-flight work
	// is discarded, not drained.
	Close()

	// Bind the tracer to a parameter set and allocate per-grid
	// resources. Must be called before Trace whenever the grid
	// dimensions change.
	Setup(params *scene.Params) error

	// Rebuild the hit map from the current geometry parameters.
	// Callers invoke this once per geometry change; phase-only
	// updates never require a retrace.
	Trace() error

	// Shade the current hit map at the given phase and return the
	// frame as row-major text, rows separated by a newline.
	Frame(phase float64) (string, error)

	// Retrieve last trace/frame statistics.
	Stats() *Stats
}
