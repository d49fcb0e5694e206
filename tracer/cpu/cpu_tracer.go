// Package cpu implements the sequential reference tracer. It is the
// ground truth the other backends are compared against.
package cpu

import (
	"sync"
	"time"

	"github.com/hunterpaulson/blackhole/scene"
	"github.com/hunterpaulson/blackhole/shade"
	"github.com/hunterpaulson/blackhole/trace"
	"github.com/hunterpaulson/blackhole/tracer"
)

type Tracer struct {
	id     string
	params *scene.Params

	// Number of row-partition workers; 1 keeps the reference
	// sequential path.
	workers int

	hitMap    []trace.Hit
	normScale float64
	cells     []byte
	traced    bool

	stats tracer.Stats
}

// NewTracer creates a CPU tracer. workers selects how many goroutines
// share the trace; values below 1 are treated as 1 (the sequential
// reference).
func NewTracer(workers int) *Tracer {
	if workers < 1 {
		workers = 1
	}
	return &Tracer{
		id:      "cpu",
		workers: workers,
	}
}

func (tr *Tracer) Id() string {
	return tr.id
}

func (tr *Tracer) Close() {
	tr.hitMap = nil
	tr.cells = nil
	tr.params = nil
	tr.traced = false
}

func (tr *Tracer) Setup(params *scene.Params) error {
	if params.PixelCount() < 1 {
		return tracer.ErrInvalidDimensions
	}
	tr.params = params
	tr.hitMap = make([]trace.Hit, params.PixelCount())
	tr.cells = make([]byte, params.PixelCount())
	tr.traced = false
	return nil
}

func (tr *Tracer) Trace() error {
	if tr.params == nil {
		return tracer.ErrNotSetup
	}

	start := time.Now()
	if tr.workers == 1 {
		trace.MapRows(tr.params, tr.hitMap, 0, tr.params.Height)
	} else {
		tr.traceParallel()
	}
	tr.normScale = shade.NormScale(tr.hitMap)
	tr.traced = true
	tr.stats.TraceTime = time.Since(start)
	return nil
}

// traceParallel splits the grid into contiguous row blocks, one per
// worker. Cells are independent so no synchronization beyond the final
// join is needed.
func (tr *Tracer) traceParallel() {
	var wg sync.WaitGroup
	rows := tr.params.Height
	block := (rows + tr.workers - 1) / tr.workers

	for y0 := 0; y0 < rows; y0 += block {
		y1 := y0 + block
		if y1 > rows {
			y1 = rows
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			trace.MapRows(tr.params, tr.hitMap, y0, y1)
		}(y0, y1)
	}
	wg.Wait()
}

func (tr *Tracer) Frame(phase float64) (string, error) {
	if tr.params == nil {
		return "", tracer.ErrNotSetup
	}
	if !tr.traced {
		return "", tracer.ErrNotTraced
	}

	start := time.Now()
	shade.FrameInto(tr.cells, tr.params, tr.hitMap, phase, tr.normScale)
	text := shade.Text(tr.params, tr.cells)
	tr.stats.FrameTime = time.Since(start)
	return text, nil
}

func (tr *Tracer) Stats() *tracer.Stats {
	return &tr.stats
}

// HitMap exposes the traced map for parity checks against the other
// backends.
func (tr *Tracer) HitMap() []trace.Hit {
	return tr.hitMap
}
