// Package renderer ties the scene parameters to a tracer backend and
// tracks when the hit map must be rebuilt: geometry changes mark a
// retrace, phase-only updates never do.
package renderer

import (
	"io"

	"github.com/hunterpaulson/blackhole/log"
	"github.com/hunterpaulson/blackhole/scene"
	"github.com/hunterpaulson/blackhole/tracer"
	"github.com/hunterpaulson/blackhole/tracer/cpu"
	"github.com/hunterpaulson/blackhole/tracer/opencl"
)

var logger = log.New("renderer")

type Renderer struct {
	params *scene.Params
	opts   Options
	tr     tracer.Tracer

	// Set by geometry mutations, cleared by the next Frame.
	needsRetrace bool
}

// New creates a renderer for the given parameter set. The backend is
// chosen per opts; with the auto backend an opencl failure degrades
// to the cpu reference with a logged warning instead of an error.
func New(params *scene.Params, opts Options) (*Renderer, error) {
	tr, err := selectTracer(params, opts)
	if err != nil {
		return nil, err
	}

	if err = tr.Setup(params); err != nil {
		tr.Close()
		return nil, err
	}

	return &Renderer{
		params:       params,
		opts:         opts,
		tr:           tr,
		needsRetrace: true,
	}, nil
}

func selectTracer(params *scene.Params, opts Options) (tracer.Tracer, error) {
	switch opts.Backend {
	case BackendCPU:
		return cpu.NewTracer(opts.Workers), nil
	case BackendOpenCL:
		return opencl.NewTracer(opts.Blacklist)
	case BackendAuto, "":
		if params.TiltDeg != 0 {
			// The gpu kernel only renders the equatorial plane.
			return cpu.NewTracer(opts.Workers), nil
		}
		tr, err := opencl.NewTracer(opts.Blacklist)
		if err != nil {
			logger.Warningf("opencl backend unavailable (%v); falling back to cpu", err)
			return cpu.NewTracer(opts.Workers), nil
		}
		return tr, nil
	}
	return nil, ErrUnknownBackend
}

// Backend returns the id of the selected tracer backend.
func (r *Renderer) Backend() string {
	return r.tr.Id()
}

// Params exposes the renderer's parameter set. Mutations must go
// through the renderer setters so retrace tracking stays correct.
func (r *Renderer) Params() *scene.Params {
	return r.params
}

// SetObserver updates inclination and observer radius together.
// Returns false and changes nothing if either value is out of range;
// the update is atomic, never half-applied.
func (r *Renderer) SetObserver(incDeg, robs float64) bool {
	prevInc := r.params.IncDeg
	if !r.params.SetInclination(incDeg) {
		return false
	}
	if !r.params.SetObserverRadius(robs) {
		r.params.SetInclination(prevInc)
		return false
	}
	r.needsRetrace = true
	return true
}

func (r *Renderer) SetFOV(deg float64) bool {
	if !r.params.SetFOVx(deg) {
		return false
	}
	r.needsRetrace = true
	return true
}

func (r *Renderer) SetRoll(rad float64) {
	r.params.SetRoll(rad)
	r.needsRetrace = true
}

// SetTilt changes the disk plane tilt. A backend that cannot render a
// tilted plane is swapped for the cpu reference.
func (r *Renderer) SetTilt(deg float64) bool {
	prev := r.params.TiltDeg
	if !r.params.SetTilt(deg) {
		return false
	}

	if err := r.tr.Setup(r.params); err != nil {
		logger.Warningf("backend %s cannot render a tilted disk; switching to cpu", r.tr.Id())
		r.tr.Close()
		r.tr = cpu.NewTracer(r.opts.Workers)
		if err = r.tr.Setup(r.params); err != nil {
			r.params.SetTilt(prev)
			return false
		}
	}

	r.needsRetrace = true
	return true
}

// Resize changes the grid dimensions and reallocates backend
// resources.
func (r *Renderer) Resize(width, height int) error {
	r.params.Width = width
	r.params.Height = height
	r.params.UpdateDerived()

	if err := r.tr.Setup(r.params); err != nil {
		return err
	}
	r.needsRetrace = true
	return nil
}

// Frame renders the frame text at the given phase, lazily rebuilding
// the hit map if a geometry mutation invalidated it.
func (r *Renderer) Frame(phase float64) (string, error) {
	if r.needsRetrace {
		if err := r.tr.Trace(); err != nil {
			return "", err
		}
		r.needsRetrace = false
	}
	return r.tr.Frame(phase)
}

// WriteDump renders count frames at phases i*dphase and writes them to
// w separated by form-feed characters, with no trailing delimiter.
func (r *Renderer) WriteDump(w io.Writer, count int, dphase float64) error {
	if count < 1 {
		return ErrNoFrames
	}

	for i := 0; i < count; i++ {
		frame, err := r.Frame(float64(i) * dphase)
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err = io.WriteString(w, "\f"); err != nil {
				return err
			}
		}
		if _, err = io.WriteString(w, frame); err != nil {
			return err
		}
	}
	return nil
}

// Close shuts down the backend.
func (r *Renderer) Close() {
	if r.tr != nil {
		r.tr.Close()
		r.tr = nil
	}
}
