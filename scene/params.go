package scene

import (
	"encoding/binary"
	"math"
)

// Safe ranges for observer controls. Values outside these ranges are
// ignored and the previous value is kept.
const (
	MinIncDeg  = -89.0
	MaxIncDeg  = 89.0
	MinFOVxDeg = 5.0
	MaxFOVxDeg = 170.0
	MinRobs    = 10.0
	MaxRobs    = 2000.0
	MinTiltDeg = -89.0
	MaxTiltDeg = 89.0
)

// PackedLen is the byte length of the packed uniform representation
// produced by Pack: two uint32 grid dims followed by eight float64
// observer fields. The 8-byte fields start at offset 8 so the layout
// needs no explicit padding.
const PackedLen = 8 + 8*8

// Params holds the immutable-per-frame scene configuration. Derived
// fields (ThetaObs, FOVy) must be refreshed through UpdateDerived
// whenever any of their inputs change; the setters below do this
// automatically.
type Params struct {
	// Output grid dimensions in cells.
	Width  int
	Height int

	// Observer placement: Boyer-Lindquist radius, inclination above the
	// equatorial plane in degrees and azimuth in radians.
	Robs   float64
	IncDeg float64
	PhiObs float64

	// Camera roll around the view axis, in radians.
	Roll float64

	// Horizontal field of view in radians.
	FOVx float64

	// Display gamma exponent.
	Gamma float64

	// Animation phase in radians; wraps at 2*pi.
	Phase float64

	// Disk plane tilt away from the equatorial plane in degrees.
	// Zero keeps the standard equatorial disk.
	TiltDeg float64

	// Derived fields; do not assign directly.
	ThetaObs float64
	FOVy     float64
}

// New returns scene parameters for the canonical 80x52 view.
func New() *Params {
	p := &Params{
		Width:  80,
		Height: 52,
		Robs:   39.0,
		IncDeg: 10.0,
		FOVx:   60.0 * math.Pi / 180.0,
		Gamma:  0.30,
	}
	p.UpdateDerived()
	return p
}

// UpdateDerived recomputes ThetaObs and FOVy from their inputs and
// floors the grid dimensions at 1.
func (p *Params) UpdateDerived() {
	if p.Width < 1 {
		p.Width = 1
	}
	if p.Height < 1 {
		p.Height = 1
	}
	p.ThetaObs = math.Pi/2.0 - p.IncDeg*math.Pi/180.0
	p.FOVy = p.FOVx * float64(p.Height) / float64(p.Width)
}

// PixelCount returns the number of grid cells.
func (p *Params) PixelCount() int {
	return p.Width * p.Height
}

// SetInclination updates the observer inclination. Returns false and
// keeps the previous value when deg is outside the safe range.
func (p *Params) SetInclination(deg float64) bool {
	if deg <= MinIncDeg || deg >= MaxIncDeg {
		return false
	}
	p.IncDeg = deg
	p.UpdateDerived()
	return true
}

// SetFOVx updates the horizontal field of view from degrees.
func (p *Params) SetFOVx(deg float64) bool {
	if deg <= MinFOVxDeg || deg >= MaxFOVxDeg {
		return false
	}
	p.FOVx = deg * math.Pi / 180.0
	p.UpdateDerived()
	return true
}

// SetObserverRadius updates the observer radius.
func (p *Params) SetObserverRadius(r float64) bool {
	if r <= MinRobs || r >= MaxRobs {
		return false
	}
	p.Robs = r
	return true
}

// SetRoll updates the camera roll (radians). Roll is unbounded; it is
// normalized into (-pi, pi].
func (p *Params) SetRoll(rad float64) {
	p.Roll = math.Remainder(rad, 2.0*math.Pi)
}

// SetTilt updates the disk plane tilt.
func (p *Params) SetTilt(deg float64) bool {
	if deg < MinTiltDeg || deg > MaxTiltDeg {
		return false
	}
	p.TiltDeg = deg
	return true
}

// AdvancePhase advances the animation phase, wrapping at 2*pi.
func (p *Params) AdvancePhase(d float64) {
	p.Phase += d
	for p.Phase > 2.0*math.Pi {
		p.Phase -= 2.0 * math.Pi
	}
	for p.Phase < 0 {
		p.Phase += 2.0 * math.Pi
	}
}

// Pack serializes the parameters into the fixed cross-boundary layout
// consumed by the device kernels: u32 width, u32 height, then f64 robs,
// theta_obs, phi_obs, FOVx, FOVy, roll, phase, gamma (little-endian).
func (p *Params) Pack() []byte {
	buf := make([]byte, PackedLen)
	binary.LittleEndian.PutUint32(buf[0:], uint32(p.Width))
	binary.LittleEndian.PutUint32(buf[4:], uint32(p.Height))
	for i, v := range []float64{
		p.Robs, p.ThetaObs, p.PhiObs, p.FOVx,
		p.FOVy, p.Roll, p.Phase, p.Gamma,
	} {
		binary.LittleEndian.PutUint64(buf[8+8*i:], math.Float64bits(v))
	}
	return buf
}
