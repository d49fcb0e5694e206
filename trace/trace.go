package trace

import (
	"math"

	"github.com/hunterpaulson/blackhole/physics"
	"github.com/hunterpaulson/blackhole/scene"
)

const (
	// Iteration ceiling per ray.
	maxSteps = 5000

	// Base integration step.
	baseStep = 0.5

	// Capture radius: just outside the horizon to avoid the metric
	// singularity.
	captureRadius = 1.001 * physics.EventHorizon

	// Escape test: the ray must clear this multiple of the observer
	// radius, and only counts after a minimum number of steps so that
	// outward-starting rays are not classified immediately.
	escapeFactor = 1.2
	minSteps     = 10
)

// PixRay builds the initial 4-position and null 4-velocity for grid
// cell (px, py) using a pinhole camera at the observer: tan-mapped
// angular offsets, rotated by the camera roll, converted to coordinate
// velocities through the static observer's orthonormal tetrad.
func PixRay(p *scene.Params, px, py int) (x, v [4]float64) {
	u := (float64(px)+0.5)/float64(p.Width) - 0.5
	w := (float64(py)+0.5)/float64(p.Height) - 0.5
	ax := u * p.FOVx
	ay := w * p.FOVy

	tx := math.Tan(ax)
	ty := math.Tan(ay)
	if p.Roll != 0 {
		cr, sr := math.Cos(p.Roll), math.Sin(p.Roll)
		tx, ty = tx*cr-ty*sr, tx*sr+ty*cr
	}

	nr, nth, nph := -1.0, ty, tx
	norm := math.Sqrt(nr*nr + nth*nth + nph*nph)
	nr /= norm
	nth /= norm
	nph /= norm

	ar := physics.A(p.Robs)
	s := math.Sin(p.ThetaObs)
	if s < 1e-12 {
		s = 1e-12
	}

	x = [4]float64{0, p.Robs, p.ThetaObs, p.PhiObs}
	v = [4]float64{
		1.0 / math.Sqrt(ar),
		nr * math.Sqrt(ar),
		nth / p.Robs,
		nph / (p.Robs * s),
	}
	return x, v
}

// Pixel traces the ray for cell (px, py) to termination and returns
// its Hit record. Every ray ends in exactly one of the four
// classifications; the step ceiling falls back to closest-approach
// classification.
func Pixel(p *scene.Params, pl Plane, px, py int) Hit {
	var h Hit

	x, v := PixRay(p, px, py)
	xPrev, vPrev := x, v
	sPrev := pl.signedDist(x[1], x[2], x[3])
	rmin := x[1]

	for step := 0; step < maxSteps; step++ {
		physics.StepRK4(&x, &v, physics.StepSize(x[1], baseStep))

		// A degenerate state cannot be classified by its trajectory
		// any further; fall back to the closest approach seen so far.
		if math.IsNaN(x[1]) || math.IsInf(x[1], 0) {
			break
		}

		if x[1] < rmin {
			rmin = x[1]
		}

		if x[1] <= captureRadius {
			h.Bg = BgHorizon
			return h
		}

		if x[1] > escapeFactor*p.Robs && step > minSteps {
			classifyEscape(&h, rmin, x[2], x[3])
			return h
		}

		sCur := pl.signedDist(x[1], x[2], x[3])
		if sPrev*sCur <= 0.0 {
			f := -sPrev / (sCur - sPrev + 1e-15)
			if f < 0 {
				f = 0
			}
			if f > 1 {
				f = 1
			}
			rhit := xPrev[1] + f*(x[1]-xPrev[1])
			thit := xPrev[2] + f*(x[2]-xPrev[2])
			phit := xPrev[3] + f*(x[3]-xPrev[3])

			if rhit >= Rin && rhit <= Rout {
				var vh [4]float64
				for i := 0; i < 4; i++ {
					vh[i] = vPrev[i] + f*(v[i]-vPrev[i])
				}
				h.Hit = true
				h.Bg = BgDisk
				h.R = rhit
				h.Phi = pl.azimuth(rhit, thit, phit)
				h.G = doppler(p.Robs, rhit, thit, &vh)
				h.Emiss = math.Pow(rhit, -EmissP)
				return h
			}
		}

		sPrev = sCur
		xPrev, vPrev = x, v
	}

	classifyEscape(&h, rmin, x[2], x[3])
	return h
}

// classifyEscape buckets a non-disk ray by its closest approach and,
// for sky rays, records the asymptotic direction for starfield lookup.
func classifyEscape(h *Hit, rmin, thFinal, phFinal float64) {
	switch {
	case rmin < physics.PhotonSphere:
		h.Bg = BgHorizon
	case rmin < Rin:
		h.Bg = BgInnerBand
	default:
		h.Bg = BgSky
		if math.IsNaN(thFinal) || math.IsNaN(phFinal) {
			// Degenerate ray: keep the classification but give the
			// starfield lookup a stable direction.
			thFinal, phFinal = math.Pi/2.0, 0
		}
		h.ThetaFinal = thFinal
		h.PhiFinal = math.Mod(phFinal+1000.0*2.0*math.Pi, 2.0*math.Pi)
	}
}

// doppler computes g = E_obs / E_em: the photon's covariant
// time-momentum projected onto the static observer at robs versus a
// circular Keplerian orbiter at the hit radius. The result is floored
// at zero and the emitter energy clamped away from zero.
func doppler(robs, rhit, thit float64, vh *[4]float64) float64 {
	gtt, _, _, gphph := physics.Metric(rhit, thit)
	p0 := gtt * vh[0]
	p3 := gphph * vh[3]

	utObs := 1.0 / math.Sqrt(physics.A(robs))
	eObs := -(p0 * utObs)

	denom := math.Sqrt(1.0 - 3.0*physics.M/rhit)
	ut := 1.0 / denom
	uphi := math.Sqrt(physics.M/(rhit*rhit*rhit)) / denom
	eEm := -(p0*ut + p3*uphi)
	if eEm <= 1e-15 {
		eEm = 1e-15
	}

	g := eObs / eEm
	if g < 0 || math.IsNaN(g) {
		return 0
	}
	return g
}

// Map traces the full grid and returns the row-major hit map. The map
// only depends on geometry parameters (radius, inclination, roll, FOV,
// tilt); the animation phase never invalidates it.
func Map(p *scene.Params) []Hit {
	pl := NewPlane(p.TiltDeg)
	m := make([]Hit, p.PixelCount())
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			m[y*p.Width+x] = Pixel(p, pl, x, y)
		}
	}
	return m
}

// MapRows traces rows [y0, y1) into dst, which must hold the full
// grid. Rows are independent, so callers may partition the grid across
// workers.
func MapRows(p *scene.Params, dst []Hit, y0, y1 int) {
	pl := NewPlane(p.TiltDeg)
	for y := y0; y < y1; y++ {
		for x := 0; x < p.Width; x++ {
			dst[y*p.Width+x] = Pixel(p, pl, x, y)
		}
	}
}
