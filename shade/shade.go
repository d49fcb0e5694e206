// Package shade maps a completed hit map plus an animation phase to a
// grid of display symbols: banded disk radiance with a rotating
// hotspot and Doppler boosting, and a deterministic procedural
// starfield for sky cells.
package shade

import (
	"math"

	"github.com/hunterpaulson/blackhole/scene"
	"github.com/hunterpaulson/blackhole/trace"
)

// Ramp is the display ramp from darkest to brightest. Downstream
// consumers (dump files, live displays) assume this exact sequence, so
// it must never be reordered. The starfield glyphs '.', '+' and '*'
// are deliberately excluded.
const Ramp = " `,-:'_;~/\\^\"<>!=()?{}|[]#%$&@"

// Ring banding parameters: a smoothed square wave across [Rin, Rout]
// emulating Saturn-like rings.
const (
	ringBands    = 8.0
	ringFillFrac = 0.30
	ringEdgeSoft = 0.02
	ringFloor    = 0.12
	ringPeak     = 1.45
)

// Rotating hotspot parameters, all relative to the outer disk radius.
const (
	hotspotAmp    = 3.0
	hotspotCenter = 0.5 * trace.Rout
	hotspotRadius = 0.5 * trace.Rout
	hotspotEdge   = 0.1 * trace.Rout
)

// RingMul returns the radial banding multiplier at disk radius r.
func RingMul(r float64) float64 {
	if r < trace.Rin {
		r = trace.Rin
	}
	if r > trace.Rout {
		r = trace.Rout
	}
	s := (r - trace.Rin) / (trace.Rout - trace.Rin)
	pos := ringBands * s
	f := pos - math.Floor(pos)
	w := ringEdgeSoft + 1e-6
	t := 0.5 + 0.5*math.Tanh((ringFillFrac-f)/w)
	return ringFloor + (ringPeak-ringFloor)*t
}

// HotspotMul returns the hotspot multiplier at disk position (r, phi)
// for the given phase. The hotspot is a soft circular boost rotating
// clockwise at -phase.
func HotspotMul(r, phi, phase float64) float64 {
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)

	cx := hotspotCenter * math.Cos(-phase)
	cy := hotspotCenter * math.Sin(-phase)
	dx, dy := x-cx, y-cy
	d := math.Sqrt(dx*dx + dy*dy)
	t := 0.5 + 0.5*math.Tanh((hotspotRadius-d)/(hotspotEdge+1e-9))
	return 1.0 + hotspotAmp*t
}

// BaseValue returns the phase-independent disk radiance
// emiss * g^3 * ring(r). Non-finite values contribute zero.
func BaseValue(h *trace.Hit) float64 {
	v := h.Emiss * h.G * h.G * h.G * RingMul(h.R)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// NormScale computes the fixed normalization scale for a hit map: the
// maximum base (no-hotspot) radiance over all disk cells. Using the
// base field keeps brightness stable as the hotspot rotates instead of
// flickering per frame.
func NormScale(m []trace.Hit) float64 {
	scale := 1e-12
	for i := range m {
		if !m[i].Hit {
			continue
		}
		if base := BaseValue(&m[i]); base > scale {
			scale = base
		}
	}
	return scale
}

// DiskChar maps a disk hit to its ramp symbol.
func DiskChar(h *trace.Hit, phase, normScale, gamma float64) byte {
	v := BaseValue(h) * HotspotMul(h.R, h.Phi, phase) / normScale
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	q := math.Pow(v, gamma)
	idx := int(q * float64(len(Ramp)-1))
	if idx < 0 {
		idx = 0
	}
	if idx > len(Ramp)-1 {
		idx = len(Ramp) - 1
	}
	return Ramp[idx]
}

// Sky hash constants: an FNV-style integer mix keyed on the quantized
// asymptotic ray direction. Hashing the direction instead of the
// screen position makes stars track camera orientation changes and
// lens near the photon sphere while staying reproducible.
const (
	skyHashSeed  = 1469598103
	skyHashMulTh = 374761393
	skyHashMulPh = 668265263
	skyHashPrime = 16777619

	// Direction bins per radian; coarse enough that a star spans a
	// cell, fine enough that neighboring cells differ.
	skyBinsPerRad = 40.0
)

func skyHash(thetaFinal, phiFinal float64) uint32 {
	ti := uint32(int32(thetaFinal * skyBinsPerRad))
	pi := uint32(int32(phiFinal * skyBinsPerRad))
	h := uint32(skyHashSeed)
	h ^= ti*skyHashMulTh + pi*skyHashMulPh
	h *= skyHashPrime
	return h
}

// SkyChar returns the starfield symbol for a sky cell: density tiers
// of dim static dots, medium stars with slow twinkle and bright stars
// with faster twinkle, each twinkle offset derived from the hash.
func SkyChar(h *trace.Hit, phase float64) byte {
	hash := skyHash(h.ThetaFinal, h.PhiFinal)
	r := hash & 0xffff
	switch {
	case r < 12000:
		return '.'
	case r < 16000:
		tw := math.Sin(phase*0.60 + float64((hash>>8)&1023)*(2.0*math.Pi/1024.0))
		if tw > 0.92 {
			return '*'
		}
		return '+'
	case r < 16800:
		tw := math.Sin(phase*0.75 + float64(hash&1023)*(2.0*math.Pi/1024.0))
		if tw > 0.10 {
			return '*'
		}
		return '+'
	}
	return ' '
}

// FrameInto renders one symbol per cell into dst, which must hold
// width*height bytes. Horizon and inner-band cells are blank.
func FrameInto(dst []byte, p *scene.Params, m []trace.Hit, phase, normScale float64) {
	if normScale <= 0 {
		normScale = 1.0
	}
	for i := range m {
		h := &m[i]
		switch {
		case h.Hit:
			dst[i] = DiskChar(h, phase, normScale, p.Gamma)
		case h.Bg == trace.BgSky:
			dst[i] = SkyChar(h, phase)
		default:
			dst[i] = ' '
		}
	}
}

// Frame renders the hit map at the given phase and returns the
// row-major cell symbols.
func Frame(p *scene.Params, m []trace.Hit, phase, normScale float64) []byte {
	dst := make([]byte, len(m))
	FrameInto(dst, p, m, phase, normScale)
	return dst
}

// Text joins a row-major symbol buffer into the frame text format:
// height rows of width characters separated by newlines, no trailing
// delimiter.
func Text(p *scene.Params, cells []byte) string {
	out := make([]byte, 0, len(cells)+p.Height)
	for y := 0; y < p.Height; y++ {
		if y > 0 {
			out = append(out, '\n')
		}
		out = append(out, cells[y*p.Width:(y+1)*p.Width]...)
	}
	return string(out)
}
