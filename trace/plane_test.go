package trace

import (
	"math"
	"testing"
)

func TestPlaneEquatorial(t *testing.T) {
	pl := NewPlane(0)
	if !pl.Equatorial() {
		t.Fatal("zero tilt should yield the equatorial plane")
	}
	if NewPlane(15).Equatorial() {
		t.Fatal("non-zero tilt should not be equatorial")
	}
}

func TestPlaneSignedDistSignChange(t *testing.T) {
	specs := []struct {
		tiltDeg float64
	}{
		{0},
		{15},
		{-30},
	}

	for _, spec := range specs {
		pl := NewPlane(spec.tiltDeg)

		// Points well above and below any plane tilted less than 45
		// degrees must land on opposite sides.
		above := pl.signedDist(20, 0.2, 1.0)
		below := pl.signedDist(20, math.Pi-0.2, 1.0)
		if above*below >= 0 {
			t.Errorf("tilt %.0f: expected opposite signs; got %g and %g", spec.tiltDeg, above, below)
		}
	}
}

func TestPlaneAzimuthRange(t *testing.T) {
	for _, tiltDeg := range []float64{0, 15, -30} {
		pl := NewPlane(tiltDeg)
		for _, ph := range []float64{-3, -0.5, 0, 1, 4, 7} {
			got := pl.azimuth(20, math.Pi/2, ph)
			if got < 0 || got >= 2*math.Pi {
				t.Errorf("tilt %.0f phi %.1f: azimuth %g outside [0, 2pi)", tiltDeg, ph, got)
			}
		}
	}
}
