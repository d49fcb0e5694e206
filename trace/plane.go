package trace

import (
	"math"

	"github.com/hunterpaulson/blackhole/types"
)

// Plane describes the accretion disk plane. The zero tilt case keeps
// the equatorial plane and takes a cheaper crossing test based on the
// theta coordinate alone.
type Plane struct {
	equatorial bool

	// Unit normal and right-handed in-plane basis (u, v), used to
	// detect crossings of a tilted plane and to measure the in-plane
	// azimuth at the crossing point.
	n types.Vec3
	u types.Vec3
	v types.Vec3
}

// NewPlane builds the disk plane for the given tilt in degrees. The
// tilt rotates the equatorial plane normal around the world X axis;
// zero yields the equatorial plane.
func NewPlane(tiltDeg float64) Plane {
	if tiltDeg == 0 {
		return Plane{equatorial: true}
	}

	tilt := tiltDeg * math.Pi / 180.0
	n := types.XYZ(0, -math.Sin(tilt), math.Cos(tilt))
	u := types.XYZ(1, 0, 0)
	return Plane{
		n: n,
		u: u,
		v: n.Cross(u),
	}
}

// Equatorial reports whether the plane is the untilted default.
func (pl Plane) Equatorial() bool {
	return pl.equatorial
}

// signedDist evaluates the signed distance proxy of a spherical
// position relative to the disk plane. Crossings show up as sign
// changes between consecutive integration steps.
func (pl Plane) signedDist(r, th, ph float64) float64 {
	if pl.equatorial {
		return th - math.Pi/2.0
	}
	return pl.n.Dot(types.FromSpherical(r, th, ph))
}

// azimuth returns the in-plane azimuth of a crossing point, normalized
// into [0, 2*pi).
func (pl Plane) azimuth(r, th, ph float64) float64 {
	var phi float64
	if pl.equatorial {
		phi = ph
	} else {
		pos := types.FromSpherical(r, th, ph)
		phi = math.Atan2(pos.Dot(pl.v), pos.Dot(pl.u))
	}
	return math.Mod(phi+1000.0*2.0*math.Pi, 2.0*math.Pi)
}
