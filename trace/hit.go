// Package trace builds per-cell ray-trace results for the accretion
// disk view: it fires one null geodesic per grid cell from the observer
// and classifies its fate.
package trace

// Accretion disk extent and emissivity exponent, in units of M.
const (
	Rin    = 6.0
	Rout   = 40.0
	EmissP = 2.0
)

// BgType classifies rays that did not strike the disk.
type BgType uint8

const (
	// BgDisk marks a disk strike; only valid together with Hit=true.
	BgDisk BgType = iota

	// BgSky marks rays that escaped to the starfield.
	BgSky

	// BgHorizon marks rays captured by the hole or grazing the photon
	// sphere.
	BgHorizon

	// BgInnerBand marks rays whose closest approach fell between the
	// photon sphere and the inner disk edge; rendered black, no stars.
	BgInnerBand
)

func (b BgType) String() string {
	switch b {
	case BgDisk:
		return "disk"
	case BgSky:
		return "sky"
	case BgHorizon:
		return "event_horizon"
	case BgInnerBand:
		return "inner_band"
	}
	return "unknown"
}

// Hit is the per-cell result of tracing one ray to termination.
//
// R, Phi, G and Emiss are only meaningful when Hit is true; ThetaFinal
// and PhiFinal are only meaningful for BgSky cells, where they record
// the asymptotic ray direction used for starfield lookup.
type Hit struct {
	R     float64
	Phi   float64
	G     float64
	Emiss float64

	ThetaFinal float64
	PhiFinal   float64

	Hit bool
	Bg  BgType
}
