package trace

import (
	"math"
	"testing"

	"github.com/hunterpaulson/blackhole/scene"
)

func canonicalParams() *scene.Params {
	// width=80 height=52 inc=10deg FOVx=60deg robs=39: the near edge
	// of the ring system crosses the image center.
	return scene.New()
}

func TestClassificationCompleteness(t *testing.T) {
	p := canonicalParams()
	m := Map(p)

	if len(m) != p.PixelCount() {
		t.Fatalf("expected %d hits; got %d", p.PixelCount(), len(m))
	}

	for i, h := range m {
		if h.Hit {
			if h.Bg != BgDisk {
				t.Fatalf("cell %d: expected hit cell to classify as disk; got %s", i, h.Bg)
			}
			continue
		}
		switch h.Bg {
		case BgSky, BgHorizon, BgInnerBand:
		default:
			t.Fatalf("cell %d: expected miss to classify as sky, horizon or inner band; got %s", i, h.Bg)
		}
	}
}

func TestDiskBoundInvariant(t *testing.T) {
	m := Map(canonicalParams())

	hits := 0
	for i, h := range m {
		if !h.Hit {
			continue
		}
		hits++
		if h.R < Rin || h.R > Rout {
			t.Fatalf("cell %d: expected disk hit radius in [%f, %f]; got %f", i, Rin, Rout, h.R)
		}
	}
	if hits == 0 {
		t.Fatal("expected the canonical view to produce disk hits")
	}
}

func TestDopplerNonNegative(t *testing.T) {
	for _, robs := range []float64{20.0, 39.0, 200.0} {
		p := canonicalParams()
		p.Robs = robs
		for i, h := range Map(p) {
			if h.Hit && (h.G < 0 || math.IsNaN(h.G)) {
				t.Fatalf("robs=%f cell %d: expected g >= 0; got %f", robs, i, h.G)
			}
		}
	}
}

func TestCanonicalScenario(t *testing.T) {
	p := canonicalParams()
	m := Map(p)

	// Center column, middle rows: the disk's near edge crosses the
	// image center at this configuration.
	cx := p.Width / 2
	found := false
	for y := p.Height/2 - 3; y <= p.Height/2+3; y++ {
		if m[y*p.Width+cx].Hit {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected disk hits near the image center in the canonical view")
	}

	// Outer quadrants: far from the ring's angular extent everything
	// is sky or horizon, never the inner band.
	corners := [][2]int{{1, 1}, {p.Width - 2, 1}, {1, p.Height - 2}, {p.Width - 2, p.Height - 2}}
	for _, c := range corners {
		h := m[c[1]*p.Width+c[0]]
		if h.Hit {
			continue
		}
		if h.Bg == BgInnerBand {
			t.Fatalf("cell (%d,%d): expected outer quadrant to be sky or horizon; got %s", c[0], c[1], h.Bg)
		}
	}
}

func TestMapDeterminism(t *testing.T) {
	p := canonicalParams()
	m1 := Map(p)
	m2 := Map(p)

	for i := range m1 {
		if m1[i] != m2[i] {
			t.Fatalf("cell %d: expected repeated traces to be identical; got %+v vs %+v", i, m1[i], m2[i])
		}
	}
}

func TestSkyDirectionRecorded(t *testing.T) {
	m := Map(canonicalParams())

	for i, h := range m {
		if h.Bg != BgSky || h.Hit {
			continue
		}
		if h.PhiFinal < 0 || h.PhiFinal >= 2*math.Pi {
			t.Fatalf("cell %d: expected phi_final in [0, 2*pi); got %f", i, h.PhiFinal)
		}
		if h.ThetaFinal <= 0 || h.ThetaFinal >= math.Pi {
			t.Fatalf("cell %d: expected theta_final in (0, pi); got %f", i, h.ThetaFinal)
		}
	}
}

func TestMapRowsMatchesMap(t *testing.T) {
	p := canonicalParams()
	p.Width, p.Height = 40, 26
	p.UpdateDerived()

	full := Map(p)
	split := make([]Hit, p.PixelCount())
	MapRows(p, split, 0, p.Height/2)
	MapRows(p, split, p.Height/2, p.Height)

	for i := range full {
		if full[i] != split[i] {
			t.Fatalf("cell %d: expected row-partitioned trace to match full trace", i)
		}
	}
}

func TestTiltedPlaneStillBounded(t *testing.T) {
	p := canonicalParams()
	p.Width, p.Height = 40, 26
	p.TiltDeg = 20
	p.UpdateDerived()

	for i, h := range Map(p) {
		if h.Hit && (h.R < Rin || h.R > Rout) {
			t.Fatalf("cell %d: expected tilted disk hit radius in [%f, %f]; got %f", i, Rin, Rout, h.R)
		}
	}
}

func TestRollChangesGeometry(t *testing.T) {
	p := canonicalParams()
	p.Width, p.Height = 40, 26
	p.UpdateDerived()
	m1 := Map(p)

	p.SetRoll(math.Pi / 2)
	m2 := Map(p)

	diff := 0
	for i := range m1 {
		if m1[i].Bg != m2[i].Bg {
			diff++
		}
	}
	if diff == 0 {
		t.Fatal("expected a 90 degree roll to change at least one cell classification")
	}
}
