package shade

import (
	"math"
	"strings"
	"testing"

	"github.com/hunterpaulson/blackhole/scene"
	"github.com/hunterpaulson/blackhole/trace"
)

func TestRampLength(t *testing.T) {
	if len(Ramp) != 30 {
		t.Fatalf("expected a 30 character ramp; got %d", len(Ramp))
	}
	for _, star := range ".+*" {
		if strings.ContainsRune(Ramp, star) {
			t.Fatalf("expected ramp to exclude starfield glyph %q", star)
		}
	}
}

func TestRingMulBounds(t *testing.T) {
	for r := 0.0; r <= 50.0; r += 0.25 {
		v := RingMul(r)
		if v < ringFloor-1e-9 || v > ringPeak+1e-9 {
			t.Fatalf("expected ring multiplier in [%f, %f] at r=%f; got %f", ringFloor, ringPeak, r, v)
		}
	}
}

func TestHotspotBoostsNearCenter(t *testing.T) {
	// At phase 0 the hotspot sits at (rc, 0): a point there must be
	// boosted close to 1+amp, a point opposite must stay near 1.
	near := HotspotMul(hotspotCenter, 0, 0)
	far := HotspotMul(hotspotCenter, math.Pi, 0)

	if near < 1.0+hotspotAmp*0.9 {
		t.Fatalf("expected hotspot center boost near %f; got %f", 1.0+hotspotAmp, near)
	}
	if far > 1.1 {
		t.Fatalf("expected far side multiplier near 1; got %f", far)
	}
}

func TestGammaMonotonicity(t *testing.T) {
	// Increasing gamma must never raise the mapped ramp index for a
	// radiance value in (0, 1).
	h := &trace.Hit{Hit: true, Bg: trace.BgDisk, R: 20, G: 0.7, Emiss: math.Pow(20, -2)}

	gammas := []float64{0.1, 0.3, 0.5, 0.8, 1.0, 1.5}
	prev := 0
	for i, gamma := range gammas {
		c := DiskChar(h, 0, 1.0, gamma)
		idx := strings.IndexByte(Ramp, c)
		if idx < 0 {
			t.Fatalf("disk char %q not found in ramp", c)
		}
		if i > 0 && idx > prev {
			t.Fatalf("expected ramp index to be non-increasing with gamma; got %d after %d at gamma=%f", idx, prev, gamma)
		}
		prev = idx
	}
}

func TestNormScale(t *testing.T) {
	m := []trace.Hit{
		{Hit: true, Bg: trace.BgDisk, R: 10, G: 1.0, Emiss: 0.01},
		{Hit: true, Bg: trace.BgDisk, R: 20, G: 0.5, Emiss: 0.0025},
		{Bg: trace.BgSky},
	}

	scale := NormScale(m)
	exp := BaseValue(&m[0])
	if BaseValue(&m[1]) > exp {
		exp = BaseValue(&m[1])
	}
	if scale != exp {
		t.Fatalf("expected norm scale %g; got %g", exp, scale)
	}

	// No disk cells: the floor keeps the scale positive.
	if s := NormScale(m[2:]); s <= 0 {
		t.Fatalf("expected positive norm scale for empty map; got %g", s)
	}
}

func TestNonFiniteRadianceIsZero(t *testing.T) {
	h := &trace.Hit{Hit: true, Bg: trace.BgDisk, R: 20, G: math.NaN(), Emiss: 0.0025}
	if v := BaseValue(h); v != 0 {
		t.Fatalf("expected NaN radiance to contribute zero; got %g", v)
	}
	if c := DiskChar(h, 0, 1.0, 0.3); c != Ramp[0] {
		t.Fatalf("expected darkest symbol for NaN radiance; got %q", c)
	}
}

func TestSkyDeterminism(t *testing.T) {
	h := &trace.Hit{Bg: trace.BgSky, ThetaFinal: 1.2, PhiFinal: 4.5}

	c1 := SkyChar(h, 0.25)
	c2 := SkyChar(h, 0.25)
	if c1 != c2 {
		t.Fatalf("expected identical sky char for fixed direction and phase; got %q vs %q", c1, c2)
	}

	// Same direction, different screen cell: the symbol only depends
	// on the direction.
	h2 := *h
	if c3 := SkyChar(&h2, 0.25); c3 != c1 {
		t.Fatalf("expected sky char to depend only on direction; got %q vs %q", c3, c1)
	}
}

func TestFrameText(t *testing.T) {
	p := scene.New()
	p.Width, p.Height = 4, 3
	p.UpdateDerived()

	m := make([]trace.Hit, p.PixelCount())
	for i := range m {
		m[i].Bg = trace.BgHorizon
	}
	cells := Frame(p, m, 0, 1.0)
	text := Text(p, cells)

	rows := strings.Split(text, "\n")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows; got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != 4 {
			t.Fatalf("expected row %d to have 4 chars; got %d", i, len(row))
		}
		if row != "    " {
			t.Fatalf("expected blank row for horizon cells; got %q", row)
		}
	}
	if strings.HasSuffix(text, "\n") {
		t.Fatal("expected no trailing newline in frame text")
	}
}
