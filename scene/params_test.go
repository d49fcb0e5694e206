package scene

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestDerivedFields(t *testing.T) {
	p := New()

	expTheta := math.Pi/2.0 - 10.0*math.Pi/180.0
	if math.Abs(p.ThetaObs-expTheta) > 1e-12 {
		t.Fatalf("expected theta_obs to be %f; got %f", expTheta, p.ThetaObs)
	}

	expFOVy := p.FOVx * 52.0 / 80.0
	if math.Abs(p.FOVy-expFOVy) > 1e-12 {
		t.Fatalf("expected FOVy to be %f; got %f", expFOVy, p.FOVy)
	}

	// Derived fields must track their inputs.
	p.Height = 40
	p.SetInclination(45)
	expTheta = math.Pi / 4.0
	if math.Abs(p.ThetaObs-expTheta) > 1e-12 {
		t.Fatalf("expected theta_obs to be %f after update; got %f", expTheta, p.ThetaObs)
	}
	expFOVy = p.FOVx * 40.0 / 80.0
	if math.Abs(p.FOVy-expFOVy) > 1e-12 {
		t.Fatalf("expected FOVy to be %f after update; got %f", expFOVy, p.FOVy)
	}
}

func TestDimensionFloor(t *testing.T) {
	p := New()
	p.Width = 0
	p.Height = -3
	p.UpdateDerived()

	if p.Width != 1 || p.Height != 1 {
		t.Fatalf("expected dimensions to be floored at 1x1; got %dx%d", p.Width, p.Height)
	}
}

func TestSetterRanges(t *testing.T) {
	type spec struct {
		set      func(*Params, float64) bool
		value    float64
		accepted bool
	}
	specs := []spec{
		{(*Params).SetInclination, 45, true},
		{(*Params).SetInclination, 89, false},
		{(*Params).SetInclination, -120, false},
		{(*Params).SetFOVx, 60, true},
		{(*Params).SetFOVx, 4, false},
		{(*Params).SetFOVx, 171, false},
		{(*Params).SetObserverRadius, 39, true},
		{(*Params).SetObserverRadius, 9, false},
		{(*Params).SetObserverRadius, 3000, false},
		{(*Params).SetTilt, 15, true},
		{(*Params).SetTilt, 95, false},
	}

	for index, s := range specs {
		p := New()
		before := *p
		got := s.set(p, s.value)
		if got != s.accepted {
			t.Fatalf("[spec %d] expected accepted to be %t for value %f; got %t", index, s.accepted, s.value, got)
		}
		if !s.accepted && *p != before {
			t.Fatalf("[spec %d] expected rejected value %f to leave params untouched", index, s.value)
		}
	}
}

func TestPhaseWrap(t *testing.T) {
	p := New()
	p.AdvancePhase(3 * math.Pi)
	if p.Phase < 0 || p.Phase > 2*math.Pi {
		t.Fatalf("expected phase in [0, 2*pi]; got %f", p.Phase)
	}
	if math.Abs(p.Phase-math.Pi) > 1e-12 {
		t.Fatalf("expected phase to wrap to pi; got %f", p.Phase)
	}
}

func TestPackLayout(t *testing.T) {
	p := New()
	p.Phase = 0.5
	buf := p.Pack()

	if len(buf) != PackedLen {
		t.Fatalf("expected packed params to be %d bytes; got %d", PackedLen, len(buf))
	}

	if w := binary.LittleEndian.Uint32(buf[0:]); w != 80 {
		t.Fatalf("expected packed width to be 80; got %d", w)
	}
	if h := binary.LittleEndian.Uint32(buf[4:]); h != 52 {
		t.Fatalf("expected packed height to be 52; got %d", h)
	}

	fields := []float64{
		p.Robs, p.ThetaObs, p.PhiObs, p.FOVx,
		p.FOVy, p.Roll, p.Phase, p.Gamma,
	}
	for i, exp := range fields {
		got := math.Float64frombits(binary.LittleEndian.Uint64(buf[8+8*i:]))
		if got != exp {
			t.Fatalf("expected packed field %d to be %f; got %f", i, exp, got)
		}
	}
}
