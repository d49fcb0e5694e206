package cpu

import (
	"strings"
	"testing"

	"github.com/hunterpaulson/blackhole/scene"
)

func TestFrameTextFormat(t *testing.T) {
	p := scene.New()
	p.Width, p.Height = 40, 26
	p.UpdateDerived()

	tr := NewTracer(1)
	defer tr.Close()
	if err := tr.Setup(p); err != nil {
		t.Fatal(err)
	}
	if err := tr.Trace(); err != nil {
		t.Fatal(err)
	}

	text, err := tr.Frame(0)
	if err != nil {
		t.Fatal(err)
	}

	rows := strings.Split(text, "\n")
	if len(rows) != p.Height {
		t.Fatalf("expected %d rows; got %d", p.Height, len(rows))
	}
	for i, row := range rows {
		if len(row) != p.Width {
			t.Fatalf("expected row %d to have %d chars; got %d", i, p.Width, len(row))
		}
	}
}

func TestFrameDeterminism(t *testing.T) {
	p := scene.New()
	p.Width, p.Height = 40, 26
	p.UpdateDerived()

	render := func() string {
		tr := NewTracer(1)
		defer tr.Close()
		if err := tr.Setup(p); err != nil {
			t.Fatal(err)
		}
		if err := tr.Trace(); err != nil {
			t.Fatal(err)
		}
		text, err := tr.Frame(0.7)
		if err != nil {
			t.Fatal(err)
		}
		return text
	}

	if f1, f2 := render(), render(); f1 != f2 {
		t.Fatal("expected repeated renders to be byte identical")
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	p := scene.New()
	p.Width, p.Height = 40, 26
	p.UpdateDerived()

	seq := NewTracer(1)
	defer seq.Close()
	par := NewTracer(4)
	defer par.Close()

	for _, tr := range []*Tracer{seq, par} {
		if err := tr.Setup(p); err != nil {
			t.Fatal(err)
		}
		if err := tr.Trace(); err != nil {
			t.Fatal(err)
		}
	}

	f1, err := seq.Frame(0.3)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := par.Frame(0.3)
	if err != nil {
		t.Fatal(err)
	}
	if f1 != f2 {
		t.Fatal("expected parallel trace to match the sequential reference")
	}
}

func TestFrameBeforeTrace(t *testing.T) {
	tr := NewTracer(1)
	defer tr.Close()
	if err := tr.Setup(scene.New()); err != nil {
		t.Fatal(err)
	}

	if _, err := tr.Frame(0); err == nil {
		t.Fatal("expected an error when shading before the first trace")
	}
}
