package cmd

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/hunterpaulson/blackhole/renderer"
	"github.com/hunterpaulson/blackhole/scene"
	"github.com/urfave/cli"
)

const (
	// Animation tick interval for live rendering.
	frameInterval = 40 * time.Millisecond

	// ANSI control sequences for the live display.
	ansiClear = "\x1b[2J"
	ansiHome  = "\x1b[H"
)

// Render the accretion disk view, either as a live animation on stdout
// or as a multi-frame dump file.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)

	params := scene.New()
	params.Width = ctx.Int("width")
	params.Height = ctx.Int("height")
	if gamma := ctx.Float64("gamma"); gamma > 0 {
		params.Gamma = gamma
	}
	params.UpdateDerived()

	// Positional overrides: inclination-deg, fov-deg, observer-radius.
	// Out-of-range values are ignored and the defaults kept.
	applyPositional(params, ctx)

	opts := renderer.Options{
		Backend:   ctx.String("backend"),
		Workers:   ctx.Int("workers"),
		Blacklist: ctx.String("blacklist"),
	}
	if tilt := ctx.Float64("tilt"); tilt != 0 {
		if !params.SetTilt(tilt) {
			logger.Warningf("ignoring out-of-range tilt %.1f", tilt)
		}
	}

	r, err := renderer.New(params, opts)
	if err != nil {
		return err
	}
	defer r.Close()
	logger.Noticef("rendering with backend: %s", r.Backend())

	dphase := ctx.Float64("dphase")
	if dumpFile := ctx.String("dump"); dumpFile != "" {
		return renderDump(r, dumpFile, ctx.Int("frames"), dphase)
	}
	return renderLive(r, dphase)
}

// applyPositional parses up to three positional arguments. Unparsable
// or out-of-range values are silently skipped, matching the behavior
// of the setters they feed.
func applyPositional(params *scene.Params, ctx *cli.Context) {
	args := ctx.Args()
	if len(args) > 0 {
		if v, err := strconv.ParseFloat(args[0], 64); err == nil {
			params.SetInclination(v)
		}
	}
	if len(args) > 1 {
		if v, err := strconv.ParseFloat(args[1], 64); err == nil {
			params.SetFOVx(v)
		}
	}
	if len(args) > 2 {
		if v, err := strconv.ParseFloat(args[2], 64); err == nil {
			params.SetObserverRadius(v)
		}
	}
}

func renderDump(r *renderer.Renderer, path string, frames int, dphase float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	tick := time.Now()
	if err = r.WriteDump(f, frames, dphase); err != nil {
		return err
	}

	logger.Noticef("wrote %d frame(s) to %s in %s", frames, path, time.Since(tick))
	r.WriteStats(os.Stderr)
	return nil
}

func renderLive(r *renderer.Renderer, dphase float64) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	fmt.Print(ansiClear)

	phase := 0.0
	for {
		select {
		case <-sigChan:
			fmt.Print(ansiClear, ansiHome)
			r.WriteStats(os.Stderr)
			return nil
		case <-ticker.C:
			frame, err := r.Frame(phase)
			if err != nil {
				return err
			}
			fmt.Print(ansiHome, frame)

			phase += dphase
			if phase > 2.0*math.Pi {
				phase -= 2.0 * math.Pi
			}
		}
	}
}
