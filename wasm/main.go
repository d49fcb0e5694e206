//go:build js && wasm

// Command wasm exposes the cpu tracer to a browser host. The exported
// functions mirror the renderer pipeline: one init per observer
// configuration, then one cheap frame call per animation tick.
package main

import (
	"syscall/js"

	"github.com/hunterpaulson/blackhole/scene"
	"github.com/hunterpaulson/blackhole/tracer/cpu"
)

var state struct {
	params *scene.Params
	tr     *cpu.Tracer
}

func clear() {
	if state.tr != nil {
		state.tr.Close()
		state.tr = nil
	}
	state.params = nil
}

// bhInit(width, height, incDeg, fovDeg, robs) -> int
//
// Builds the scene, traces the hit map and computes the normalization
// scale. Out-of-range observer values fall back to defaults, matching
// the parameter setters. Returns 0 on success.
func bhInit() js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) < 2 {
			return -1
		}
		width := args[0].Int()
		height := args[1].Int()
		if width <= 0 || height <= 0 {
			return -1
		}
		clear()

		p := scene.New()
		p.Width = width
		p.Height = height
		if len(args) > 2 {
			p.SetInclination(args[2].Float())
		}
		if len(args) > 3 {
			p.SetFOVx(args[3].Float())
		}
		if len(args) > 4 {
			p.SetObserverRadius(args[4].Float())
		}
		p.UpdateDerived()

		tr := cpu.NewTracer(1)
		if err := tr.Setup(p); err != nil {
			return -2
		}
		if err := tr.Trace(); err != nil {
			tr.Close()
			return -3
		}

		state.params = p
		state.tr = tr
		return 0
	})
}

// bhDestroy() releases all tracer state.
func bhDestroy() js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		clear()
		return js.Undefined()
	})
}

// bhWidth() / bhHeight() report the active grid dimensions, 0 when
// uninitialized.
func bhWidth() js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if state.params == nil {
			return 0
		}
		return state.params.Width
	})
}

func bhHeight() js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if state.params == nil {
			return 0
		}
		return state.params.Height
	})
}

// bhFrame(phase) -> string
//
// Shades the traced hit map at the given phase and returns the frame
// as newline-separated rows. Returns null before bhInit.
func bhFrame() js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if state.tr == nil || len(args) < 1 {
			return js.Null()
		}
		frame, err := state.tr.Frame(args[0].Float())
		if err != nil {
			return js.Null()
		}
		return frame
	})
}

func main() {
	js.Global().Set("bhInit", bhInit())
	js.Global().Set("bhDestroy", bhDestroy())
	js.Global().Set("bhWidth", bhWidth())
	js.Global().Set("bhHeight", bhHeight())
	js.Global().Set("bhFrame", bhFrame())

	// Keep the runtime alive; the host drives everything through the
	// exported functions.
	select {}
}
