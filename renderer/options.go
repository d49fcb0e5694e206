package renderer

// Backend selection values for Options.Backend.
const (
	BackendAuto   = "auto"
	BackendOpenCL = "opencl"
	BackendCPU    = "cpu"
)

type Options struct {
	// Backend selection. Auto tries opencl first and falls back to
	// the cpu reference when no usable device exists.
	Backend string

	// Number of cpu row workers; only meaningful for the cpu backend.
	// Values below 1 select the sequential reference path.
	Workers int

	// Skip opencl devices whose names contain any of these
	// comma-separated values.
	Blacklist string
}
