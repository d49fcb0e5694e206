package opencl

import "errors"

var (
	ErrNoSuitableDevice = errors.New("opencl tracer: no suitable opencl device found")
	ErrTiltUnsupported  = errors.New("opencl tracer: tilted disk planes are not supported by the gpu kernel")
)
