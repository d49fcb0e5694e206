package tracer

import "errors"

var (
	ErrInvalidDimensions = errors.New("tracer: invalid grid dimensions")
	ErrNotSetup          = errors.New("tracer: tracer not set up with scene parameters")
	ErrNotTraced         = errors.New("tracer: no hit map; call Trace first")
)
