package renderer

import "errors"

var (
	ErrUnknownBackend = errors.New("renderer: unknown backend")
	ErrNoFrames       = errors.New("renderer: frame count must be positive")
)
