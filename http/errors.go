package http

import (
	"errors"
)

var (
	// ErrSimulated is emitted on the first pull when Simulate.Error is set.
	ErrSimulated = errors.New("Simulated")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrBodyClosed           = errors.New("body is closed")
)
