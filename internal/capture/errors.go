package capture

import "errors"

// Each capture stops at the first of these; none of them produce a file.
var (
	ErrSourceUnavailable = errors.New("video source has no current frame")
	ErrNoContext         = errors.New("2d drawing context unavailable")
	ErrEncodeFailed      = errors.New("png encoding produced no blob")

	ErrNoDeliverer = errors.New("no deliverer configured")
)
