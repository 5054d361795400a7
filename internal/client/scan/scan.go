// Package scan implements credential verification: manual entry and
// camera-based QR scanning, resolved through the gateway into a single
// rendered outcome.
package scan

import "context"

// Options configures a camera scanning session.
type Options struct {
	FacingMode string // camera selection hint, e.g. "environment"
	FPS        int    // decode attempts per second
	Box        int    // edge length of the square scan region, px
}

// Scanner is a camera-backed QR decoder. Start opens the camera and
// delivers every successfully decoded payload to onDecode until Stop.
// Frames that fail to decode are a normal part of scanning; an
// implementation must swallow them silently and keep going. Start fails
// only when the session itself cannot begin (no camera, permission
// denied).
type Scanner interface {
	Start(ctx context.Context, opts Options, onDecode func(text string)) error
	Stop(ctx context.Context) error
}
