package camera

import "time"

// Camera is the high-level control surface for a Raspberry Pi camera
// module, regardless of which hardware revision backs it.
type Camera interface {
	// SetParam routes a named setting to its validated setter, rejects
	// blacklisted names, and passes everything else through unchecked.
	SetParam(name string, value interface{}) error

	// Capture takes a single still with default options to a
	// timestamp-named file.
	Capture() error

	// ManualCapture takes a still with full option control.
	ManualCapture(output string, opts ...CaptureOption) error

	// Record records video for the given duration, blocking the caller.
	Record(d time.Duration) error

	Close() error
}
