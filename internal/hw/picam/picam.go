package picam

import "time"

// Default sensor configuration for the OV5647 module.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultFPS    = 30
)

// DefaultFormat is the capture format used when none is requested.
const DefaultFormat = "jpeg"

// Resolution is a (width, height) pixel pair.
type Resolution struct {
	Width  int
	Height int
}

// CaptureOptions carries the full set of knobs for a still capture.
// The zero value requests a default-format full-frame capture.
type CaptureOptions struct {
	Format       string                 // output format; empty means DefaultFormat
	UseVideoPort bool                   // capture from the video port instead of the still port
	Resize       *Resolution            // optional output resize
	SplitterPort int                    // encoder splitter port
	Bayer        bool                   // include raw Bayer data
	Extra        map[string]interface{} // extra keyed options, applied as raw properties
}

// Handle is the low-level interface to one camera device. It represents
// an abstract camera handle, regardless of how it's controlled (V4L2,
// mock, etc.). The session layer owns exactly one Handle.
//
// Typed setters cover the properties the session validates; everything
// else goes through SetProperty, which is unchecked here and may be
// rejected by the driver.
type Handle interface {
	SetResolution(width, height int) error
	Resolution() Resolution

	SetBrightness(value int) error
	Brightness() int

	SetContrast(value int) error
	Contrast() int

	// SetProperty applies a named property directly on the device.
	// No validation is performed; driver rejections surface verbatim.
	SetProperty(name string, value interface{}) error

	Capture(output string, opts CaptureOptions) error

	StartRecording(path string, quality int) error
	WaitRecording(d time.Duration) error
	StopRecording() error

	Close() error
}
