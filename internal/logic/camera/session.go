package camera

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"picamctl/internal/debug"
	"picamctl/internal/hw/picam"
)

// Recording defaults.
const (
	DefaultRecordDuration = 10 * time.Second
	maxRecordQuality      = 100
)

// ErrUnsupportedSetting is returned by SetParam for blacklisted setting
// names. The camera state is left unchanged.
var ErrUnsupportedSetting = errors.New("setting can not be configured")

// Setting is one named configuration entry. Settings are applied in
// slice order during construction, so later entries win on duplicates.
type Setting struct {
	Name  string
	Value interface{}
}

// SettingsError collects the settings rejected while constructing a
// session. The session is still usable; every non-rejected setting has
// been applied.
type SettingsError []error

func (e SettingsError) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// PiCamV13 controls a camera module v1.3 (OV5647 sensor) through an
// exclusively owned Handle. Default resolution is 1280x720.
//
// Settings with a dedicated setter are validated here; a small set of
// names is blacklisted (untestable on this hardware); everything else
// is passed through to the handle unchecked, so that driver features
// without local support remain reachable.
type PiCamV13 struct {
	handle picam.Handle

	definedSettings     map[string]func(interface{}) error
	unsupportedSettings map[string]struct{}
	localSettings       map[string]interface{}

	videoResolutions []VideoResolution
}

// NewPiCamV13 builds a session around handle and applies settings in
// order. Rejected settings are collected into a SettingsError; the
// session is returned either way, with all accepted settings applied.
func NewPiCamV13(handle picam.Handle, settings ...Setting) (*PiCamV13, error) {
	c := &PiCamV13{
		handle: handle,
		unsupportedSettings: map[string]struct{}{
			// Untestable on this hardware, so these stay blacklisted.
			"stereo_decimate": {},
			"stereo_mode":     {},
		},
		localSettings: map[string]interface{}{
			// video_lock marks a resolution that can only be captured,
			// not recorded.
			"video_lock": false,
		},
		videoResolutions: instantiateResolutions(),
	}
	c.definedSettings = map[string]func(interface{}) error{
		"resolution": c.applyResolution,
		"brightness": c.applyBrightness,
		"contrast":   c.applyContrast,
	}

	var errs SettingsError
	for _, s := range settings {
		if err := c.SetParam(s.Name, s.Value); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) != 0 {
		return c, errs
	}
	return c, nil
}

// SetParam routes one named setting. A nil return means the setting was
// stored. Blacklisted names report ErrUnsupportedSetting without
// touching the camera; driver-level rejections of passthrough or
// validated settings propagate verbatim.
func (c *PiCamV13) SetParam(name string, value interface{}) error {
	if setter, ok := c.definedSettings[name]; ok {
		debug.Verbose("Dispatching validated setting %s", name)
		return setter(value)
	}
	if _, ok := c.unsupportedSettings[name]; ok {
		debug.Reject(name)
		return fmt.Errorf("%q: %w", name, ErrUnsupportedSetting)
	}
	// Unchecked passthrough: the driver grows features faster than this
	// layer grows setters, so unknown names are still applied.
	return c.handle.SetProperty(name, value)
}

// SetResolution changes the camera resolution.
func (c *PiCamV13) SetResolution(width, height int) error {
	if err := c.handle.SetResolution(width, height); err != nil {
		return err
	}
	c.localSettings["video_lock"] = !c.recordableResolution(width, height)
	return nil
}

// Resolution returns the current camera resolution.
func (c *PiCamV13) Resolution() picam.Resolution {
	return c.handle.Resolution()
}

// SetBrightness sets the camera brightness (0-100). The range is not
// enforced here; out-of-range values are the driver's to reject.
func (c *PiCamV13) SetBrightness(value int) error {
	return c.handle.SetBrightness(value)
}

// Brightness returns the current camera brightness.
func (c *PiCamV13) Brightness() int {
	return c.handle.Brightness()
}

// SetContrast sets the camera contrast (0-100). The range is not
// enforced here; out-of-range values are the driver's to reject.
func (c *PiCamV13) SetContrast(value int) error {
	return c.handle.SetContrast(value)
}

// Contrast returns the current camera contrast.
func (c *PiCamV13) Contrast() int {
	return c.handle.Contrast()
}

// Settings returns the local (non-hardware) session flags.
func (c *PiCamV13) Settings() map[string]interface{} {
	settings := make(map[string]interface{}, len(c.localSettings))
	for k, v := range c.localSettings {
		settings[k] = v
	}
	return settings
}

// VideoResolutions returns the ordered table of recordable resolutions.
func (c *PiCamV13) VideoResolutions() []VideoResolution {
	return c.videoResolutions
}

// ValidFrameRate reports whether fps can be recorded at the given
// resolution.
func (c *PiCamV13) ValidFrameRate(width, height int, fps float64) bool {
	for _, r := range c.videoResolutions {
		if r.IsResolution(width, height) && r.ValidFrameRate(fps) {
			return true
		}
	}
	return false
}

func (c *PiCamV13) recordableResolution(width, height int) bool {
	for _, r := range c.videoResolutions {
		if r.IsResolution(width, height) {
			return true
		}
	}
	return false
}

// Capture takes a single still with default options. The file is named
// pic<MM-DD-HH:MM:SS>.jpg in the current working directory.
func (c *PiCamV13) Capture() error {
	return c.ManualCapture(generatePath("pic", ".jpg"))
}

// CaptureOption tweaks one capture parameter.
type CaptureOption func(*picam.CaptureOptions)

// WithFormat selects the output format.
func WithFormat(format string) CaptureOption {
	return func(o *picam.CaptureOptions) { o.Format = format }
}

// WithVideoPort captures from the video port instead of the still port.
func WithVideoPort(use bool) CaptureOption {
	return func(o *picam.CaptureOptions) { o.UseVideoPort = use }
}

// WithResize resizes the capture output.
func WithResize(width, height int) CaptureOption {
	return func(o *picam.CaptureOptions) {
		o.Resize = &picam.Resolution{Width: width, Height: height}
	}
}

// WithSplitterPort selects the encoder splitter port.
func WithSplitterPort(port int) CaptureOption {
	return func(o *picam.CaptureOptions) { o.SplitterPort = port }
}

// WithBayer includes the raw Bayer data in the capture.
func WithBayer(include bool) CaptureOption {
	return func(o *picam.CaptureOptions) { o.Bayer = include }
}

// WithOption passes an extra keyed option through to the handle.
func WithOption(key string, value interface{}) CaptureOption {
	return func(o *picam.CaptureOptions) {
		if o.Extra == nil {
			o.Extra = make(map[string]interface{})
		}
		o.Extra[key] = value
	}
}

// ManualCapture captures a full rolling-shutter frame with complete
// option control. This is the extension point for capture features the
// session does not validate itself; the options go to the handle as-is.
func (c *PiCamV13) ManualCapture(output string, opts ...CaptureOption) error {
	var options picam.CaptureOptions
	for _, opt := range opts {
		opt(&options)
	}
	return c.handle.Capture(output, options)
}

// Record records video for d (DefaultRecordDuration if d <= 0) at
// maximum quality. The file is named vid<MM-DD-HH:MM:SS>.h264 in the
// current working directory. Record blocks the caller for the whole
// duration; there is no cancellation short of process termination.
func (c *PiCamV13) Record(d time.Duration) error {
	if d <= 0 {
		d = DefaultRecordDuration
	}
	if locked, _ := c.localSettings["video_lock"].(bool); locked {
		debug.Info("Current resolution is not in the recordable set; recording may tear")
	}

	path := generatePath("vid", ".h264")
	if err := c.handle.StartRecording(path, maxRecordQuality); err != nil {
		return err
	}
	if err := c.handle.WaitRecording(d); err != nil {
		_ = c.handle.StopRecording()
		return err
	}
	return c.handle.StopRecording()
}

// Close releases the underlying camera handle.
func (c *PiCamV13) Close() error {
	return c.handle.Close()
}

// generatePath builds a timestamped filename, e.g. pic08-24-15:04:05.jpg.
// Names are not guaranteed unique within the same second.
func generatePath(prefix, extension string) string {
	return prefix + time.Now().Format("01-02-15:04:05") + extension
}
