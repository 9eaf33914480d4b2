package picam

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vladimirvivien/go4vl/device"
	"github.com/vladimirvivien/go4vl/v4l2"

	"picamctl/internal/debug"
	"picamctl/internal/hw/led"
)

// DefaultDevice is the V4L2 node exposed by the bcm2835 camera driver.
const DefaultDevice = "/dev/video0"

// frameTimeout bounds how long a still capture waits for the next frame.
const frameTimeout = 2 * time.Second

// Standard V4L2 control IDs used by the bcm2835 camera driver.
const (
	ctrlBrightness  v4l2.CtrlID = 9963776
	ctrlContrast    v4l2.CtrlID = 9963777
	ctrlSaturation  v4l2.CtrlID = 9963778
	ctrlAWB         v4l2.CtrlID = 9963788
	ctrlRedBalance  v4l2.CtrlID = 9963790
	ctrlBlueBalance v4l2.CtrlID = 9963791
	ctrlHFlip       v4l2.CtrlID = 9963796
	ctrlVFlip       v4l2.CtrlID = 9963797
	ctrlSharpness   v4l2.CtrlID = 9963803
	ctrlRotate      v4l2.CtrlID = 9963810
	ctrlExposure    v4l2.CtrlID = 10094850
	ctrlISO         v4l2.CtrlID = 10094871
	ctrlJPEGQuality v4l2.CtrlID = 10291459
)

// rawControls maps passthrough property names onto driver controls.
// Names follow the conventional camera attribute names; anything not
// listed here is rejected by the driver layer.
var rawControls = map[string]v4l2.CtrlID{
	"saturation":    ctrlSaturation,
	"awb_enable":    ctrlAWB,
	"red_balance":   ctrlRedBalance,
	"blue_balance":  ctrlBlueBalance,
	"hflip":         ctrlHFlip,
	"vflip":         ctrlVFlip,
	"sharpness":     ctrlSharpness,
	"rotation":      ctrlRotate,
	"exposure_time": ctrlExposure,
	"iso":           ctrlISO,
	"jpeg_quality":  ctrlJPEGQuality,
}

// V4L2Handle is the real Handle implementation for the Raspberry Pi
// camera module, driven through the V4L2 interface with go4vl.
type V4L2Handle struct {
	dev *device.Device
	led led.Controller

	res        Resolution
	brightness int
	contrast   int

	ctx       context.Context
	cancel    context.CancelFunc
	streaming bool

	rec *v4l2Recording
}

type v4l2Recording struct {
	path string
	file *os.File
	stop chan struct{}
	done chan struct{}
	err  error
}

// OpenV4L2 opens the camera device and returns a handle at the default
// sensor configuration. ledCtl may be nil on boards without a wired
// camera LED; the "led" property is then rejected.
func OpenV4L2(path string, ledCtl led.Controller) (*V4L2Handle, error) {
	debug.Info("Opening V4L2 camera device %s", path)

	dev, err := device.Open(
		path,
		device.WithIOType(v4l2.IOTypeMMAP),
		device.WithPixFormat(v4l2.PixFormat{
			PixelFormat: v4l2.PixelFmtMJPEG,
			Width:       uint32(DefaultWidth),
			Height:      uint32(DefaultHeight),
			Field:       v4l2.FieldNone,
		}),
		device.WithFPS(uint32(DefaultFPS)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera device: %w", err)
	}

	h := &V4L2Handle{
		dev: dev,
		led: ledCtl,
		res: Resolution{Width: DefaultWidth, Height: DefaultHeight},
	}

	// Seed cached values from the driver when available.
	if ctrl, err := v4l2.GetControl(dev.Fd(), ctrlBrightness); err == nil {
		h.brightness = int(ctrl.Value)
	}
	if ctrl, err := v4l2.GetControl(dev.Fd(), ctrlContrast); err == nil {
		h.contrast = int(ctrl.Value)
	}

	return h, nil
}

func (h *V4L2Handle) SetResolution(width, height int) error {
	debug.Trace("V4L2 SetPixFormat %dx%d", width, height)
	err := h.dev.SetPixFormat(v4l2.PixFormat{
		PixelFormat: v4l2.PixelFmtMJPEG,
		Width:       uint32(width),
		Height:      uint32(height),
		Field:       v4l2.FieldNone,
	})
	if err != nil {
		return fmt.Errorf("set resolution %dx%d: %w", width, height, err)
	}
	h.res = Resolution{Width: width, Height: height}
	return nil
}

func (h *V4L2Handle) Resolution() Resolution { return h.res }

func (h *V4L2Handle) SetBrightness(value int) error {
	if err := h.setControl(ctrlBrightness, int32(value)); err != nil {
		return err
	}
	h.brightness = value
	return nil
}

func (h *V4L2Handle) Brightness() int { return h.brightness }

func (h *V4L2Handle) SetContrast(value int) error {
	if err := h.setControl(ctrlContrast, int32(value)); err != nil {
		return err
	}
	h.contrast = value
	return nil
}

func (h *V4L2Handle) Contrast() int { return h.contrast }

// SetProperty applies a named property directly on the device. The LED
// is routed to GPIO; every other known name maps to a V4L2 control.
// Unknown names are rejected here, at the driver layer.
func (h *V4L2Handle) SetProperty(name string, value interface{}) error {
	debug.Property(name, value)

	if name == "led" {
		if h.led == nil {
			return fmt.Errorf("led control not available on this board")
		}
		on, err := coerceBool(value)
		if err != nil {
			return fmt.Errorf("property led: %w", err)
		}
		return h.led.Set(on)
	}

	id, ok := rawControls[name]
	if !ok {
		return fmt.Errorf("property %q not supported by the V4L2 driver", name)
	}
	v, err := coerceInt32(value)
	if err != nil {
		return fmt.Errorf("property %s: %w", name, err)
	}
	return h.setControl(id, v)
}

func (h *V4L2Handle) setControl(id v4l2.CtrlID, value int32) error {
	debug.Ctrl("set", uint32(id), value)
	if err := h.dev.SetControlValue(id, v4l2.CtrlValue(value)); err != nil {
		return fmt.Errorf("set control %d to %d: %w", id, value, err)
	}
	return nil
}

// Capture grabs one frame and writes it to output. MJPEG frames are
// written as-is, so only the default JPEG format is supported here.
func (h *V4L2Handle) Capture(output string, opts CaptureOptions) error {
	if opts.Format != "" && opts.Format != DefaultFormat {
		return fmt.Errorf("format %q not supported by the V4L2 driver", opts.Format)
	}
	if opts.Bayer {
		return fmt.Errorf("raw Bayer capture not supported by the V4L2 driver")
	}
	if opts.SplitterPort != 0 {
		return fmt.Errorf("splitter port %d not supported by the V4L2 driver", opts.SplitterPort)
	}
	for k, v := range opts.Extra {
		if err := h.SetProperty(k, v); err != nil {
			return err
		}
	}

	// An output resize is a temporary pixel format change.
	if opts.Resize != nil {
		prev := h.res
		if err := h.SetResolution(opts.Resize.Width, opts.Resize.Height); err != nil {
			return err
		}
		defer func() {
			_ = h.SetResolution(prev.Width, prev.Height)
		}()
	}

	if err := h.startStream(); err != nil {
		return err
	}

	var frame []byte
	select {
	case frame = <-h.dev.GetOutput():
	case <-time.After(frameTimeout):
		return fmt.Errorf("timed out waiting for frame from %s", h.dev.Name())
	}

	if err := os.WriteFile(output, frame, 0o644); err != nil {
		return fmt.Errorf("write capture output: %w", err)
	}
	debug.Capture(output)
	return nil
}

// StartRecording switches the device to H264 and streams frames to path
// until StopRecording. quality maps onto the driver compression control.
func (h *V4L2Handle) StartRecording(path string, quality int) error {
	if h.rec != nil {
		return fmt.Errorf("already recording to %s", h.rec.path)
	}

	err := h.dev.SetPixFormat(v4l2.PixFormat{
		PixelFormat: v4l2.PixelFmtH264,
		Width:       uint32(h.res.Width),
		Height:      uint32(h.res.Height),
		Field:       v4l2.FieldNone,
	})
	if err != nil {
		return fmt.Errorf("set H264 format: %w", err)
	}

	// Best effort: not every driver build exposes the quality control.
	_ = h.dev.SetControlValue(ctrlJPEGQuality, v4l2.CtrlValue(quality))

	if err := h.startStream(); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create recording file: %w", err)
	}

	rec := &v4l2Recording{
		path: path,
		file: file,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	h.rec = rec
	debug.Record("started", path)

	go func() {
		defer close(rec.done)
		for {
			select {
			case <-rec.stop:
				return
			case frame := <-h.dev.GetOutput():
				if _, err := rec.file.Write(frame); err != nil {
					rec.err = fmt.Errorf("write recording frame: %w", err)
					return
				}
			}
		}
	}()

	return nil
}

// WaitRecording blocks for d while the recording goroutine runs,
// surfacing any write error that ends the recording early.
func (h *V4L2Handle) WaitRecording(d time.Duration) error {
	if h.rec == nil {
		return fmt.Errorf("not recording")
	}
	select {
	case <-time.After(d):
		return nil
	case <-h.rec.done:
		return h.rec.err
	}
}

func (h *V4L2Handle) StopRecording() error {
	if h.rec == nil {
		return fmt.Errorf("not recording")
	}
	rec := h.rec
	h.rec = nil

	close(rec.stop)
	<-rec.done
	debug.Record("stopped", rec.path)

	if err := rec.file.Close(); err != nil {
		return fmt.Errorf("close recording file: %w", err)
	}
	return rec.err
}

func (h *V4L2Handle) startStream() error {
	if h.streaming {
		return nil
	}
	h.ctx, h.cancel = context.WithCancel(context.Background())
	if err := h.dev.Start(h.ctx); err != nil {
		h.cancel()
		return fmt.Errorf("failed to start streaming: %w", err)
	}
	h.streaming = true
	return nil
}

func (h *V4L2Handle) Close() error {
	if h.rec != nil {
		_ = h.StopRecording()
	}
	if h.cancel != nil {
		h.cancel()
	}
	var lederr error
	if h.led != nil {
		lederr = h.led.Close()
	}
	if err := h.dev.Close(); err != nil {
		return err
	}
	return lederr
}

func coerceInt32(value interface{}) (int32, error) {
	switch v := value.(type) {
	case int:
		return int32(v), nil
	case int32:
		return v, nil
	case int64:
		return int32(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case float64:
		return int32(v), nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not an integer", value, value)
	}
}

func coerceBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case int:
		return v != 0, nil
	default:
		return false, fmt.Errorf("value %v (%T) is not a boolean", value, value)
	}
}
