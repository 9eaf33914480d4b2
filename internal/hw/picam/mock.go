package picam

import (
	"fmt"
	"time"

	"picamctl/internal/debug"
)

// Call records one operation performed on a MockHandle.
type Call struct {
	Op   string
	Args []interface{}
}

// MockHandle is a Handle implementation that records operations and
// stores property values in memory. Used for development on PC or
// testing; no file or device I/O is performed.
type MockHandle struct {
	Res           Resolution
	BrightnessVal int
	ContrastVal   int
	Props         map[string]interface{}
	Calls         []Call

	Recording     bool
	RecordPath    string
	RecordQuality int
	Waited        time.Duration
	Captures      []string

	// PropertyErr, when set, is returned by SetProperty for any name in
	// the map, simulating a driver-level rejection.
	PropertyErr map[string]error
}

// NewMockHandle returns a MockHandle at the default sensor configuration.
func NewMockHandle() *MockHandle {
	return &MockHandle{
		Res:   Resolution{Width: DefaultWidth, Height: DefaultHeight},
		Props: make(map[string]interface{}),
	}
}

func (m *MockHandle) record(op string, args ...interface{}) {
	m.Calls = append(m.Calls, Call{Op: op, Args: args})
}

func (m *MockHandle) SetResolution(width, height int) error {
	m.record("SetResolution", width, height)
	m.Res = Resolution{Width: width, Height: height}
	return nil
}

func (m *MockHandle) Resolution() Resolution { return m.Res }

func (m *MockHandle) SetBrightness(value int) error {
	m.record("SetBrightness", value)
	m.BrightnessVal = value
	return nil
}

func (m *MockHandle) Brightness() int { return m.BrightnessVal }

func (m *MockHandle) SetContrast(value int) error {
	m.record("SetContrast", value)
	m.ContrastVal = value
	return nil
}

func (m *MockHandle) Contrast() int { return m.ContrastVal }

func (m *MockHandle) SetProperty(name string, value interface{}) error {
	m.record("SetProperty", name, value)
	if err, ok := m.PropertyErr[name]; ok {
		return err
	}
	debug.Property(name, value)
	m.Props[name] = value
	return nil
}

func (m *MockHandle) Capture(output string, opts CaptureOptions) error {
	m.record("Capture", output, opts)
	m.Captures = append(m.Captures, output)
	debug.Capture(output)
	return nil
}

func (m *MockHandle) StartRecording(path string, quality int) error {
	m.record("StartRecording", path, quality)
	if m.Recording {
		return fmt.Errorf("already recording to %s", m.RecordPath)
	}
	m.Recording = true
	m.RecordPath = path
	m.RecordQuality = quality
	debug.Record("started (mock)", path)
	return nil
}

func (m *MockHandle) WaitRecording(d time.Duration) error {
	m.record("WaitRecording", d)
	if !m.Recording {
		return fmt.Errorf("not recording")
	}
	m.Waited += d
	return nil
}

func (m *MockHandle) StopRecording() error {
	m.record("StopRecording")
	if !m.Recording {
		return fmt.Errorf("not recording")
	}
	m.Recording = false
	debug.Record("stopped (mock)", m.RecordPath)
	return nil
}

func (m *MockHandle) Close() error {
	m.record("Close")
	return nil
}

// CallsTo returns the recorded calls matching op, in order.
func (m *MockHandle) CallsTo(op string) []Call {
	var result []Call
	for _, c := range m.Calls {
		if c.Op == op {
			result = append(result, c)
		}
	}
	return result
}
