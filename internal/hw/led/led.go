package led

import (
	"picamctl/internal/debug"
)

// DefaultPin is the BCM pin wired to the camera module LED on boards
// that expose it (older revisions; later boards tie the LED to the
// camera core and ignore GPIO).
const DefaultPin = 5

// Controller drives the camera module LED.
// This allows plugging in a real Raspberry Pi implementation
// or a mock for development on PC.
type Controller interface {
	Set(on bool) error
	Close() error
}

// MockController is a test implementation that simply logs actions
// and remembers the last state. Used for development on PC or testing.
type MockController struct {
	On bool
}

// NewController creates an LED controller based on the chosen mode.
// If mock is true, returns a MockController (for dev/test).
// If mock is false, returns a real RPiController (for Raspberry Pi).
func NewController(mock bool, pin int) (Controller, error) {
	if mock {
		debug.Info("Using MOCK LED controller (development mode)")
		return &MockController{}, nil
	}
	return NewRPiController(pin)
}

func (m *MockController) Set(on bool) error {
	debug.GPIO("LED Set (mock)", 0, on)
	m.On = on
	return nil
}

func (m *MockController) Close() error {
	debug.Trace("LED Close (mock)")
	return nil
}
