package led

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"

	"picamctl/internal/debug"
)

// RPiController is the real implementation for Raspberry Pi using go-rpio.
type RPiController struct {
	pin rpio.Pin
}

// NewRPiController creates a real LED controller for Raspberry Pi.
// Requires running on a Raspberry Pi with access to /dev/gpiomem or as root.
func NewRPiController(pin int) (*RPiController, error) {
	debug.Info("Initializing real LED controller (go-rpio, pin %d)", pin)

	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("failed to open GPIO: %w (are you running on a Raspberry Pi?)", err)
	}

	p := rpio.Pin(pin)
	p.Output()

	return &RPiController{pin: p}, nil
}

func (r *RPiController) Set(on bool) error {
	debug.GPIO("LED Set", int(r.pin), on)
	if on {
		r.pin.High()
	} else {
		r.pin.Low()
	}
	return nil
}

func (r *RPiController) Close() error {
	debug.Trace("LED Close (real controller)")

	// Leave the LED off and the pin in a safe input state
	r.pin.Low()
	r.pin.Input()

	return rpio.Close()
}
