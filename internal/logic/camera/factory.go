package camera

import (
	"fmt"

	"picamctl/internal/hw/picam"
)

// Revision identifies a supported camera hardware revision, as reported
// by the firmware revision string.
type Revision string

// Supported revisions. Today only the v1.3 module exists; new sensors
// get their own variant here.
const (
	RevisionOV5647 Revision = "ov5647" // camera module v1.3
)

// NewForRevision selects the session implementation matching a hardware
// revision. Settings are applied in order; a SettingsError is returned
// alongside a usable session when some of them are rejected.
func NewForRevision(rev Revision, handle picam.Handle, settings ...Setting) (Camera, error) {
	switch rev {
	case RevisionOV5647:
		return NewPiCamV13(handle, settings...)
	default:
		return nil, fmt.Errorf("unsupported camera revision: %s", rev)
	}
}
