package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"picamctl/internal/config"
	"picamctl/internal/debug"
	"picamctl/internal/hw/led"
	"picamctl/internal/hw/picam"
	"picamctl/internal/logic/camera"
)

func main() {
	// CLI flags
	var sets settingFlags
	cfgPath := flag.String("config", filepath.Join("configs", "default.yaml"), "path to config file")
	mock := flag.Bool("mock", false, "force mock hardware (development mode)")
	capture := flag.Bool("capture", false, "take a single still capture")
	record := flag.Int("record", 0, "record video for the given number of seconds")
	flag.Var(&sets, "set", "override a camera setting, e.g. -set brightness=55 (repeatable)")
	flag.Parse()

	if *capture && *record > 0 {
		log.Fatal("-capture and -record are mutually exclusive")
	}

	// Load configuration
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	if *mock {
		cfg.Defaults.MockHardware = true
	}

	// Initialize debug system
	debug.Init(cfg.Defaults.DebugLevel)
	debug.Section("Initialization")
	debug.Value("Config path", *cfgPath)
	debug.Value("Debug level", cfg.Defaults.DebugLevel)
	debug.Value("Mock hardware", cfg.Defaults.MockHardware)
	debug.Value("Camera revision", cfg.Camera.Revision)

	// Initialize the camera handle
	handle, err := newHandleFromConfig(cfg)
	if err != nil {
		log.Fatalf("init camera handle failed: %v", err)
	}

	// Build the session: config file settings first, CLI overrides last
	// (last write wins).
	settings := make([]camera.Setting, 0, len(cfg.Settings)+len(sets))
	for _, s := range cfg.Settings {
		settings = append(settings, camera.Setting{Name: s.Name, Value: s.Value})
	}
	settings = append(settings, sets...)

	cam, err := camera.NewForRevision(camera.Revision(cfg.Camera.Revision), handle, settings...)
	if err != nil {
		var rejected camera.SettingsError
		if !errors.As(err, &rejected) {
			_ = handle.Close()
			log.Fatalf("init camera failed: %v", err)
		}
		// Rejected settings are reported but the session stays usable.
		log.Printf("some settings were rejected: %v", rejected)
	}
	defer func() {
		if err := cam.Close(); err != nil {
			log.Printf("closing camera failed: %v", err)
		}
	}()

	if *record > 0 {
		debug.Section("Recording")
		if err := cam.Record(time.Duration(*record) * time.Second); err != nil {
			log.Fatalf("record failed: %v", err)
		}
		return
	}

	// A still capture is the default action.
	debug.Section("Capture")
	if err := cam.Capture(); err != nil {
		log.Fatalf("capture failed: %v", err)
	}
}

// newHandleFromConfig selects the camera handle implementation based on
// configuration: a recording mock for development, V4L2 on real hardware.
func newHandleFromConfig(cfg *config.Config) (picam.Handle, error) {
	if cfg.Defaults.MockHardware {
		return picam.NewMockHandle(), nil
	}

	ledCtl, err := led.NewController(false, cfg.Camera.LEDPin)
	if err != nil {
		// Boards without a wired camera LED still get a working camera.
		debug.Info("LED controller unavailable: %v", err)
		ledCtl = nil
	}
	return picam.OpenV4L2(cfg.Camera.Device, ledCtl)
}

// settingFlags implements flag.Value for repeated -set key=value flags.
type settingFlags []camera.Setting

func (s *settingFlags) String() string {
	parts := make([]string, len(*s))
	for i, st := range *s {
		parts[i] = fmt.Sprintf("%s=%v", st.Name, st.Value)
	}
	return strings.Join(parts, ",")
}

func (s *settingFlags) Set(v string) error {
	name, raw, ok := strings.Cut(v, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	*s = append(*s, camera.Setting{Name: name, Value: parseValue(raw)})
	return nil
}

// parseValue interprets a CLI override value as int, bool or string.
func parseValue(raw string) interface{} {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
