package camera

import (
	"fmt"
	"strconv"
	"strings"

	"picamctl/internal/hw/picam"
)

// The apply* wrappers adapt the loosely-typed values arriving through
// SetParam (YAML config, CLI overrides) onto the typed setters.

func (c *PiCamV13) applyResolution(value interface{}) error {
	res, err := coerceResolution(value)
	if err != nil {
		return fmt.Errorf("resolution: %w", err)
	}
	return c.SetResolution(res.Width, res.Height)
}

func (c *PiCamV13) applyBrightness(value interface{}) error {
	v, err := coerceInt(value)
	if err != nil {
		return fmt.Errorf("brightness: %w", err)
	}
	return c.SetBrightness(v)
}

func (c *PiCamV13) applyContrast(value interface{}) error {
	v, err := coerceInt(value)
	if err != nil {
		return fmt.Errorf("contrast: %w", err)
	}
	return c.SetContrast(v)
}

// coerceResolution accepts a picam.Resolution, a two-element int pair,
// or a "WIDTHxHEIGHT" string.
func coerceResolution(value interface{}) (picam.Resolution, error) {
	switch v := value.(type) {
	case picam.Resolution:
		return v, nil
	case [2]int:
		return picam.Resolution{Width: v[0], Height: v[1]}, nil
	case []int:
		if len(v) == 2 {
			return picam.Resolution{Width: v[0], Height: v[1]}, nil
		}
	case []interface{}:
		if len(v) == 2 {
			w, werr := coerceInt(v[0])
			h, herr := coerceInt(v[1])
			if werr == nil && herr == nil {
				return picam.Resolution{Width: w, Height: h}, nil
			}
		}
	case string:
		parts := strings.SplitN(v, "x", 2)
		if len(parts) == 2 {
			w, werr := strconv.Atoi(strings.TrimSpace(parts[0]))
			h, herr := strconv.Atoi(strings.TrimSpace(parts[1]))
			if werr == nil && herr == nil {
				return picam.Resolution{Width: w, Height: h}, nil
			}
		}
	}
	return picam.Resolution{}, fmt.Errorf("value %v (%T) is not a WIDTHxHEIGHT pair", value, value)
}

func coerceInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("value %q is not an integer", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not an integer", value, value)
	}
}
