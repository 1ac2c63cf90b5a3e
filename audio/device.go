package audio

import (
	"fmt"
	"strings"
)

// FindDevice resolves a -device flag value against the capture devices.
// An empty name means the system default (nil). Matching is a
// case-insensitive substring match on the device name.
func FindDevice(ctx Context, name string) (*DeviceInfo, error) {
	if name == "" {
		return nil, nil
	}

	devices, err := ctx.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerating devices: %w", err)
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("no capture devices found")
	}

	needle := strings.ToLower(name)
	for i, d := range devices {
		if strings.Contains(strings.ToLower(d.Name), needle) {
			return &devices[i], nil
		}
	}

	var names []string
	for _, d := range devices {
		names = append(names, d.Name)
	}
	return nil, fmt.Errorf("no capture device matches %q (available: %s)", name, strings.Join(names, ", "))
}
