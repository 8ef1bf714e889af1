//go:build linux

package evinput

import (
	"fmt"
	"slices"

	evdev "github.com/holoplot/go-evdev"
)

// ScanSeat finds devices by probing every /dev/input/event* node for its
// capabilities. It knows nothing about seats and serves only seat0; it is
// the fallback when udev is unavailable.
type ScanSeat struct{}

func (ScanSeat) Devices(seat string) ([]SeatDevice, error) {
	if seat != DefaultSeat {
		return nil, fmt.Errorf("seat %q requires udev", seat)
	}
	return ScanDevices()
}

// ScanDevices lists every readable event node that is a keyboard or a
// pointer. Nodes that cannot be opened are skipped.
func ScanDevices() ([]SeatDevice, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}

	var out []SeatDevice
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		keyboard, pointer := classifyCaps(dev.CapableTypes(), dev.CapableEvents(evdev.EV_KEY))
		dev.Close()

		if keyboard || pointer {
			out = append(out, SeatDevice{Path: p.Path, Name: p.Name, Keyboard: keyboard, Pointer: pointer})
		}
	}
	return out, nil
}

// classifyCaps treats a device with KEY_A and KEY_ENTER as a keyboard. A
// pointer has BTN_LEFT and either relative axes or, for a touchpad, absolute
// axes with finger tool reporting and no pen.
func classifyCaps(types []evdev.EvType, keys []evdev.EvCode) (keyboard, pointer bool) {
	keyboard = slices.Contains(keys, evdev.KEY_A) && slices.Contains(keys, evdev.KEY_ENTER)
	touchpad := slices.Contains(types, evdev.EV_ABS) &&
		slices.Contains(keys, evdev.BTN_TOOL_FINGER) && !slices.Contains(keys, evdev.BTN_TOOL_PEN)
	pointer = slices.Contains(keys, evdev.BTN_LEFT) && (slices.Contains(types, evdev.EV_REL) || touchpad)
	return keyboard, pointer
}
