// Package udevseat enumerates a seat's input device nodes through libudev.
package udevseat

import (
	"path/filepath"
	"strings"

	"github.com/andresousadotpt/hidstream/internal/device/evinput"
)

// properties is the subset of a udev device that classification reads.
type properties interface {
	PropertyValue(key string) string
}

// classify decides whether a udev input device belongs on seat and what it
// can produce. It reports false for nodes the capture backend has no use for.
func classify(devnode, name, seat string, p properties) (evinput.SeatDevice, bool) {
	if !strings.HasPrefix(filepath.Base(devnode), "event") {
		return evinput.SeatDevice{}, false
	}
	if p.PropertyValue("ID_INPUT") != "1" {
		return evinput.SeatDevice{}, false
	}

	assigned := p.PropertyValue("ID_SEAT")
	if assigned == "" {
		assigned = evinput.DefaultSeat
	}
	if assigned != seat {
		return evinput.SeatDevice{}, false
	}

	d := evinput.SeatDevice{
		Path:     devnode,
		Name:     strings.Trim(name, "\""),
		Keyboard: p.PropertyValue("ID_INPUT_KEYBOARD") == "1",
		Pointer: p.PropertyValue("ID_INPUT_MOUSE") == "1" ||
			p.PropertyValue("ID_INPUT_TOUCHPAD") == "1" ||
			p.PropertyValue("ID_INPUT_POINTINGSTICK") == "1",
	}
	if !d.Keyboard && !d.Pointer {
		return evinput.SeatDevice{}, false
	}
	return d, true
}
