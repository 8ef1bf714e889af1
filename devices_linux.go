//go:build linux

package main

import (
	"fmt"
	"io"

	"github.com/andresousadotpt/hidstream/internal/device/evinput"
)

// listDevices prints the event nodes capture would use and what they were
// classified as.
func listDevices(w io.Writer) error {
	devs, err := evinput.ScanDevices()
	if err != nil {
		return err
	}
	if len(devs) == 0 {
		return fmt.Errorf("no keyboard or pointer devices found\nMake sure you are in the 'input' group:\n  sudo usermod -aG input $USER\nThen log out and back in")
	}
	for _, d := range devs {
		fmt.Fprintf(w, "%-20s %-9s %s\n", d.Path, deviceRole(d), d.Name)
	}
	return nil
}

func deviceRole(d evinput.SeatDevice) string {
	switch {
	case d.Keyboard && d.Pointer:
		return "keyboard+pointer"
	case d.Keyboard:
		return "keyboard"
	default:
		return "pointer"
	}
}
