//go:build linux && cgo

package udevseat

import (
	"fmt"
	"sort"

	"github.com/andresousadotpt/hidstream/internal/device/evinput"
	udev "github.com/jochenvg/go-udev"
)

// Seat lists initialized input devices from the udev database.
type Seat struct {
	u udev.Udev
}

// New returns a Seat backed by a fresh udev context.
func New() *Seat {
	return &Seat{}
}

// Devices returns the keyboard and pointer nodes assigned to seat, sorted by
// path.
func (s *Seat) Devices(seat string) ([]evinput.SeatDevice, error) {
	e := s.u.NewEnumerate()
	if err := e.AddMatchSubsystem("input"); err != nil {
		return nil, fmt.Errorf("udev match subsystem: %w", err)
	}
	if err := e.AddMatchIsInitialized(); err != nil {
		return nil, fmt.Errorf("udev match initialized: %w", err)
	}
	devs, err := e.Devices()
	if err != nil {
		return nil, fmt.Errorf("udev enumerate: %w", err)
	}

	var out []evinput.SeatDevice
	for _, d := range devs {
		name := ""
		if parent := d.Parent(); parent != nil {
			name = parent.PropertyValue("NAME")
		}
		if sd, ok := classify(d.Devnode(), name, seat, d); ok {
			out = append(out, sd)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
