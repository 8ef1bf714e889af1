//go:build linux && !cgo

package main

import (
	"log/slog"

	"github.com/andresousadotpt/hidstream/internal/device/evinput"
)

func newSeat(logger *slog.Logger) evinput.Seat {
	logger.Warn("built without cgo, probing /dev/input instead of asking udev")
	return evinput.ScanSeat{}
}
