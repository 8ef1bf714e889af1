//go:build linux && cgo

package main

import (
	"log/slog"

	"github.com/andresousadotpt/hidstream/internal/device/evinput"
	"github.com/andresousadotpt/hidstream/internal/udevseat"
)

func newSeat(*slog.Logger) evinput.Seat {
	return udevseat.New()
}
