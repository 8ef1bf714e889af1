//go:build !cgo

package main

import (
	"log/slog"

	"github.com/andresousadotpt/hidstream/internal/gamepad"
)

// newGamepadSource reports no source: SDL needs cgo.
func newGamepadSource(*slog.Logger) gamepad.Source {
	return nil
}
