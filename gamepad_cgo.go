//go:build cgo

package main

import (
	"log/slog"

	"github.com/andresousadotpt/hidstream/internal/gamepad"
	"github.com/andresousadotpt/hidstream/internal/gamepad/sdlpad"
)

func newGamepadSource(logger *slog.Logger) gamepad.Source {
	return sdlpad.New(logger)
}
