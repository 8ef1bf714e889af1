//go:build !linux

package main

import (
	"log/slog"

	"github.com/andresousadotpt/hidstream/internal/device"
	"github.com/andresousadotpt/hidstream/internal/device/globalhook"
)

func newDeviceBackend(_ Config, logger *slog.Logger) (device.Backend, error) {
	return globalhook.New(logger), nil
}
