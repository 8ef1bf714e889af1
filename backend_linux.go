//go:build linux

package main

import (
	"log/slog"

	"github.com/andresousadotpt/hidstream/internal/device"
	"github.com/andresousadotpt/hidstream/internal/device/evinput"
)

func newDeviceBackend(cfg Config, logger *slog.Logger) (device.Backend, error) {
	return evinput.New(evinput.Options{
		Seat:     newSeat(logger),
		SeatName: cfg.Device.Seat,
		Hotplug:  cfg.Device.Hotplug,
		Settle:   cfg.Device.Settle,
		Logger:   logger,
	})
}
