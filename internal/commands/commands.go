// Package commands exposes the capture operations an embedding application
// can invoke, directly or by name.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Command names accepted by Invoke.
const (
	StartDevice  = "start_device_listening"
	StartGamepad = "start_gamepad_listing"
	StopGamepad  = "stop_gamepad_listing"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnavailable    = errors.New("capture category unavailable")
)

// DeviceListener blocks in Start for as long as device capture runs.
type DeviceListener interface {
	Start(ctx context.Context) error
}

// GamepadListener starts its loop in the background.
type GamepadListener interface {
	Start(ctx context.Context) error
	Stop()
}

// Service exposes the start and stop commands of both categories.
type Service struct {
	device  DeviceListener
	gamepad GamepadListener
	logger  *slog.Logger
}

// New builds a Service. A nil listener makes its commands fail with
// ErrUnavailable.
func New(device DeviceListener, gamepad GamepadListener, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{device: device, gamepad: gamepad, logger: logger}
}

// StartDeviceListening runs keyboard and mouse capture until ctx ends. It
// fails immediately when capture is already running.
func (s *Service) StartDeviceListening(ctx context.Context) error {
	if s.device == nil {
		return fmt.Errorf("%s: %w", StartDevice, ErrUnavailable)
	}
	return s.device.Start(ctx)
}

// StartGamepadListing starts controller capture. Starting twice is not an
// error.
func (s *Service) StartGamepadListing(ctx context.Context) error {
	if s.gamepad == nil {
		return fmt.Errorf("%s: %w", StartGamepad, ErrUnavailable)
	}
	return s.gamepad.Start(ctx)
}

// StopGamepadListing stops controller capture if it is running.
func (s *Service) StopGamepadListing() {
	if s.gamepad != nil {
		s.gamepad.Stop()
	}
}

// Invoke runs the command called name.
func (s *Service) Invoke(ctx context.Context, name string) error {
	s.logger.Debug("invoke", "command", name)
	switch name {
	case StartDevice:
		return s.StartDeviceListening(ctx)
	case StartGamepad:
		return s.StartGamepadListing(ctx)
	case StopGamepad:
		s.StopGamepadListing()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
}

// Names lists the commands Invoke accepts.
func Names() []string {
	return []string{StartDevice, StartGamepad, StopGamepad}
}
