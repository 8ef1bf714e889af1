//go:build cgo

// Package sdlpad reads game controllers through SDL's GameController API.
package sdlpad

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/andresousadotpt/hidstream/internal/gamepad"
	"github.com/veandco/go-sdl2/sdl"
)

var buttons = map[int]gamepad.Button{
	int(sdl.CONTROLLER_BUTTON_A):             gamepad.South,
	int(sdl.CONTROLLER_BUTTON_B):             gamepad.East,
	int(sdl.CONTROLLER_BUTTON_X):             gamepad.West,
	int(sdl.CONTROLLER_BUTTON_Y):             gamepad.North,
	int(sdl.CONTROLLER_BUTTON_BACK):          gamepad.Select,
	int(sdl.CONTROLLER_BUTTON_GUIDE):         gamepad.Mode,
	int(sdl.CONTROLLER_BUTTON_START):         gamepad.Start,
	int(sdl.CONTROLLER_BUTTON_LEFTSTICK):     gamepad.LeftThumb,
	int(sdl.CONTROLLER_BUTTON_RIGHTSTICK):    gamepad.RightThumb,
	int(sdl.CONTROLLER_BUTTON_LEFTSHOULDER):  gamepad.LeftTrigger,
	int(sdl.CONTROLLER_BUTTON_RIGHTSHOULDER): gamepad.RightTrigger,
	int(sdl.CONTROLLER_BUTTON_DPAD_UP):       gamepad.DPadUp,
	int(sdl.CONTROLLER_BUTTON_DPAD_DOWN):     gamepad.DPadDown,
	int(sdl.CONTROLLER_BUTTON_DPAD_LEFT):     gamepad.DPadLeft,
	int(sdl.CONTROLLER_BUTTON_DPAD_RIGHT):    gamepad.DPadRight,
}

// Source opens SDL's game controller subsystem. Only one queue may be open
// at a time.
type Source struct {
	logger *slog.Logger
}

// New returns a Source that logs controller hotplug to logger.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{logger: logger}
}

// Open initializes SDL on the calling goroutine's thread, which stays locked
// until the queue is closed.
func (s *Source) Open() (gamepad.Queue, error) {
	runtime.LockOSThread()
	sdl.SetHint(sdl.HINT_JOYSTICK_ALLOW_BACKGROUND_EVENTS, "1")
	if err := sdl.Init(sdl.INIT_GAMECONTROLLER); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	return &queue{
		controllers: make(map[sdl.JoystickID]*sdl.GameController),
		logger:      s.logger,
	}, nil
}

type queue struct {
	controllers map[sdl.JoystickID]*sdl.GameController
	logger      *slog.Logger
}

func (q *queue) Next(wait time.Duration) (gamepad.RawEvent, bool) {
	ev := sdl.WaitEventTimeout(int(wait / time.Millisecond))
	if ev == nil {
		return gamepad.RawEvent{}, false
	}

	switch e := ev.(type) {
	case *sdl.ControllerDeviceEvent:
		return q.device(e), true
	case *sdl.ControllerButtonEvent:
		b, ok := buttons[int(e.Button)]
		if !ok {
			b = gamepad.ButtonUnknown
		}
		var v float32
		if e.State == sdl.PRESSED {
			v = 1
		}
		return gamepad.RawEvent{Kind: gamepad.RawButtonChanged, Button: b, Value: v, ID: int(e.Which)}, true
	case *sdl.ControllerAxisEvent:
		return axis(e), true
	}
	return gamepad.RawEvent{Kind: gamepad.RawOther}, true
}

func (q *queue) device(e *sdl.ControllerDeviceEvent) gamepad.RawEvent {
	switch e.Type {
	case sdl.CONTROLLERDEVICEADDED:
		c := sdl.GameControllerOpen(int(e.Which))
		if c == nil {
			q.logger.Warn("open controller", "index", e.Which, "error", sdl.GetError())
			return gamepad.RawEvent{Kind: gamepad.RawOther}
		}
		id := c.Joystick().InstanceID()
		q.controllers[id] = c
		return gamepad.RawEvent{Kind: gamepad.RawConnected, ID: int(id), Name: c.Name()}
	case sdl.CONTROLLERDEVICEREMOVED:
		if c, ok := q.controllers[e.Which]; ok {
			c.Close()
			delete(q.controllers, e.Which)
		}
		return gamepad.RawEvent{Kind: gamepad.RawDisconnected, ID: int(e.Which)}
	}
	return gamepad.RawEvent{Kind: gamepad.RawOther}
}

// axis reports sticks in [-1, 1] with up positive and the analog triggers as
// button changes in [0, 1].
func axis(e *sdl.ControllerAxisEvent) gamepad.RawEvent {
	raw := gamepad.RawEvent{Kind: gamepad.RawAxisChanged, ID: int(e.Which)}
	switch int(e.Axis) {
	case int(sdl.CONTROLLER_AXIS_LEFTX):
		raw.Axis, raw.Value = gamepad.LeftStickX, gamepad.StickValue(e.Value)
	case int(sdl.CONTROLLER_AXIS_LEFTY):
		raw.Axis, raw.Value = gamepad.LeftStickY, -gamepad.StickValue(e.Value)
	case int(sdl.CONTROLLER_AXIS_RIGHTX):
		raw.Axis, raw.Value = gamepad.RightStickX, gamepad.StickValue(e.Value)
	case int(sdl.CONTROLLER_AXIS_RIGHTY):
		raw.Axis, raw.Value = gamepad.RightStickY, -gamepad.StickValue(e.Value)
	case int(sdl.CONTROLLER_AXIS_TRIGGERLEFT):
		return gamepad.RawEvent{Kind: gamepad.RawButtonChanged, Button: gamepad.LeftTrigger2,
			Value: gamepad.TriggerValue(e.Value), ID: int(e.Which)}
	case int(sdl.CONTROLLER_AXIS_TRIGGERRIGHT):
		return gamepad.RawEvent{Kind: gamepad.RawButtonChanged, Button: gamepad.RightTrigger2,
			Value: gamepad.TriggerValue(e.Value), ID: int(e.Which)}
	default:
		raw.Axis, raw.Value = gamepad.AxisUnknown, gamepad.StickValue(e.Value)
	}
	return raw
}

// Close releases every open controller and shuts the subsystem down.
func (q *queue) Close() error {
	for id, c := range q.controllers {
		c.Close()
		delete(q.controllers, id)
	}
	sdl.QuitSubSystem(sdl.INIT_GAMECONTROLLER)
	runtime.UnlockOSThread()
	return nil
}
