// Package globalhook is the generic capture backend. It installs a
// system-wide hook through libuiohook and needs no access to device nodes.
package globalhook

import (
	"fmt"

	"github.com/andresousadotpt/hidstream/internal/device"
	"github.com/andresousadotpt/hidstream/internal/keymap"
)

// libuiohook event types, as carried in the hook event's Kind.
const (
	kindHookEnabled   = 1
	kindHookDisabled  = 2
	kindKeyTyped      = 3
	kindKeyPressed    = 4
	kindKeyReleased   = 5
	kindMouseClicked  = 6
	kindMousePressed  = 7
	kindMouseReleased = 8
	kindMouseMoved    = 9
	kindMouseDragged  = 10
	kindMouseWheel    = 11
)

// hookEvent is the part of a hook event the normalizer reads.
type hookEvent struct {
	Kind    uint8
	Keycode uint16
	Button  uint16
	X, Y    int16
}

// normalize maps a hook event to a device event. Typed keys, clicks, wheel
// and hook state changes report false.
func normalize(ev hookEvent) (device.Event, bool) {
	switch ev.Kind {
	case kindKeyPressed:
		return device.KeyboardPress(keymap.HookName(ev.Keycode)), true
	case kindKeyReleased:
		return device.KeyboardRelease(keymap.HookName(ev.Keycode)), true
	case kindMousePressed:
		return device.MousePress(buttonName(ev.Button)), true
	case kindMouseReleased:
		return device.MouseRelease(buttonName(ev.Button)), true
	case kindMouseMoved, kindMouseDragged:
		return device.MouseMove(float64(ev.X), float64(ev.Y)), true
	default:
		return device.Event{}, false
	}
}

func buttonName(b uint16) string {
	switch b {
	case 1:
		return "Left"
	case 2:
		return "Right"
	case 3:
		return "Middle"
	default:
		return fmt.Sprintf("Unknown(%d)", b)
	}
}
