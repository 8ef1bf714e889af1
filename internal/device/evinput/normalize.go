// Package evinput is the privileged capture backend: it opens the seat's
// input device nodes itself, waits on them with poll(2), and translates kernel
// input events into device events.
package evinput

import (
	"fmt"

	"github.com/andresousadotpt/hidstream/internal/device"
	"github.com/andresousadotpt/hidstream/internal/keymap"
)

// Kernel pointer button codes.
const (
	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112
)

// rawEvent is one translated kernel occurrence awaiting normalization.
type rawEvent interface {
	isRaw()
}

type keyboardEvent struct {
	Key     uint32
	Pressed bool
}

type buttonEvent struct {
	Button  uint32
	Pressed bool
}

// motionEvent carries unaccelerated relative deltas for one frame.
type motionEvent struct {
	DX, DY float64
}

// otherEvent is anything outside keyboard, pointer button and pointer motion.
type otherEvent struct {
	Type, Code uint16
}

func (keyboardEvent) isRaw() {}
func (buttonEvent) isRaw()   {}
func (motionEvent) isRaw()   {}
func (otherEvent) isRaw()    {}

// normalize maps a raw event to a device event. It reports false for shapes
// that are not forwarded.
func normalize(ev rawEvent) (device.Event, bool) {
	switch e := ev.(type) {
	case keyboardEvent:
		return device.Key(keymap.Name(e.Key), e.Pressed), true
	case buttonEvent:
		return device.Button(buttonName(e.Button), e.Pressed), true
	case motionEvent:
		return device.MouseMove(e.DX, e.DY), true
	default:
		return device.Event{}, false
	}
}

// buttonName names a pointer button. Unrecognized codes keep only their low
// byte, so 0x999 renders as Unknown(153).
func buttonName(code uint32) string {
	switch code {
	case btnLeft:
		return "Left"
	case btnRight:
		return "Right"
	case btnMiddle:
		return "Middle"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(code))
	}
}
