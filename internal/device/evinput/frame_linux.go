//go:build linux

package evinput

import (
	"encoding/binary"
	"unsafe"

	evdev "github.com/holoplot/go-evdev"
	"golang.org/x/sys/unix"
)

// eventSize is sizeof(struct input_event) on this architecture.
var eventSize = int(unsafe.Sizeof(unix.Timeval{})) + 8

// parseEvents decodes whole input_event records from buf; a trailing partial
// record is ignored.
func parseEvents(buf []byte, out []evdev.InputEvent) []evdev.InputEvent {
	tv := eventSize - 8
	for len(buf) >= eventSize {
		rec := buf[:eventSize]
		buf = buf[eventSize:]
		out = append(out, evdev.InputEvent{
			Type:  evdev.EvType(binary.NativeEndian.Uint16(rec[tv : tv+2])),
			Code:  evdev.EvCode(binary.NativeEndian.Uint16(rec[tv+2 : tv+4])),
			Value: int32(binary.NativeEndian.Uint32(rec[tv+4 : tv+8])),
		})
	}
	return out
}

// encodeEvent is the inverse of parseEvents for a single record.
func encodeEvent(ev evdev.InputEvent) []byte {
	rec := make([]byte, eventSize)
	tv := eventSize - 8
	binary.NativeEndian.PutUint16(rec[tv:tv+2], uint16(ev.Type))
	binary.NativeEndian.PutUint16(rec[tv+2:tv+4], uint16(ev.Code))
	binary.NativeEndian.PutUint32(rec[tv+4:tv+8], uint32(ev.Value))
	return rec
}

// frame turns one device's kernel event stream into raw events. Relative
// motion is summed until SYN_REPORT; after SYN_DROPPED the rest of the frame
// is discarded.
//
// Touchpads report absolute ABS_X/ABS_Y positions. While a finger stays
// down, the change from the previous position is added to the frame's
// motion. A BTN_TOUCH transition or a dropped frame forgets the position, so
// the first report of a new contact only sets the baseline.
type frame struct {
	keyboard bool
	pointer  bool
	dx, dy   int32
	dropped  bool

	absX, absY   int32
	haveX, haveY bool
}

func newFrame(d SeatDevice) *frame {
	return &frame{keyboard: d.Keyboard, pointer: d.Pointer}
}

func (f *frame) translate(ev evdev.InputEvent, out []rawEvent) []rawEvent {
	if ev.Type == evdev.EV_SYN {
		switch ev.Code {
		case evdev.SYN_REPORT:
			if !f.dropped && (f.dx != 0 || f.dy != 0) {
				out = append(out, motionEvent{DX: float64(f.dx), DY: float64(f.dy)})
			}
			f.dx, f.dy, f.dropped = 0, 0, false
		case evdev.SYN_DROPPED:
			f.dx, f.dy, f.dropped = 0, 0, true
			f.forgetPosition()
		}
		return out
	}
	if f.dropped {
		return out
	}

	switch ev.Type {
	case evdev.EV_KEY:
		if ev.Value == 2 {
			// autorepeat
			return out
		}
		pressed := ev.Value != 0
		if ev.Code == evdev.BTN_TOUCH && f.pointer {
			f.forgetPosition()
		}
		switch {
		case isPointerButton(ev.Code):
			if f.pointer {
				return append(out, buttonEvent{Button: uint32(ev.Code), Pressed: pressed})
			}
		case isKeyboardKey(ev.Code):
			if f.keyboard {
				return append(out, keyboardEvent{Key: uint32(ev.Code), Pressed: pressed})
			}
		}
	case evdev.EV_REL:
		if f.pointer {
			switch ev.Code {
			case evdev.REL_X:
				f.dx += ev.Value
				return out
			case evdev.REL_Y:
				f.dy += ev.Value
				return out
			}
		}
	case evdev.EV_ABS:
		if f.pointer {
			switch ev.Code {
			case evdev.ABS_X:
				if f.haveX {
					f.dx += ev.Value - f.absX
				}
				f.absX, f.haveX = ev.Value, true
				return out
			case evdev.ABS_Y:
				if f.haveY {
					f.dy += ev.Value - f.absY
				}
				f.absY, f.haveY = ev.Value, true
				return out
			}
		}
	}
	return append(out, otherEvent{Type: uint16(ev.Type), Code: uint16(ev.Code)})
}

func (f *frame) forgetPosition() {
	f.haveX, f.haveY = false, false
}

func isPointerButton(code evdev.EvCode) bool {
	return code >= evdev.BTN_MOUSE && code < evdev.BTN_JOYSTICK
}

// isKeyboardKey excludes the BTN_* block, which belongs to pointers,
// joysticks, gamepads and digitizers.
func isKeyboardKey(code evdev.EvCode) bool {
	return code < evdev.BTN_MISC || code >= evdev.KEY_OK
}
