//go:build linux

package evinput

import (
	"reflect"
	"testing"

	evdev "github.com/holoplot/go-evdev"
)

func in(t evdev.EvType, c evdev.EvCode, v int32) evdev.InputEvent {
	return evdev.InputEvent{Type: t, Code: c, Value: v}
}

func translateAll(f *frame, evs ...evdev.InputEvent) []rawEvent {
	var out []rawEvent
	for _, ev := range evs {
		out = f.translate(ev, out)
	}
	return out
}

func TestFrameAccumulatesMotion(t *testing.T) {
	f := newFrame(SeatDevice{Pointer: true})
	got := translateAll(f,
		in(evdev.EV_REL, evdev.REL_X, 3),
		in(evdev.EV_REL, evdev.REL_X, 2),
		in(evdev.EV_REL, evdev.REL_Y, -1),
		in(evdev.EV_SYN, evdev.SYN_REPORT, 0),
		in(evdev.EV_SYN, evdev.SYN_REPORT, 0),
	)
	want := []rawEvent{motionEvent{DX: 5, DY: -1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestFrameDiscardsDroppedFrame(t *testing.T) {
	f := newFrame(SeatDevice{Keyboard: true, Pointer: true})
	got := translateAll(f,
		in(evdev.EV_REL, evdev.REL_X, 7),
		in(evdev.EV_SYN, evdev.SYN_DROPPED, 0),
		in(evdev.EV_KEY, evdev.KEY_A, 1),
		in(evdev.EV_REL, evdev.REL_X, 4),
		in(evdev.EV_SYN, evdev.SYN_REPORT, 0),
		in(evdev.EV_KEY, evdev.KEY_ENTER, 1),
		in(evdev.EV_SYN, evdev.SYN_REPORT, 0),
	)
	want := []rawEvent{keyboardEvent{Key: 28, Pressed: true}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestFrameKeys(t *testing.T) {
	f := newFrame(SeatDevice{Keyboard: true})
	got := translateAll(f,
		in(evdev.EV_KEY, evdev.KEY_ENTER, 1),
		in(evdev.EV_KEY, evdev.KEY_ENTER, 2),
		in(evdev.EV_KEY, evdev.KEY_ENTER, 2),
		in(evdev.EV_KEY, evdev.KEY_ENTER, 0),
		in(evdev.EV_MSC, evdev.MSC_SCAN, 0x1c),
	)
	want := []rawEvent{
		keyboardEvent{Key: 28, Pressed: true},
		keyboardEvent{Key: 28, Pressed: false},
		otherEvent{Type: 0x04, Code: 0x04},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestFrameSeparatesButtonsFromKeys(t *testing.T) {
	kbd := newFrame(SeatDevice{Keyboard: true})
	got := translateAll(kbd,
		in(evdev.EV_KEY, evdev.BTN_LEFT, 1),
		in(evdev.EV_REL, evdev.REL_X, 1),
	)
	want := []rawEvent{
		otherEvent{Type: 0x01, Code: 0x110},
		otherEvent{Type: 0x02, Code: 0x00},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("keyboard: got %#v, want %#v", got, want)
	}

	mouse := newFrame(SeatDevice{Pointer: true})
	got = translateAll(mouse,
		in(evdev.EV_KEY, evdev.BTN_LEFT, 1),
		in(evdev.EV_KEY, evdev.BTN_SIDE, 0),
		in(evdev.EV_KEY, evdev.BTN_SOUTH, 1),
		in(evdev.EV_KEY, evdev.KEY_A, 1),
	)
	want = []rawEvent{
		buttonEvent{Button: 0x110, Pressed: true},
		buttonEvent{Button: 0x113, Pressed: false},
		otherEvent{Type: 0x01, Code: 0x130},
		otherEvent{Type: 0x01, Code: 30},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("pointer: got %#v, want %#v", got, want)
	}
}

func TestFrameTouchpadPosition(t *testing.T) {
	f := newFrame(SeatDevice{Pointer: true})
	got := translateAll(f,
		in(evdev.EV_KEY, evdev.BTN_TOUCH, 1),
		in(evdev.EV_ABS, evdev.ABS_X, 1000),
		in(evdev.EV_ABS, evdev.ABS_Y, 500),
		in(evdev.EV_SYN, evdev.SYN_REPORT, 0),
		in(evdev.EV_ABS, evdev.ABS_X, 1040),
		in(evdev.EV_ABS, evdev.ABS_Y, 520),
		in(evdev.EV_SYN, evdev.SYN_REPORT, 0),
		in(evdev.EV_ABS, evdev.ABS_Y, 510),
		in(evdev.EV_SYN, evdev.SYN_REPORT, 0),
	)
	want := []rawEvent{
		otherEvent{Type: 0x01, Code: 0x14a},
		motionEvent{DX: 40, DY: 20},
		motionEvent{DX: 0, DY: -10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestFrameTouchpadLiftResetsPosition(t *testing.T) {
	f := newFrame(SeatDevice{Pointer: true})
	got := translateAll(f,
		in(evdev.EV_ABS, evdev.ABS_X, 100),
		in(evdev.EV_ABS, evdev.ABS_Y, 100),
		in(evdev.EV_SYN, evdev.SYN_REPORT, 0),
		in(evdev.EV_KEY, evdev.BTN_TOUCH, 0),
		in(evdev.EV_SYN, evdev.SYN_REPORT, 0),
		in(evdev.EV_KEY, evdev.BTN_TOUCH, 1),
		in(evdev.EV_ABS, evdev.ABS_X, 3000),
		in(evdev.EV_ABS, evdev.ABS_Y, 2000),
		in(evdev.EV_SYN, evdev.SYN_REPORT, 0),
		in(evdev.EV_ABS, evdev.ABS_X, 3005),
		in(evdev.EV_SYN, evdev.SYN_REPORT, 0),
		in(evdev.EV_SYN, evdev.SYN_DROPPED, 0),
		in(evdev.EV_SYN, evdev.SYN_REPORT, 0),
		in(evdev.EV_ABS, evdev.ABS_X, 10),
		in(evdev.EV_SYN, evdev.SYN_REPORT, 0),
	)
	want := []rawEvent{
		otherEvent{Type: 0x01, Code: 0x14a},
		otherEvent{Type: 0x01, Code: 0x14a},
		motionEvent{DX: 5, DY: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestFrameIgnoresAbsoluteOnKeyboard(t *testing.T) {
	f := newFrame(SeatDevice{Keyboard: true})
	got := translateAll(f,
		in(evdev.EV_ABS, evdev.ABS_X, 10),
		in(evdev.EV_ABS, evdev.ABS_X, 20),
		in(evdev.EV_SYN, evdev.SYN_REPORT, 0),
	)
	want := []rawEvent{
		otherEvent{Type: 0x03, Code: 0x00},
		otherEvent{Type: 0x03, Code: 0x00},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParseEvents(t *testing.T) {
	var buf []byte
	buf = append(buf, encodeEvent(in(evdev.EV_KEY, evdev.KEY_ESC, 1))...)
	buf = append(buf, encodeEvent(in(evdev.EV_REL, evdev.REL_Y, -3))...)
	buf = append(buf, make([]byte, eventSize/2)...)

	got := parseEvents(buf, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 whole records, got %d", len(got))
	}
	if got[0].Type != evdev.EV_KEY || got[0].Code != evdev.KEY_ESC || got[0].Value != 1 {
		t.Errorf("record 0: %+v", got[0])
	}
	if got[1].Type != evdev.EV_REL || got[1].Code != evdev.REL_Y || got[1].Value != -3 {
		t.Errorf("record 1: %+v", got[1])
	}
}
