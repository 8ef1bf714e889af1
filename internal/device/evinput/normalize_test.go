package evinput

import (
	"testing"

	"github.com/andresousadotpt/hidstream/internal/device"
)

func TestNormalizeButtons(t *testing.T) {
	cases := []struct {
		raw  buttonEvent
		kind device.Kind
		name string
	}{
		{buttonEvent{Button: 0x110, Pressed: true}, device.KindMousePress, "Left"},
		{buttonEvent{Button: 0x110, Pressed: false}, device.KindMouseRelease, "Left"},
		{buttonEvent{Button: 0x111, Pressed: true}, device.KindMousePress, "Right"},
		{buttonEvent{Button: 0x112, Pressed: false}, device.KindMouseRelease, "Middle"},
		{buttonEvent{Button: 0x999, Pressed: true}, device.KindMousePress, "Unknown(153)"},
		{buttonEvent{Button: 0x113, Pressed: true}, device.KindMousePress, "Unknown(19)"},
	}
	for _, tc := range cases {
		ev, ok := normalize(tc.raw)
		if !ok {
			t.Fatalf("%+v: expected an event", tc.raw)
		}
		if ev.Kind() != tc.kind || ev.Name() != tc.name {
			t.Errorf("%+v: got %s, want %s(%s)", tc.raw, ev, tc.kind, tc.name)
		}
	}
}

func TestNormalizeKeyboard(t *testing.T) {
	ev, ok := normalize(keyboardEvent{Key: 28, Pressed: true})
	if !ok || ev.Kind() != device.KindKeyboardPress || ev.Name() != "Return" {
		t.Fatalf("expected KeyboardPress(Return), got %s", ev)
	}
	ev, ok = normalize(keyboardEvent{Key: 28, Pressed: false})
	if !ok || ev.Kind() != device.KindKeyboardRelease || ev.Name() != "Return" {
		t.Fatalf("expected KeyboardRelease(Return), got %s", ev)
	}
	ev, _ = normalize(keyboardEvent{Key: 240, Pressed: true})
	if ev.Name() != "Unknown(240)" {
		t.Fatalf("expected Unknown(240), got %s", ev.Name())
	}
}

func TestNormalizeMotion(t *testing.T) {
	ev, ok := normalize(motionEvent{DX: 3.5, DY: -1.2})
	if !ok || ev.Kind() != device.KindMouseMove {
		t.Fatalf("expected MouseMove, got %s", ev)
	}
	if ev.Point() != (device.Point{X: 3.5, Y: -1.2}) {
		t.Fatalf("unexpected point %+v", ev.Point())
	}
}

func TestNormalizeDropsOtherEvents(t *testing.T) {
	for _, raw := range []rawEvent{otherEvent{Type: 0x03, Code: 0x00}, otherEvent{}, nil} {
		if _, ok := normalize(raw); ok {
			t.Errorf("%#v: expected no event", raw)
		}
	}
}
