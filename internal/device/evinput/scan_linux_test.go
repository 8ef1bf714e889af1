//go:build linux

package evinput

import (
	"testing"

	evdev "github.com/holoplot/go-evdev"
)

func TestClassifyCaps(t *testing.T) {
	cases := []struct {
		name              string
		types             []evdev.EvType
		keys              []evdev.EvCode
		keyboard, pointer bool
	}{
		{"keyboard", []evdev.EvType{evdev.EV_KEY, evdev.EV_MSC}, []evdev.EvCode{evdev.KEY_ESC, evdev.KEY_A, evdev.KEY_ENTER}, true, false},
		{"mouse", []evdev.EvType{evdev.EV_KEY, evdev.EV_REL}, []evdev.EvCode{evdev.BTN_LEFT, evdev.BTN_RIGHT}, false, true},
		{"combo", []evdev.EvType{evdev.EV_KEY, evdev.EV_REL}, []evdev.EvCode{evdev.KEY_A, evdev.KEY_ENTER, evdev.BTN_LEFT}, true, true},
		{"touchscreen", []evdev.EvType{evdev.EV_KEY, evdev.EV_ABS}, []evdev.EvCode{evdev.BTN_LEFT, evdev.BTN_TOUCH}, false, false},
		{"touchpad", []evdev.EvType{evdev.EV_KEY, evdev.EV_ABS}, []evdev.EvCode{evdev.BTN_LEFT, evdev.BTN_TOUCH, evdev.BTN_TOOL_FINGER}, false, true},
		{"tablet", []evdev.EvType{evdev.EV_KEY, evdev.EV_ABS}, []evdev.EvCode{evdev.BTN_LEFT, evdev.BTN_TOOL_PEN, evdev.BTN_TOOL_FINGER}, false, false},
		{"power button", []evdev.EvType{evdev.EV_KEY}, []evdev.EvCode{evdev.KEY_POWER}, false, false},
	}
	for _, tc := range cases {
		kbd, ptr := classifyCaps(tc.types, tc.keys)
		if kbd != tc.keyboard || ptr != tc.pointer {
			t.Errorf("%s: got keyboard=%v pointer=%v", tc.name, kbd, ptr)
		}
	}
}

func TestScanSeatOnlyServesDefault(t *testing.T) {
	if _, err := (ScanSeat{}).Devices("seat1"); err == nil {
		t.Fatal("expected an error for a non-default seat")
	}
}
