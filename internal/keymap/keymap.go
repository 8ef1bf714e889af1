// Package keymap maps Linux input key codes to the symbolic key names carried by
// keyboard events. The same table backs both capture backends, so a key is
// reported under one name whichever backend saw it.
package keymap

import (
	"fmt"
	"sort"
)

// names is keyed by kernel key code (linux/input-event-codes.h).
var names = map[uint32]string{
	// Function keys
	1:   "Escape",
	28:  "Return",
	14:  "Backspace",
	15:  "Tab",
	57:  "Space",
	58:  "CapsLock",
	99:  "PrintScreen",
	70:  "ScrollLock",
	119: "Pause",
	69:  "NumLock",
	110: "Insert",
	102: "Home",
	107: "End",
	104: "PageUp",
	109: "PageDown",
	111: "Delete",

	// Arrows
	103: "UpArrow",
	108: "DownArrow",
	105: "LeftArrow",
	106: "RightArrow",

	59: "F1",
	60: "F2",
	61: "F3",
	62: "F4",
	63: "F5",
	64: "F6",
	65: "F7",
	66: "F8",
	67: "F9",
	68: "F10",
	87: "F11",
	88: "F12",

	// Digit row
	2:  "Num1",
	3:  "Num2",
	4:  "Num3",
	5:  "Num4",
	6:  "Num5",
	7:  "Num6",
	8:  "Num7",
	9:  "Num8",
	10: "Num9",
	11: "Num0",

	16: "KeyQ",
	17: "KeyW",
	18: "KeyE",
	19: "KeyR",
	20: "KeyT",
	21: "KeyY",
	22: "KeyU",
	23: "KeyI",
	24: "KeyO",
	25: "KeyP",
	30: "KeyA",
	31: "KeyS",
	32: "KeyD",
	33: "KeyF",
	34: "KeyG",
	35: "KeyH",
	36: "KeyJ",
	37: "KeyK",
	38: "KeyL",
	44: "KeyZ",
	45: "KeyX",
	46: "KeyC",
	47: "KeyV",
	48: "KeyB",
	49: "KeyN",
	50: "KeyM",

	// Punctuation
	41:  "BackQuote",
	12:  "Minus",
	13:  "Equal",
	26:  "LeftBracket",
	27:  "RightBracket",
	39:  "SemiColon",
	40:  "Quote",
	43:  "BackSlash",
	86:  "IntlBackslash",
	89:  "IntlRo",
	124: "IntlYen",
	101: "KanaMode",
	51:  "Comma",
	52:  "Dot",
	53:  "Slash",

	// Modifiers
	29:  "ControlLeft",
	97:  "ControlRight",
	42:  "ShiftLeft",
	54:  "ShiftRight",
	56:  "Alt",
	100: "AltGr",
	125: "MetaLeft",
	126: "MetaRight",
	127: "Apps",

	// Keypad
	55:  "KpMultiply",
	78:  "KpMinus",
	74:  "KpPlus",
	98:  "KpDivide",
	117: "KpEqual",
	121: "KpComma",
	96:  "KpReturn",
	83:  "KpDecimal",
	79:  "Kp1",
	80:  "Kp2",
	81:  "Kp3",
	75:  "Kp4",
	76:  "Kp5",
	77:  "Kp6",
	71:  "Kp7",
	72:  "Kp8",
	73:  "Kp9",
	82:  "Kp0",

	// Media
	115: "VolumeUp",
	114: "VolumeDown",
	113: "VolumeMute",

	// Language
	90: "Lang1",
	91: "Lang2",
	92: "Lang3",
	93: "Lang4",
	94: "Lang5",
}

// Lookup returns the symbolic name for a kernel key code.
func Lookup(code uint32) (string, bool) {
	name, ok := names[code]
	return name, ok
}

// Name is like Lookup but never drops a code: unrecognized codes render as
// "Unknown(<code>)".
func Name(code uint32) string {
	if name, ok := names[code]; ok {
		return name
	}
	return Unknown(code)
}

// Unknown formats the fallback label used for codes without a table entry.
func Unknown(code uint32) string {
	return fmt.Sprintf("Unknown(%d)", code)
}

// Codes lists every recognized kernel key code in ascending order.
func Codes() []uint32 {
	codes := make([]uint32, 0, len(names))
	for code := range names {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
