package keymap

// lastPlainScancode is the highest libuiohook virtual code that equals the
// kernel code of the same key (the Set 1 scancode block up to F12).
const lastPlainScancode = 0x58

// uiohookExtended maps libuiohook virtual codes outside the plain block to
// kernel key codes.
var uiohookExtended = map[uint16]uint32{
	0x0E1C: 96,  // VC_KP_ENTER
	0x0E1D: 97,  // VC_CONTROL_R
	0x0E35: 98,  // VC_KP_DIVIDE
	0x0E37: 99,  // VC_PRINTSCREEN
	0x0E38: 100, // VC_ALT_R
	0x0E45: 119, // VC_PAUSE
	0x0E47: 102, // VC_HOME
	0xE048: 103, // VC_UP
	0x0E49: 104, // VC_PAGE_UP
	0xE04B: 105, // VC_LEFT
	0xE04D: 106, // VC_RIGHT
	0x0E4F: 107, // VC_END
	0xE050: 108, // VC_DOWN
	0x0E51: 109, // VC_PAGE_DOWN
	0x0E52: 110, // VC_INSERT
	0x0E53: 111, // VC_DELETE
	0x0E56: 86,  // VC_LESSER_GREATER
	0x0E5B: 125, // VC_META_L
	0x0E5C: 126, // VC_META_R
	0x0E5D: 127, // VC_CONTEXT_MENU
	0x0E0D: 117, // VC_KP_EQUALS
	0xE020: 113, // VC_VOLUME_MUTE
	0xE02E: 114, // VC_VOLUME_DOWN
	0xE030: 115, // VC_VOLUME_UP
	0x0073: 89,  // VC_UNDERSCORE
	0x007D: 124, // VC_YEN
}

// KernelCode converts a libuiohook virtual key code into a kernel key code.
func KernelCode(vc uint16) (uint32, bool) {
	if code, ok := uiohookExtended[vc]; ok {
		return code, true
	}
	if vc != 0 && vc <= lastPlainScancode {
		return uint32(vc), true
	}
	return 0, false
}

// HookName names a key reported by the global hook. Codes that do not map to a
// named kernel key render as "Unknown(<vc>)" with the virtual code verbatim.
func HookName(vc uint16) string {
	if code, ok := KernelCode(vc); ok {
		if name, ok := names[code]; ok {
			return name
		}
	}
	return Unknown(uint32(vc))
}
