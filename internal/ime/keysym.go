package ime

import "unicode"

// Modifier state masks as delivered by IBus.
const (
	ShiftMask   uint32 = 1 << 0
	LockMask    uint32 = 1 << 1
	ControlMask uint32 = 1 << 2
	Mod1Mask    uint32 = 1 << 3 // Alt
	Mod4Mask    uint32 = 1 << 6 // Super
	SuperMask   uint32 = 1 << 26
	HyperMask   uint32 = 1 << 27
	MetaMask    uint32 = 1 << 28
	ReleaseMask uint32 = 1 << 30
)

// passMask covers the modifiers whose combinations go to the application.
const passMask = ControlMask | Mod1Mask | Mod4Mask | SuperMask | HyperMask | MetaMask

// X11 keysyms handled by the controller.
const (
	KeyBackSpace uint32 = 0xff08
	KeyTab       uint32 = 0xff09
	KeyReturn    uint32 = 0xff0d
	KeyEscape    uint32 = 0xff1b
	KeyDelete    uint32 = 0xffff
	KeyUp        uint32 = 0xff52
	KeyDown      uint32 = 0xff54
	KeyPageUp    uint32 = 0xff55
	KeyPageDown  uint32 = 0xff56
	KeyKPEnter   uint32 = 0xff8d
	KeyKPUp      uint32 = 0xff97
	KeyKPDown    uint32 = 0xff99
	KeyKPPageUp  uint32 = 0xff9a
	KeyKPPageDn  uint32 = 0xff9b
	KeyKPDelete  uint32 = 0xff9f
	KeyF12       uint32 = 0xffc9
	KeySpace     uint32 = 0x0020
	Key0         uint32 = 0x0030
	Key1         uint32 = 0x0031
	Key9         uint32 = 0x0039
)

// keyvalToRune converts an X11 keysym to the rune it types, or 0.
func keyvalToRune(keyval uint32) rune {
	// Latin-1 maps directly.
	if keyval >= 0x20 && keyval <= 0x7e {
		return rune(keyval)
	}
	if keyval >= 0xa0 && keyval <= 0xff {
		return rune(keyval)
	}

	// Unicode keysyms (0x01000000 + codepoint)
	if keyval >= 0x01000100 && keyval <= 0x0110ffff {
		return rune(keyval - 0x01000000)
	}

	return 0
}

// printable reports whether r should be fed to the transducer.
func printable(r rune) bool {
	return r != 0 && unicode.IsPrint(r) && !unicode.IsSpace(r)
}

// digitIndex maps the keys 1-9 and 0 to candidate slots 0-9.
func digitIndex(keyval uint32) (int, bool) {
	switch {
	case keyval >= Key1 && keyval <= Key9:
		return int(keyval - Key1), true
	case keyval == Key0:
		return 9, true
	default:
		return 0, false
	}
}
