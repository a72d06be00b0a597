package config

// X11 keysym values for the keys nameable in keybindings. Letters and digits
// map to their Latin-1 keysyms; the rest come from keysymdef.h.
var namedKeysyms = map[string]uint32{
	"Return":    0xff0d,
	"Tab":       0xff09,
	"space":     0x0020,
	"Escape":    0xff1b,
	"BackSpace": 0xff08,
	"Delete":    0xffff,
	"Print":     0xff61,
	"Home":      0xff50,
	"End":       0xff57,
	"Prior":     0xff55,
	"Next":      0xff56,
	"Left":      0xff51,
	"Up":        0xff52,
	"Right":     0xff53,
	"Down":      0xff54,

	"minus":        0x002d,
	"equal":        0x003d,
	"comma":        0x002c,
	"period":       0x002e,
	"slash":        0x002f,
	"backslash":    0x005c,
	"semicolon":    0x003b,
	"apostrophe":   0x0027,
	"grave":        0x0060,
	"bracketleft":  0x005b,
	"bracketright": 0x005d,

	"F1":  0xffbe,
	"F2":  0xffbf,
	"F3":  0xffc0,
	"F4":  0xffc1,
	"F5":  0xffc2,
	"F6":  0xffc3,
	"F7":  0xffc4,
	"F8":  0xffc5,
	"F9":  0xffc6,
	"F10": 0xffc7,
	"F11": 0xffc8,
	"F12": 0xffc9,
}

// LookupKeysym resolves a key name to its keysym. Single letters and digits
// are handled directly; anything else must appear in the named table.
func LookupKeysym(name string) (uint32, bool) {
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			return uint32(c), true
		case c >= 'A' && c <= 'Z':
			// Bindings use the lowercase keysym; Shift is a modifier.
			return uint32(c - 'A' + 'a'), true
		}
	}
	sym, ok := namedKeysyms[name]
	return sym, ok
}
