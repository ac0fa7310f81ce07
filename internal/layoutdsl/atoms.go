package layoutdsl

import "quickdraw/internal/keycode"

// nameToKeycode resolves a bare identifier (spec §4.8 "bare identifiers
// name keycodes") to its Keycode.
var nameToKeycode = map[string]keycode.Keycode{
	"A": keycode.A, "B": keycode.B, "C": keycode.C, "D": keycode.D,
	"E": keycode.E, "F": keycode.F, "G": keycode.G, "H": keycode.H,
	"I": keycode.I, "J": keycode.J, "K": keycode.K, "L": keycode.L,
	"M": keycode.M, "N": keycode.N, "O": keycode.O, "P": keycode.P,
	"Q": keycode.Q, "R": keycode.R, "S": keycode.S, "T": keycode.T,
	"U": keycode.U, "V": keycode.V, "W": keycode.W, "X": keycode.X,
	"Y": keycode.Y, "Z": keycode.Z,

	"Enter": keycode.Enter, "Escape": keycode.Escape, "Backspace": keycode.Backspace,
	"Tab": keycode.Tab, "Space": keycode.Space, "CapsLock": keycode.CapsLock,
	"Minus": keycode.Minus, "Equal": keycode.Equal,
	"LeftBracket": keycode.LeftBracket, "RightBracket": keycode.RightBracket,
	"Backslash": keycode.Backslash, "NonUSHash": keycode.NonUSHash,
	"Semicolon": keycode.Semicolon, "Quote": keycode.Quote, "Grave": keycode.Grave,
	"Comma": keycode.Comma, "Dot": keycode.Dot, "Slash": keycode.Slash,

	"F1": keycode.F1, "F2": keycode.F2, "F3": keycode.F3, "F4": keycode.F4,
	"F5": keycode.F5, "F6": keycode.F6, "F7": keycode.F7, "F8": keycode.F8,
	"F9": keycode.F9, "F10": keycode.F10, "F11": keycode.F11, "F12": keycode.F12,

	"PrintScreen": keycode.PrintScreen, "ScrollLock": keycode.ScrollLock,
	"Pause": keycode.Pause, "Insert": keycode.Insert, "Home": keycode.Home,
	"PageUp": keycode.PageUp, "Delete": keycode.Delete, "End": keycode.End,
	"PageDown": keycode.PageDown, "Right": keycode.Right, "Left": keycode.Left,
	"Down": keycode.Down, "Up": keycode.Up,

	"NumLock": keycode.NumLock, "KpSlash": keycode.KpSlash, "KpAsterisk": keycode.KpAsterisk,
	"KpMinus": keycode.KpMinus, "KpPlus": keycode.KpPlus, "KpEnter": keycode.KpEnter,
	"Kp1": keycode.Kp1, "Kp2": keycode.Kp2, "Kp3": keycode.Kp3, "Kp4": keycode.Kp4,
	"Kp5": keycode.Kp5, "Kp6": keycode.Kp6, "Kp7": keycode.Kp7, "Kp8": keycode.Kp8,
	"Kp9": keycode.Kp9, "Kp0": keycode.Kp0, "KpDot": keycode.KpDot,

	"LCtrl": keycode.LCtrl, "LShift": keycode.LShift, "LAlt": keycode.LAlt, "LGui": keycode.LGui,
	"RCtrl": keycode.RCtrl, "RShift": keycode.RShift, "RAlt": keycode.RAlt, "RGui": keycode.RGui,
}

// digitKeycode resolves a bare digit '0'..'9' to its top-row keycode
// (spec §4.8 "bare digits ... are the obvious keycodes").
func digitKeycode(r rune) (keycode.Keycode, bool) {
	switch r {
	case '1':
		return keycode.Kb1, true
	case '2':
		return keycode.Kb2, true
	case '3':
		return keycode.Kb3, true
	case '4':
		return keycode.Kb4, true
	case '5':
		return keycode.Kb5, true
	case '6':
		return keycode.Kb6, true
	case '7':
		return keycode.Kb7, true
	case '8':
		return keycode.Kb8, true
	case '9':
		return keycode.Kb9, true
	case '0':
		return keycode.Kb0, true
	}
	return 0, false
}

// punctuation maps an unshifted punctuation character to its keycode
// (spec §4.8 "bare ... punctuation are the obvious keycodes").
var punctuation = map[rune]keycode.Keycode{
	'-': keycode.Minus, '=': keycode.Equal,
	'[': keycode.LeftBracket, ']': keycode.RightBracket,
	'\\': keycode.Backslash, ';': keycode.Semicolon, '\'': keycode.Quote,
	'`': keycode.Grave, ',': keycode.Comma, '.': keycode.Dot, '/': keycode.Slash,
}

// shiftedPunctuation maps a shifted symbol to the base keycode it is
// Shift+ of (spec §4.8 "shifted characters expand to
// MultipleKeyCodes(&[LShift, base])"), matching the worked example
// ("!" -> MultipleKeyCodes([LShift, Kb1])) in §8 scenario S2.
var shiftedPunctuation = map[rune]keycode.Keycode{
	'!': keycode.Kb1, '@': keycode.Kb2, '#': keycode.Kb3, '$': keycode.Kb4,
	'%': keycode.Kb5, '^': keycode.Kb6, '&': keycode.Kb7, '*': keycode.Kb8,
	'(': keycode.Kb9, ')': keycode.Kb0,
	'_': keycode.Minus, '+': keycode.Equal,
	'{': keycode.LeftBracket, '}': keycode.RightBracket,
	'|': keycode.Backslash, ':': keycode.Semicolon,
	'<': keycode.Comma, '>': keycode.Dot, '?': keycode.Slash, '~': keycode.Grave,
}
