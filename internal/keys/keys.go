// Package keys maps symbol names to evdev event codes.
//
// The table covers the names users write in preset mappings ("a", "enter",
// "btn_left") and resolves them to the kernel input codes from
// github.com/gvalkov/golang-evdev. Lookups are case-insensitive and
// NFC-normalized so symbols survive being typed on different layouts.
package keys

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gvalkov/golang-evdev"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownSymbol is returned when a name has no known event code.
var ErrUnknownSymbol = errors.New("unknown symbol")

var byName = map[string]int{
	"a": evdev.KEY_A, "b": evdev.KEY_B, "c": evdev.KEY_C, "d": evdev.KEY_D,
	"e": evdev.KEY_E, "f": evdev.KEY_F, "g": evdev.KEY_G, "h": evdev.KEY_H,
	"i": evdev.KEY_I, "j": evdev.KEY_J, "k": evdev.KEY_K, "l": evdev.KEY_L,
	"m": evdev.KEY_M, "n": evdev.KEY_N, "o": evdev.KEY_O, "p": evdev.KEY_P,
	"q": evdev.KEY_Q, "r": evdev.KEY_R, "s": evdev.KEY_S, "t": evdev.KEY_T,
	"u": evdev.KEY_U, "v": evdev.KEY_V, "w": evdev.KEY_W, "x": evdev.KEY_X,
	"y": evdev.KEY_Y, "z": evdev.KEY_Z,

	"0": evdev.KEY_0, "1": evdev.KEY_1, "2": evdev.KEY_2, "3": evdev.KEY_3,
	"4": evdev.KEY_4, "5": evdev.KEY_5, "6": evdev.KEY_6, "7": evdev.KEY_7,
	"8": evdev.KEY_8, "9": evdev.KEY_9,

	"f1": evdev.KEY_F1, "f2": evdev.KEY_F2, "f3": evdev.KEY_F3,
	"f4": evdev.KEY_F4, "f5": evdev.KEY_F5, "f6": evdev.KEY_F6,
	"f7": evdev.KEY_F7, "f8": evdev.KEY_F8, "f9": evdev.KEY_F9,
	"f10": evdev.KEY_F10, "f11": evdev.KEY_F11, "f12": evdev.KEY_F12,

	"enter":     evdev.KEY_ENTER,
	"return":    evdev.KEY_ENTER,
	"space":     evdev.KEY_SPACE,
	"tab":       evdev.KEY_TAB,
	"backspace": evdev.KEY_BACKSPACE,
	"escape":    evdev.KEY_ESC,
	"esc":       evdev.KEY_ESC,

	"minus":      evdev.KEY_MINUS,
	"equal":      evdev.KEY_EQUAL,
	"leftbrace":  evdev.KEY_LEFTBRACE,
	"rightbrace": evdev.KEY_RIGHTBRACE,
	"semicolon":  evdev.KEY_SEMICOLON,
	"apostrophe": evdev.KEY_APOSTROPHE,
	"grave":      evdev.KEY_GRAVE,
	"backslash":  evdev.KEY_BACKSLASH,
	"comma":      evdev.KEY_COMMA,
	"dot":        evdev.KEY_DOT,
	"period":     evdev.KEY_DOT,
	"slash":      evdev.KEY_SLASH,

	"shift":      evdev.KEY_LEFTSHIFT,
	"shift_l":    evdev.KEY_LEFTSHIFT,
	"shift_r":    evdev.KEY_RIGHTSHIFT,
	"leftshift":  evdev.KEY_LEFTSHIFT,
	"rightshift": evdev.KEY_RIGHTSHIFT,
	"control":    evdev.KEY_LEFTCTRL,
	"ctrl":       evdev.KEY_LEFTCTRL,
	"control_l":  evdev.KEY_LEFTCTRL,
	"control_r":  evdev.KEY_RIGHTCTRL,
	"leftctrl":   evdev.KEY_LEFTCTRL,
	"rightctrl":  evdev.KEY_RIGHTCTRL,
	"alt":        evdev.KEY_LEFTALT,
	"alt_l":      evdev.KEY_LEFTALT,
	"alt_r":      evdev.KEY_RIGHTALT,
	"altgr":      evdev.KEY_RIGHTALT,
	"leftalt":    evdev.KEY_LEFTALT,
	"rightalt":   evdev.KEY_RIGHTALT,
	"super":      evdev.KEY_LEFTMETA,
	"super_l":    evdev.KEY_LEFTMETA,
	"super_r":    evdev.KEY_RIGHTMETA,
	"meta":       evdev.KEY_LEFTMETA,
	"leftmeta":   evdev.KEY_LEFTMETA,
	"rightmeta":  evdev.KEY_RIGHTMETA,

	"capslock":   evdev.KEY_CAPSLOCK,
	"numlock":    evdev.KEY_NUMLOCK,
	"scrolllock": evdev.KEY_SCROLLLOCK,

	"up":       evdev.KEY_UP,
	"down":     evdev.KEY_DOWN,
	"left":     evdev.KEY_LEFT,
	"right":    evdev.KEY_RIGHT,
	"home":     evdev.KEY_HOME,
	"end":      evdev.KEY_END,
	"pageup":   evdev.KEY_PAGEUP,
	"pagedown": evdev.KEY_PAGEDOWN,
	"insert":   evdev.KEY_INSERT,
	"delete":   evdev.KEY_DELETE,

	"kp0": evdev.KEY_KP0, "kp1": evdev.KEY_KP1, "kp2": evdev.KEY_KP2,
	"kp3": evdev.KEY_KP3, "kp4": evdev.KEY_KP4, "kp5": evdev.KEY_KP5,
	"kp6": evdev.KEY_KP6, "kp7": evdev.KEY_KP7, "kp8": evdev.KEY_KP8,
	"kp9": evdev.KEY_KP9,
	"kpenter":    evdev.KEY_KPENTER,
	"kpplus":     evdev.KEY_KPPLUS,
	"kpminus":    evdev.KEY_KPMINUS,
	"kpasterisk": evdev.KEY_KPASTERISK,
	"kpslash":    evdev.KEY_KPSLASH,
	"kpdot":      evdev.KEY_KPDOT,

	"mute":         evdev.KEY_MUTE,
	"volumeup":     evdev.KEY_VOLUMEUP,
	"volumedown":   evdev.KEY_VOLUMEDOWN,
	"playpause":    evdev.KEY_PLAYPAUSE,
	"nextsong":     evdev.KEY_NEXTSONG,
	"previoussong": evdev.KEY_PREVIOUSSONG,

	"btn_left":   evdev.BTN_LEFT,
	"btn_right":  evdev.BTN_RIGHT,
	"btn_middle": evdev.BTN_MIDDLE,
	"btn_side":   evdev.BTN_SIDE,
	"btn_extra":  evdev.BTN_EXTRA,
}

// Normalize lowercases, trims, and NFC-normalizes a symbol name so lookups
// are insensitive to case and Unicode composition form.
func Normalize(name string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(name)))
}

// Get resolves a symbol name to its EV_KEY event code. The "key_" prefix of
// kernel constant names is accepted, so "KEY_A" and "a" resolve identically.
func Get(name string) (int, error) {
	normalized := Normalize(name)
	if code, ok := byName[normalized]; ok {
		return code, nil
	}
	if trimmed, ok := strings.CutPrefix(normalized, "key_"); ok {
		if code, ok := byName[trimmed]; ok {
			return code, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, name)
}

// All returns the full set of key codes in the table.
func All() Set {
	s := make(Set, len(byName))
	for _, code := range byName {
		s[code] = struct{}{}
	}
	return s
}

// Buttons returns the mouse button codes in the table. These belong to the
// pointer device class, not the virtual keyboard.
func Buttons() Set {
	return NewSet(
		evdev.BTN_LEFT,
		evdev.BTN_RIGHT,
		evdev.BTN_MIDDLE,
		evdev.BTN_SIDE,
		evdev.BTN_EXTRA,
	)
}
