// Package frontend implements the presentation and keyboard input of the
// emulator: a desktop window, a terminal renderer and a headless text dump.
package frontend

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/keymap"
)

// Frontend names accepted on the command line.
const (
	WindowName   = "window"
	TerminalName = "terminal"
	NoneName     = "none"
)

// ErrUnavailable is returned if the binary was built without window support.
var ErrUnavailable = errors.New("window frontend not available in headless build")

// ErrUnknown is returned for unsupported frontend names.
var ErrUnknown = errors.New("unknown frontend")

// ErrUnreachableKey is returned for key layouts that bind a host key the
// frontend can not report.
var ErrUnreachableKey = errors.New("host key not supported by frontend")

// ErrNotTerminal is returned if the terminal frontend is started without a
// terminal as input.
var ErrNotTerminal = errors.New("input is not a terminal")

// Controller receives the input of a frontend. It is implemented by the
// driver runner.
type Controller interface {
	KeyEvent(key uint8, down bool)
	Reset()
	SetPaused(paused bool)
	Paused() bool
	Cycles() uint64
}

// Validate returns an error if the frontend name is not supported.
func Validate(name string) error {
	switch name {
	case WindowName, TerminalName, NoneName:
		return nil
	default:
		return fmt.Errorf("%w '%s'", ErrUnknown, name)
	}
}

// ValidateLayout returns an error if the frontend can not report every host
// key of the layout. The window only reports letters and digits.
func ValidateLayout(name string, keys *keymap.Map) error {
	if name != WindowName {
		return nil
	}

	for key := range uint8(chip8.KeyCount) {
		r := keys.Rune(key)
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return fmt.Errorf("keypad key %X bound to '%c': %w", key, r, ErrUnreachableKey)
		}
	}
	return nil
}
