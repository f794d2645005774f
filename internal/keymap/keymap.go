// Package keymap maps host keyboard keys to the hexadecimal CHIP-8 keypad.
package keymap

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Default maps the COSMAC VIP keypad onto the left side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  q w e r
//	7 8 9 E      a s d f
//	A 0 B F      z x c v
//
// The string lists the host key for the keypad keys 0 to F.
const Default = "x123qweasdzc4rfv"

// ErrInvalidLayout is returned for layouts that do not bind every keypad key
// to a distinct host key.
var ErrInvalidLayout = errors.New("invalid key layout")

// Map translates between host keys and keypad keys.
type Map struct {
	keys  [chip8.KeyCount]rune
	runes map[rune]uint8
}

// New returns a map for the layout, which lists the host key for the keypad
// keys 0 to F. Host keys are case insensitive.
func New(layout string) (*Map, error) {
	if n := utf8.RuneCountInString(layout); n != chip8.KeyCount {
		return nil, fmt.Errorf("layout has %d keys instead of %d: %w", n, chip8.KeyCount, ErrInvalidLayout)
	}

	m := &Map{
		runes: make(map[rune]uint8, chip8.KeyCount),
	}
	var key uint8
	for _, r := range layout {
		r = unicode.ToLower(r)
		if existing, ok := m.runes[r]; ok {
			return nil, fmt.Errorf("host key '%c' bound to keypad keys %X and %X: %w", r, existing, key, ErrInvalidLayout)
		}
		m.keys[key] = r
		m.runes[r] = key
		key++
	}
	return m, nil
}

// MustDefault returns the map of the default layout.
func MustDefault() *Map {
	m, err := New(Default)
	if err != nil {
		panic(err)
	}
	return m
}

// Key returns the keypad key bound to the host key.
func (m *Map) Key(r rune) (uint8, bool) {
	key, ok := m.runes[unicode.ToLower(r)]
	return key, ok
}

// Rune returns the host key bound to the keypad key.
func (m *Map) Rune(key uint8) rune {
	if key >= chip8.KeyCount {
		return 0
	}
	return m.keys[key]
}
