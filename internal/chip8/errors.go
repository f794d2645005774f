package chip8

import "errors"

// Conditions reported by Load and Cycle. A rejected instruction leaves the
// machine state unchanged.
var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrInvalidKey     = errors.New("invalid key index")
	ErrInvalidGlyph   = errors.New("invalid glyph digit")
	ErrImageTooLarge  = errors.New("program image too large")
)
