//go:build headless

package frontend

import (
	"context"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/keymap"
)

// Window is not available in headless builds.
type Window struct{}

// NewWindow returns a window that can not be run.
func NewWindow(_ int, _ *keymap.Map) *Window {
	return &Window{}
}

// Present does nothing.
func (w *Window) Present(_ *chip8.Display) {}

// Run returns ErrUnavailable.
func (w *Window) Run(_ context.Context, _ Controller, _ context.CancelFunc) error {
	return ErrUnavailable
}
