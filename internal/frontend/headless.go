package frontend

import (
	"sync"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Headless keeps the last presented frame as text. It is used when running
// without a display, the frame can be printed after the run.
type Headless struct {
	mu     sync.Mutex
	frame  string
	frames int
}

// NewHeadless returns a headless presenter.
func NewHeadless() *Headless {
	var d chip8.Display
	return &Headless{
		frame: d.String(),
	}
}

// Present stores the display content.
func (h *Headless) Present(display *chip8.Display) {
	frame := display.String()

	h.mu.Lock()
	h.frame = frame
	h.frames++
	h.mu.Unlock()
}

// Frame returns the last presented frame.
func (h *Headless) Frame() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frame
}

// Frames returns the number of presented frames.
func (h *Headless) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}
