package frontend

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const (
	// terminals only report key presses, a key is released after it was not
	// repeated for this duration
	keyHold = 150 * time.Millisecond

	releaseInterval = 10 * time.Millisecond

	keyEscape    = 0x1b
	keyCtrlC     = 0x03
	keySpace     = ' '
	keyBackspace = 0x7f

	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Terminal renders the display using half block characters, two pixel rows
// per text row, and reads the keypad input from a raw mode terminal.
type Terminal struct {
	in     *os.File
	out    io.Writer
	keys   *keymap.Map
	logger *log.Logger

	controller Controller
	cancel     context.CancelFunc

	mu   sync.Mutex
	held map[uint8]time.Time // release deadline of pressed keys
}

// NewTerminal returns a terminal frontend reading from in and writing to out.
func NewTerminal(logger *log.Logger, in *os.File, out io.Writer, keys *keymap.Map) *Terminal {
	return &Terminal{
		in:     in,
		out:    out,
		keys:   keys,
		logger: logger,
		held:   make(map[uint8]time.Time),
	}
}

// Present draws the display at the top of the terminal.
func (t *Terminal) Present(display *chip8.Display) {
	var b strings.Builder
	b.WriteString(cursorHome)
	b.WriteString(renderHalfBlocks(display))

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := io.WriteString(t.out, b.String()); err != nil {
		t.logger.Error("Writing frame failed", log.Err(err))
	}
}

// Run switches the terminal into raw mode and forwards key presses to the
// controller until the context is cancelled or Escape is pressed, which
// calls cancel. Space pauses the emulation and Backspace restarts the program.
func (t *Terminal) Run(ctx context.Context, controller Controller, cancel context.CancelFunc) error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	if width, height, err := term.GetSize(fd); err == nil {
		if width < chip8.ScreenWidth || height < chip8.ScreenHeight/2 {
			t.logger.Warn("Terminal is too small for the display",
				log.Int("width", width), log.Int("height", height))
		}
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting terminal raw mode: %w", err)
	}
	defer func() {
		_, _ = io.WriteString(t.out, showCursor)
		_ = term.Restore(fd, oldState)
	}()

	t.mu.Lock()
	t.controller = controller
	t.cancel = cancel
	_, _ = io.WriteString(t.out, clearScreen+hideCursor)
	t.mu.Unlock()

	go t.readInput()

	ticker := time.NewTicker(releaseInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			t.releaseExpired(now)
		}
	}
}

// readInput forwards terminal input until reading fails. The blocking read
// can not be interrupted, the goroutine ends with the process.
func (t *Terminal) readInput() {
	buf := make([]byte, 16)
	for {
		n, err := t.in.Read(buf)
		if n > 0 {
			t.handleInput(buf[:n], time.Now())
		}
		if err != nil {
			return
		}
	}
}

// handleInput processes one chunk of terminal input.
func (t *Terminal) handleInput(data []byte, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// escape sequences of special keys start with the escape character
	if data[0] == keyEscape && len(data) > 1 {
		return
	}

	for _, b := range data {
		switch b {
		case keyEscape, keyCtrlC:
			if t.cancel != nil {
				t.cancel()
			}
			return

		case keySpace:
			t.controller.SetPaused(!t.controller.Paused())

		case keyBackspace:
			t.controller.Reset()

		default:
			key, ok := t.keys.Key(rune(b))
			if !ok {
				continue
			}
			if _, held := t.held[key]; !held {
				t.controller.KeyEvent(key, true)
			}
			t.held[key] = now.Add(keyHold)
		}
	}
}

// releaseExpired releases all keys that were not repeated in time.
func (t *Terminal) releaseExpired(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key, deadline := range t.held {
		if now.Before(deadline) {
			continue
		}
		delete(t.held, key)
		t.controller.KeyEvent(key, false)
	}
}

// renderHalfBlocks returns the display as text, each character covering two
// vertically adjacent pixels.
func renderHalfBlocks(display *chip8.Display) string {
	var b strings.Builder
	for y := 0; y < chip8.ScreenHeight; y += 2 {
		for x := range chip8.ScreenWidth {
			top := display.Pixel(x, y) == chip8.PixelOn
			bottom := display.Pixel(x, y+1) == chip8.PixelOn

			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteString("\r\n")
	}
	return b.String()
}
