//go:build !headless

package frontend

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/keymap"
	"golang.org/x/image/font/basicfont"
)

const (
	windowTitle     = "retrochip8"
	statusBarHeight = 16
)

// hostKeys binds the keyboard keys that can be used in a key layout.
var hostKeys = map[ebiten.Key]rune{
	ebiten.KeyDigit0: '0', ebiten.KeyDigit1: '1', ebiten.KeyDigit2: '2', ebiten.KeyDigit3: '3',
	ebiten.KeyDigit4: '4', ebiten.KeyDigit5: '5', ebiten.KeyDigit6: '6', ebiten.KeyDigit7: '7',
	ebiten.KeyDigit8: '8', ebiten.KeyDigit9: '9',
	ebiten.KeyA: 'a', ebiten.KeyB: 'b', ebiten.KeyC: 'c', ebiten.KeyD: 'd', ebiten.KeyE: 'e',
	ebiten.KeyF: 'f', ebiten.KeyG: 'g', ebiten.KeyH: 'h', ebiten.KeyI: 'i', ebiten.KeyJ: 'j',
	ebiten.KeyK: 'k', ebiten.KeyL: 'l', ebiten.KeyM: 'm', ebiten.KeyN: 'n', ebiten.KeyO: 'o',
	ebiten.KeyP: 'p', ebiten.KeyQ: 'q', ebiten.KeyR: 'r', ebiten.KeyS: 's', ebiten.KeyT: 't',
	ebiten.KeyU: 'u', ebiten.KeyV: 'v', ebiten.KeyW: 'w', ebiten.KeyX: 'x', ebiten.KeyY: 'y',
	ebiten.KeyZ: 'z',
}

// Window presents the display in a desktop window scaled by an integer
// factor. Escape or closing the window ends the emulation, Space pauses it,
// F5 restarts the program and F12 toggles the status bar with the measured
// cycle rate.
type Window struct {
	scale int
	keys  *keymap.Map

	ctx        context.Context
	controller Controller
	cancel     context.CancelFunc

	mu          sync.Mutex
	frameBuffer []byte
	screen      *ebiten.Image
	showStatus  bool

	rateTime   time.Time
	rateCycles uint64
	rate       uint64
}

// NewWindow returns a window frontend.
func NewWindow(scale int, keys *keymap.Map) *Window {
	w := &Window{
		scale:       max(1, scale),
		keys:        keys,
		frameBuffer: make([]byte, chip8.ScreenWidth*chip8.ScreenHeight*4),
	}
	var d chip8.Display
	d.RGBA(w.frameBuffer)
	return w
}

// Present copies the display into the frame buffer of the window.
func (w *Window) Present(display *chip8.Display) {
	w.mu.Lock()
	display.RGBA(w.frameBuffer)
	w.mu.Unlock()
}

// Run opens the window and processes its events until the context is
// cancelled or the window is closed, which calls cancel. It has to be called
// from the main goroutine.
func (w *Window) Run(ctx context.Context, controller Controller, cancel context.CancelFunc) error {
	w.ctx = ctx
	w.controller = controller
	w.cancel = cancel

	ebiten.SetWindowSize(chip8.ScreenWidth*w.scale, chip8.ScreenHeight*w.scale)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update processes the keyboard input.
func (w *Window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.cancel()
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.controller.SetPaused(!w.controller.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		w.controller.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		w.mu.Lock()
		w.showStatus = !w.showStatus
		w.mu.Unlock()
	}

	for hostKey, r := range hostKeys {
		key, ok := w.keys.Key(r)
		if !ok {
			continue
		}
		if inpututil.IsKeyJustPressed(hostKey) {
			w.controller.KeyEvent(key, true)
		}
		if inpututil.IsKeyJustReleased(hostKey) {
			w.controller.KeyEvent(key, false)
		}
	}

	w.updateRate(time.Now())
	return nil
}

// updateRate measures the executed cycles per second.
func (w *Window) updateRate(now time.Time) {
	if now.Sub(w.rateTime) < time.Second {
		return
	}
	cycles := w.controller.Cycles()
	if !w.rateTime.IsZero() {
		w.rate = uint64(float64(cycles-w.rateCycles) / now.Sub(w.rateTime).Seconds())
	}
	w.rateTime = now
	w.rateCycles = cycles
}

// Draw renders the frame buffer and the status bar.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.screen == nil {
		w.screen = ebiten.NewImage(chip8.ScreenWidth, chip8.ScreenHeight)
	}

	w.mu.Lock()
	w.screen.WritePixels(w.frameBuffer)
	showStatus := w.showStatus
	w.mu.Unlock()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.screen, op)

	if showStatus || w.controller.Paused() {
		w.drawStatusBar(screen)
	}
}

func (w *Window) drawStatusBar(screen *ebiten.Image) {
	width := chip8.ScreenWidth * w.scale
	y := chip8.ScreenHeight*w.scale - statusBarHeight
	ebitenutil.DrawRect(screen, 0, float64(y), float64(width), statusBarHeight, color.RGBA{0, 0, 0, 180})

	status := fmt.Sprintf("%d Hz", w.rate)
	if w.controller.Paused() {
		status = "PAUSED"
	}
	text.Draw(screen, status, basicfont.Face7x13, 4, y+12, color.RGBA{190, 190, 190, 255})
}

// Layout returns the scaled display size.
func (w *Window) Layout(_, _ int) (int, int) {
	return chip8.ScreenWidth * w.scale, chip8.ScreenHeight * w.scale
}
