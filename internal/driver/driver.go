// Package driver paces a CHIP-8 machine against real time. It runs the
// instruction cycles that are due, decrements the timers at 60Hz, presents
// changed frames and forwards keypad events to the machine.
package driver

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrogolib/log"
)

const (
	// DefaultHz is the default number of instruction cycles per second.
	DefaultHz = 500
	// TimerHz is the rate of the delay and sound timers and of frame presentation.
	TimerHz = 60

	keyQueueSize = 64
	pollInterval = time.Millisecond
)

// Presenter shows a frame of the display.
type Presenter interface {
	Present(display *chip8.Display)
}

// Beeper signals that the sound timer expired.
type Beeper interface {
	Beep()
}

// Config of the runner.
type Config struct {
	Hz    int  // instruction cycles per second
	Trace bool // log every executed instruction
}

// KeyEvent is a keypad state change.
type KeyEvent struct {
	Key  uint8
	Down bool
}

// Runner owns a machine and executes it. All machine access happens on the
// goroutine that calls Step, Run or RunCycles. KeyEvent, Reset, SetPaused,
// Paused and Cycles are safe to call from other goroutines.
type Runner struct {
	machine   *chip8.Machine
	logger    *log.Logger
	config    Config
	presenter Presenter
	beeper    Beeper
	keys      chan KeyEvent

	cycleInterval time.Duration
	frameInterval time.Duration
	lastCycle     time.Time
	lastFrame     time.Time
	started       bool

	paused atomic.Bool
	reset  atomic.Bool
	cycles atomic.Uint64
}

// New returns a runner for the machine.
func New(machine *chip8.Machine, logger *log.Logger, presenter Presenter, beeper Beeper, config Config) *Runner {
	if config.Hz <= 0 {
		config.Hz = DefaultHz
	}

	return &Runner{
		machine:       machine,
		logger:        logger,
		config:        config,
		presenter:     presenter,
		beeper:        beeper,
		keys:          make(chan KeyEvent, keyQueueSize),
		cycleInterval: time.Second / time.Duration(config.Hz),
		frameInterval: time.Second / TimerHz,
	}
}

// KeyEvent queues a keypad state change. It is applied before the next
// batch of cycles.
func (r *Runner) KeyEvent(key uint8, down bool) {
	select {
	case r.keys <- KeyEvent{Key: key, Down: down}:
	default:
		r.logger.Warn("Key event queue full, dropping event",
			log.Uint8("key", key), log.String("down", strconv.FormatBool(down)))
	}
}

// Reset requests a restart of the loaded program before the next batch of
// cycles.
func (r *Runner) Reset() {
	r.reset.Store(true)
}

// SetPaused pauses or resumes the execution. Timers do not run while paused.
func (r *Runner) SetPaused(paused bool) {
	r.paused.Store(paused)
}

// Paused returns whether the execution is paused.
func (r *Runner) Paused() bool {
	return r.paused.Load()
}

// Cycles returns the number of executed instruction cycles.
func (r *Runner) Cycles() uint64 {
	return r.cycles.Load()
}

// Run executes the machine in real time until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	r.logger.Debug("Starting execution", log.Int("hz", r.config.Hz))

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("Execution stopped", log.String("cycles", strconv.FormatUint(r.Cycles(), 10)))
			return nil
		case now := <-ticker.C:
			r.Step(now)
		}
	}
}

// Step advances the execution to the given point in time. Due cycles are
// executed until a cycle sets the draw flag, at most one frame is processed.
func (r *Runner) Step(now time.Time) {
	if !r.started {
		r.lastCycle = now
		r.lastFrame = now
		r.started = true
	}

	r.applyInput()

	if r.paused.Load() {
		r.lastCycle = now
		r.lastFrame = now
		return
	}

	for now.Sub(r.lastCycle) >= r.cycleInterval {
		r.cycle()
		r.lastCycle = r.lastCycle.Add(r.cycleInterval)
		if r.machine.DrawFlag() {
			break
		}
	}

	if now.Sub(r.lastFrame) >= r.frameInterval {
		r.lastFrame = r.lastFrame.Add(r.frameInterval)
		r.frame()
	}
}

// RunCycles executes n cycles without pacing, processing a frame after every
// Hz/60 cycles.
func (r *Runner) RunCycles(n int) {
	cyclesPerFrame := max(1, r.config.Hz/TimerHz)

	for i := range n {
		r.applyInput()
		r.cycle()
		if (i+1)%cyclesPerFrame == 0 {
			r.frame()
		}
	}
	if r.machine.DrawFlag() {
		r.present()
	}
}

// applyInput processes a pending reset request and the queued key events.
func (r *Runner) applyInput() {
	if r.reset.CompareAndSwap(true, false) {
		r.logger.Debug("Restarting program")
		r.machine.Reset()
		r.present()
	}

	for {
		select {
		case event := <-r.keys:
			if err := r.machine.SetKey(event.Key, event.Down); err != nil {
				r.logger.Warn("Ignoring key event", log.Uint8("key", event.Key), log.Err(err))
			}
		default:
			return
		}
	}
}

func (r *Runner) cycle() {
	address, word := r.machine.NextOpcode()
	if r.config.Trace {
		r.logger.Debug("Executing instruction",
			log.Hex("address", address),
			log.Hex("opcode", word),
			log.String("code", disasm.Disassemble(word)))
	}

	if err := r.machine.Cycle(); err != nil {
		r.logger.Warn("Instruction rejected",
			log.Hex("address", address),
			log.Hex("opcode", word),
			log.Err(err))
	}
	r.cycles.Add(1)
}

// frame presents the display if it changed and updates the timers.
func (r *Runner) frame() {
	if r.machine.DrawFlag() {
		r.present()
	}

	if dt := r.machine.DelayTimer(); dt > 0 {
		r.machine.SetDelayTimer(dt - 1)
	}

	if st := r.machine.SoundTimer(); st > 0 {
		if st == 1 && r.beeper != nil {
			r.beeper.Beep()
		}
		r.machine.SetSoundTimer(st - 1)
	}
}

func (r *Runner) present() {
	if r.presenter != nil {
		r.presenter.Present(r.machine.Display())
	}
	r.machine.ClearDrawFlag()
}
