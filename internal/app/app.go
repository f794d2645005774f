// Package app provides the main application helper for the emulator.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/driver"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Run loads the ROM file of the options and executes it with the selected
// frontend until the context is cancelled or the frontend is closed. The
// headless frontend prints the final display content to out.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, out io.Writer) error {
	system, err := detector.New(logger).Detect(opts.System, opts.Input)
	if err != nil {
		return fmt.Errorf("detecting system: %w", err)
	}

	image, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	keys, err := keymap.New(opts.Keys)
	if err != nil {
		return fmt.Errorf("creating key map: %w", err)
	}
	if err := frontend.ValidateLayout(opts.Frontend, keys); err != nil {
		return fmt.Errorf("creating key map: %w", err)
	}

	machine := newMachine(opts)
	if err := machine.Load(image); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	PrintInfo(logger, opts, len(image), system)

	if opts.Trace && !opts.Debug {
		logger.Warn("Instruction tracing is only visible with debug logging enabled")
	}

	beeper, closeBeeper := createBeeper(logger, opts)
	defer closeBeeper()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	config := driver.Config{
		Hz:    opts.Hz,
		Trace: opts.Trace,
	}

	switch opts.Frontend {
	case frontend.NoneName:
		headless := frontend.NewHeadless()
		runner := driver.New(machine, logger, headless, beeper, config)
		return runHeadless(ctx, logger, runner, machine, headless, opts.Cycles, out)

	case frontend.TerminalName:
		terminal := frontend.NewTerminal(logger, os.Stdin, os.Stdout, keys)
		runner := driver.New(machine, logger, terminal, beeper, config)
		return runInteractive(ctx, cancel, runner, terminal)

	default:
		window := frontend.NewWindow(opts.Scale, keys)
		runner := driver.New(machine, logger, window, beeper, config)
		return runInteractive(ctx, cancel, runner, window)
	}
}

// PrintInfo prints the information about the input file.
func PrintInfo(logger *log.Logger, opts options.Program, size int, system arch.System) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Stringer("system", system),
		log.Int("size", size),
		log.String("frontend", opts.Frontend),
		log.Int("hz", opts.Hz),
	)
}

type interactiveFrontend interface {
	Run(ctx context.Context, controller frontend.Controller, cancel context.CancelFunc) error
}

// runInteractive runs the frontend on the calling goroutine, which has to be
// the main goroutine for the window frontend, and the runner in the background.
func runInteractive(ctx context.Context, cancel context.CancelFunc, runner *driver.Runner, front interactiveFrontend) error {
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx)
	}()

	err := front.Run(ctx, runner, cancel)
	cancel()
	if runErr := <-done; runErr != nil && err == nil {
		err = runErr
	}
	if err != nil {
		return fmt.Errorf("running frontend: %w", err)
	}
	return nil
}

// runHeadless executes the given number of cycles without pacing, or runs in
// real time until the context is cancelled if cycles is 0.
func runHeadless(ctx context.Context, logger *log.Logger, runner *driver.Runner, machine *chip8.Machine,
	headless *frontend.Headless, cycles int, out io.Writer) error {

	if cycles > 0 {
		runner.RunCycles(cycles)
	} else if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("running emulation: %w", err)
	}

	logger.Debug("Emulation finished",
		log.String("cycles", strconv.FormatUint(runner.Cycles(), 10)),
		log.Int("frames", headless.Frames()),
		log.Int("lit_pixels", machine.Display().Lit()))

	if _, err := io.WriteString(out, headless.Frame()); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	return nil
}

func newMachine(opts options.Program) *chip8.Machine {
	if opts.Seed != 0 {
		return chip8.New(chip8.WithSeed(opts.Seed))
	}
	return chip8.New()
}

// createBeeper returns the audio output, falling back to logging the beeps
// if the sound is muted or no audio device is available.
func createBeeper(logger *log.Logger, opts options.Program) (driver.Beeper, func()) {
	if opts.Mute || opts.Frontend == frontend.NoneName {
		return audio.NewLogBeeper(logger), func() {}
	}

	beeper, err := audio.NewOtoBeeper()
	if err != nil {
		logger.Warn("Audio output not available, beeps are logged only", log.Err(err))
		return audio.NewLogBeeper(logger), func() {}
	}

	return beeper, func() {
		if err := beeper.Close(); err != nil {
			logger.Error("Closing audio output failed", log.Err(err))
		}
	}
}
