// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/driver"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses the command line flags of the emulator.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts.Flags)
	readEmulatorFlags(flags, &opts.EmulatorFlags)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags, usage: "retrochip8 [options] <ROM file>"}
	}

	if err := validateArgs(args, "ROM file"); err != nil {
		return opts, err
	}
	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// ParseDisasmFlags parses the command line flags of the disassembler.
func ParseDisasmFlags() (options.Disassembler, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Disassembler
	readOptionFlags(flags, &opts.Flags)
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .asm file naming, for example *.ch8")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in comments")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the program")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, &UsageError{flags: flags, usage: "chip8disasm [options] <file to disassemble>"}
	}

	if err := validateArgs(args, "file to disassemble"); err != nil {
		return opts, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	usage string
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: %s\n\n", e.usage)
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string, positional string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after %s, please pass the %s as last argument", arg, positional, positional),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if err := frontend.Validate(opts.Frontend); err != nil {
		return fmt.Errorf("validating frontend: %w", err)
	}

	if opts.Hz <= 0 {
		return fmt.Errorf("invalid cycle rate %d, it has to be positive", opts.Hz)
	}
	if opts.Scale < 1 {
		return fmt.Errorf("invalid scale %d, it has to be at least 1", opts.Scale)
	}
	if opts.Cycles < 0 {
		return fmt.Errorf("invalid cycle count %d", opts.Cycles)
	}
	if opts.Cycles > 0 && opts.Frontend != frontend.NoneName {
		return fmt.Errorf("a cycle count is only supported by the %s frontend", frontend.NoneName)
	}

	keys, err := keymap.New(opts.Keys)
	if err != nil {
		return fmt.Errorf("validating key layout: %w", err)
	}
	if err := frontend.ValidateLayout(opts.Frontend, keys); err != nil {
		return fmt.Errorf("validating key layout: %w", err)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Flags) {
	flags.StringVar(&opts.System, "s", "", "system of the ROM (chip8) - if not auto-detected from file extension")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readEmulatorFlags(flags *flag.FlagSet, opts *options.EmulatorFlags) {
	flags.StringVar(&opts.Frontend, "frontend", options.DefaultFrontend, "frontend to use (window/terminal/none)")
	flags.StringVar(&opts.Keys, "keys", keymap.Default, "host keys that are mapped to the keypad keys 0 to F")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "scale factor of the window")
	flags.IntVar(&opts.Hz, "hz", driver.DefaultHz, "instruction cycles per second")
	flags.IntVar(&opts.Cycles, "cycles", 0, "run the given number of cycles without pacing and print the display, requires frontend none")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 picks a random seed")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the sound output")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
}
