// Package options contains the program options.
package options

// Frontend defaults.
const (
	DefaultFrontend = "window"
	DefaultScale    = 10
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Output string `flag:"o" usage:"output .asm file (default: stdout)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.ch8)"`
}

// Flags contains behavior options.
type Flags struct {
	System string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	Debug  bool   `flag:"debug" usage:"enable debug logging"`
	Quiet  bool   `flag:"q" usage:"quiet mode"`
}

// EmulatorFlags contains options of the emulation.
type EmulatorFlags struct {
	Frontend string `flag:"frontend" usage:"frontend: window, terminal, none" default:"window"`
	Keys     string `flag:"keys" usage:"16 host keys mapped to the keypad keys 0-F" default:"x123qweasdzc4rfv"`
	Scale    int    `flag:"scale" usage:"window scale factor" default:"10"`
	Hz       int    `flag:"hz" usage:"instruction cycles per second" default:"500"`
	Cycles   int    `flag:"cycles" usage:"number of cycles to run without pacing (frontend none)"`
	Seed     uint64 `flag:"seed" usage:"random number generator seed (default: random)"`
	Mute     bool   `flag:"mute" usage:"disable the sound output"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction (requires -debug)"`
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit memory addresses in comments"`
	ZeroBytes     bool `flag:"z" usage:"include trailing zero bytes"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	EmulatorFlags
}

// Disassembler options of the disassembler command.
type Disassembler struct {
	Parameters
	Flags
	OutputFlags
}
