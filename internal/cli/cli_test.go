package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/driver"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = args
}

func TestParseFlags_Defaults(t *testing.T) {
	setArgs(t, "prog", "game.ch8")

	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", opts.Input)
	assert.Equal(t, options.DefaultFrontend, opts.Frontend)
	assert.Equal(t, options.DefaultScale, opts.Scale)
	assert.Equal(t, driver.DefaultHz, opts.Hz)
	assert.Equal(t, keymap.Default, opts.Keys)
	assert.Equal(t, uint64(0), opts.Seed)
	assert.False(t, opts.Mute)
}

func TestParseFlags_EmulatorOptions(t *testing.T) {
	setArgs(t, "prog", "-frontend", "None", "-hz", "700", "-cycles", "1000",
		"-seed", "42", "-mute", "-trace", "-debug", "-s", "chip8", "game.bin")

	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "none", opts.Frontend)
	assert.Equal(t, 700, opts.Hz)
	assert.Equal(t, 1000, opts.Cycles)
	assert.Equal(t, uint64(42), opts.Seed)
	assert.True(t, opts.Mute)
	assert.True(t, opts.Trace)
	assert.True(t, opts.Debug)
	assert.Equal(t, "chip8", opts.System)
	assert.Equal(t, "game.bin", opts.Input)
}

func TestParseFlags_PunctuationKeyInTerminal(t *testing.T) {
	setArgs(t, "prog", "-frontend", "terminal", "-keys", "x123qweasdzc4rf;", "game.ch8")

	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "x123qweasdzc4rf;", opts.Keys)
}

func TestParseFlags_MissingFile(t *testing.T) {
	setArgs(t, "prog", "-mute")

	_, err := ParseFlags()
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}

func TestParseFlags_ArgumentAfterFile(t *testing.T) {
	setArgs(t, "prog", "game.ch8", "-mute")

	_, err := ParseFlags()
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
	assert.ErrorContains(t, err, "-mute found after ROM file")
}

func TestParseFlags_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "unknown frontend",
			args: []string{"prog", "-frontend", "sdl", "game.ch8"},
			want: "validating frontend",
		},
		{
			name: "zero cycle rate",
			args: []string{"prog", "-hz", "0", "game.ch8"},
			want: "invalid cycle rate 0",
		},
		{
			name: "zero scale",
			args: []string{"prog", "-scale", "0", "game.ch8"},
			want: "invalid scale 0",
		},
		{
			name: "negative cycles",
			args: []string{"prog", "-frontend", "none", "-cycles", "-1", "game.ch8"},
			want: "invalid cycle count -1",
		},
		{
			name: "cycles with window",
			args: []string{"prog", "-cycles", "10", "game.ch8"},
			want: "only supported by the none frontend",
		},
		{
			name: "punctuation key in window",
			args: []string{"prog", "-keys", "x123qweasdzc4rf;", "game.ch8"},
			want: "host key not supported by frontend",
		},
		{
			name: "short key layout",
			args: []string{"prog", "-keys", "abc", "game.ch8"},
			want: "validating key layout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, err := ParseFlags()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseDisasmFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.OutputFlags
	}{
		{
			name: "default flags",
			args: []string{"prog", "test.ch8"},
			want: options.OutputFlags{},
		},
		{
			name: "nohexcomments flag",
			args: []string{"prog", "-nohexcomments", "test.ch8"},
			want: options.OutputFlags{NoHexComments: true},
		},
		{
			name: "nooffsets flag",
			args: []string{"prog", "-nooffsets", "test.ch8"},
			want: options.OutputFlags{NoOffsets: true},
		},
		{
			name: "all output flags",
			args: []string{"prog", "-nohexcomments", "-nooffsets", "-z", "test.ch8"},
			want: options.OutputFlags{NoHexComments: true, NoOffsets: true, ZeroBytes: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			got, err := ParseDisasmFlags()
			assert.NoError(t, err)
			assert.Equal(t, "test.ch8", got.Input)
			assert.Equal(t, tt.want, got.OutputFlags)
		})
	}
}

func TestParseDisasmFlags_Batch(t *testing.T) {
	setArgs(t, "prog", "-batch", "roms/*.ch8", "-o", "ignored.asm")

	got, err := ParseDisasmFlags()
	assert.NoError(t, err)
	assert.Equal(t, "roms/*.ch8", got.Batch)
	assert.Equal(t, "", got.Input)
}

func TestParseDisasmFlags_MissingFile(t *testing.T) {
	setArgs(t, "prog", "-z")

	_, err := ParseDisasmFlags()
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}
