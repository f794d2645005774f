package fileprocessor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func writeROM(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	input := writeROM(t, dir, "loop.ch8", []byte{
		0x00, 0xE0, // cls
		0x12, 0x02, // jp self
	})
	output := filepath.Join(dir, "loop.asm")

	opts := options.Disassembler{
		Parameters:  options.Parameters{Input: input, Output: output},
		OutputFlags: options.OutputFlags{NoHexComments: true, NoOffsets: true},
	}
	assert.NoError(t, ProcessFile(log.NewTestLogger(t), opts))

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "; CHIP-8 ROM Disassembly\n"))
	assert.Contains(t, text, "Start:\n    cls\n")
	assert.Contains(t, text, "_label_202:\n    jp _label_202\n")
}

func TestProcessFile_Comments(t *testing.T) {
	dir := t.TempDir()
	input := writeROM(t, dir, "ret.ch8", []byte{0x00, 0xEE})
	output := filepath.Join(dir, "ret.asm")

	opts := options.Disassembler{
		Parameters: options.Parameters{Input: input, Output: output},
	}
	assert.NoError(t, ProcessFile(log.NewTestLogger(t), opts))

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "; $200  00 EE")
}

func TestProcessFile_Errors(t *testing.T) {
	dir := t.TempDir()
	logger := log.NewTestLogger(t)

	t.Run("image too large", func(t *testing.T) {
		input := writeROM(t, dir, "large.ch8", make([]byte, chip8.MaxImageSize+1))
		opts := options.Disassembler{
			Parameters: options.Parameters{Input: input, Output: filepath.Join(dir, "large.asm")},
		}
		err := ProcessFile(logger, opts)
		assert.True(t, errors.Is(err, chip8.ErrImageTooLarge))
	})

	t.Run("unsupported system", func(t *testing.T) {
		input := writeROM(t, dir, "game.nes", []byte{0x00, 0xE0})
		opts := options.Disassembler{
			Parameters: options.Parameters{Input: input, Output: filepath.Join(dir, "game.asm")},
		}
		err := ProcessFile(logger, opts)
		assert.True(t, errors.Is(err, detector.ErrUnsupportedSystem))
	})
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	writeROM(t, dir, "a.ch8", nil)
	writeROM(t, dir, "b.ch8", nil)
	writeROM(t, dir, "c.txt", nil)

	opts := options.Disassembler{Parameters: options.Parameters{Batch: filepath.Join(dir, "*.ch8")}}
	files, err := GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	opts = options.Disassembler{Parameters: options.Parameters{Input: "pong.ch8"}}
	files, err = GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "pong.ch8", files[0])
}

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "roms/pong.asm", GenerateOutputFilename("roms/pong.ch8"))
	assert.Equal(t, "game.asm", GenerateOutputFilename("game"))
}
