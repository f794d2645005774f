// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw program image. CHIP-8 ROMs have no header, the whole
// file is placed at the program start address.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.Read(file)
}

// Read reads a raw program image from the reader and rejects images that do
// not fit into memory.
func (l *Loader) Read(reader io.Reader) ([]byte, error) {
	image, err := io.ReadAll(io.LimitReader(reader, chip8.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program image: %w", err)
	}
	if len(image) > chip8.MaxImageSize {
		return nil, fmt.Errorf("image exceeds %d bytes: %w", chip8.MaxImageSize, chip8.ErrImageTooLarge)
	}
	return image, nil
}
