// Package detector handles system architecture detection.
package detector

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedSystem is returned for ROMs of systems other than CHIP-8.
var ErrUnsupportedSystem = errors.New("unsupported system")

// Detector handles system architecture detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system of the ROM file. An explicitly specified
// system takes precedence over the file extension. Files with an unknown
// extension are assumed to be CHIP-8 programs.
func (d *Detector) Detect(system, input string) (arch.System, error) {
	sys, _ := arch.SystemFromString(system)
	if system != "" && sys == "" {
		return "", fmt.Errorf("parsing system '%s': %w", system, ErrUnsupportedSystem)
	}

	if sys == "" {
		var known bool
		sys, known = d.detectFromFile(input)
		if !known {
			d.logger.Warn("Unknown file extension, assuming CHIP-8 program",
				log.String("file", input))
		}
		d.logger.Debug("Auto-detected system",
			log.Stringer("system", sys),
			log.String("file", input))
	}

	if sys != arch.CHIP8System {
		return sys, fmt.Errorf("system '%s': %w", sys, ErrUnsupportedSystem)
	}
	return sys, nil
}

// detectFromFile determines the system type based on file extension.
func (d *Detector) detectFromFile(filename string) (arch.System, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ch8", ".c8", ".rom":
		return arch.CHIP8System, true
	case ".nes":
		return arch.NES, true
	default:
		return arch.CHIP8System, false
	}
}
