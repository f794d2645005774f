// Package audio implements the beep output of the emulator.
package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/tone"
	"github.com/retroenv/retrogolib/log"
)

// BeepDuration is the length of the tone played for every beep.
const BeepDuration = 100 * time.Millisecond

// ErrUnavailable is returned if the binary was built without audio support.
var ErrUnavailable = errors.New("audio output not available")

// LogBeeper reports beeps as log messages.
type LogBeeper struct {
	logger *log.Logger
}

// NewLogBeeper returns a beeper that logs every beep at debug level.
func NewLogBeeper(logger *log.Logger) *LogBeeper {
	return &LogBeeper{logger: logger}
}

// Beep logs the beep.
func (b *LogBeeper) Beep() {
	b.logger.Debug("Beep")
}

// stream is a concurrency safe tone source for an audio player.
type stream struct {
	mu     sync.Mutex
	square *tone.Square
}

func newStream() *stream {
	return &stream{
		square: tone.New(tone.SampleRate, tone.Frequency, tone.Amplitude),
	}
}

// beep starts playing the tone for BeepDuration.
func (s *stream) beep() {
	samples := int(BeepDuration * tone.SampleRate / time.Second)

	s.mu.Lock()
	s.square.Start(samples)
	s.mu.Unlock()
}

// Read fills p with the next samples of the tone.
func (s *stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.square.Read(p)
}
