// Package tone generates the square wave that is played while a beep sounds.
package tone

import (
	"encoding/binary"
	"math"
)

// Default tone parameters.
const (
	SampleRate = 44100
	Frequency  = 440
	Amplitude  = 0.2
)

// Square is a mono square wave generator producing 32 bit float little endian
// samples. It implements io.Reader so it can be streamed to an audio player.
// A Square is not safe for concurrent use.
type Square struct {
	sampleRate int
	frequency  int
	amplitude  float32

	phase     int // sample position inside of the current period
	remaining int // samples left to play, the rest is silence
}

// New returns a square wave generator.
func New(sampleRate, frequency int, amplitude float32) *Square {
	return &Square{
		sampleRate: sampleRate,
		frequency:  frequency,
		amplitude:  amplitude,
	}
}

// Start plays the tone for the given number of samples. An active tone is
// extended instead of restarted.
func (s *Square) Start(samples int) {
	s.remaining = max(s.remaining, samples)
}

// Active returns whether the tone is currently audible.
func (s *Square) Active() bool {
	return s.remaining > 0
}

// Sample returns the next sample.
func (s *Square) Sample() float32 {
	if s.remaining == 0 {
		s.phase = 0
		return 0
	}
	s.remaining--

	period := max(2, s.sampleRate/s.frequency)
	value := s.amplitude
	if s.phase >= period/2 {
		value = -s.amplitude
	}
	s.phase = (s.phase + 1) % period
	return value
}

// Read fills p with samples, 4 bytes per sample. A trailing partial sample
// is filled with silence.
func (s *Square) Read(p []byte) (int, error) {
	n := len(p) / 4
	for i := range n {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s.Sample()))
	}
	clear(p[n*4:])
	return len(p), nil
}
