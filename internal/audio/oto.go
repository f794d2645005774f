//go:build !headless

package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/retroenv/retrochip8/internal/tone"
)

// OtoBeeper plays a square wave tone through the system audio output.
type OtoBeeper struct {
	ctx    *oto.Context
	player *oto.Player
	stream *stream
	mu     sync.Mutex
}

// NewOtoBeeper initializes the audio output and starts the tone player,
// which outputs silence until a beep is requested.
func NewOtoBeeper() (*OtoBeeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   tone.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	b := &OtoBeeper{
		ctx:    ctx,
		stream: newStream(),
	}
	b.player = ctx.NewPlayer(b.stream)
	b.player.Play()
	return b, nil
}

// Beep plays the tone for BeepDuration.
func (b *OtoBeeper) Beep() {
	b.stream.beep()
}

// Close stops the tone player.
func (b *OtoBeeper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
