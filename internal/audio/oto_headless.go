//go:build headless

package audio

// OtoBeeper is not available in headless builds.
type OtoBeeper struct{}

// NewOtoBeeper returns ErrUnavailable in headless builds.
func NewOtoBeeper() (*OtoBeeper, error) {
	return nil, ErrUnavailable
}

// Beep does nothing.
func (b *OtoBeeper) Beep() {}

// Close does nothing.
func (b *OtoBeeper) Close() error {
	return nil
}
