//go:build !linux

package gpio

import (
	"errors"

	"github.com/sweeney/led-arbiter/internal/logic"
)

// RealReader is not available on non-Linux platforms.
type RealReader struct{}

// NewRealReader returns an error on non-Linux platforms.
func NewRealReader(pinManual, pinLimit int) (*RealReader, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (r *RealReader) Read() (bool, bool, error) {
	return false, false, errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealReader) Close() error {
	return nil
}

// RealChannels is not available on non-Linux platforms.
type RealChannels struct{}

// NewRealChannels returns an error on non-Linux platforms.
func NewRealChannels(pins ChannelPins, threshold uint8) (*RealChannels, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Set is not implemented on non-Linux platforms.
func (c *RealChannels) Set(color logic.Color) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (c *RealChannels) Close() error {
	return nil
}
