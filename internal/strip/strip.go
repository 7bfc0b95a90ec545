// Package strip pushes frames to the addressable LED strip.
package strip

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/goburrow/serial"
	"github.com/sweeney/led-arbiter/internal/logic"
)

// frameStart opens every frame on the driver's serial protocol.
const frameStart = 0x84

// DefaultLength is the pixel count of the standard strip.
const DefaultLength = 60

// SerialStrip writes frames to a strip driver over a serial port.
// Each pixel is sent as G, R, B with 7-bit depth and the high bit set.
type SerialStrip struct {
	mu   sync.Mutex
	port io.WriteCloser
	buf  []byte
}

// Open opens the driver's serial port.
func Open(device string, baud int) (*SerialStrip, error) {
	if device == "" {
		return nil, errors.New("strip: device required")
	}
	port, err := serial.Open(&serial.Config{
		Address:  device,
		BaudRate: baud,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
	})
	if err != nil {
		return nil, fmt.Errorf("open strip %s: %w", device, err)
	}
	return New(port), nil
}

// New wraps an open writer.
func New(port io.WriteCloser) *SerialStrip {
	return &SerialStrip{port: port}
}

// Push writes one frame.
func (s *SerialStrip) Push(frame []logic.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = encodeFrame(s.buf[:0], frame)
	if _, err := s.port.Write(s.buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close closes the port.
func (s *SerialStrip) Close() error {
	return s.port.Close()
}

func encodeFrame(dst []byte, frame []logic.Color) []byte {
	dst = append(dst, frameStart)
	for _, c := range frame {
		dst = append(dst, map7(c.G)|0x80, map7(c.R)|0x80, map7(c.B)|0x80)
	}
	return dst
}

func map7(v uint8) uint8 {
	return v >> 1
}

// NopStrip discards frames. Used when no strip is attached.
type NopStrip struct{}

// Push does nothing.
func (NopStrip) Push([]logic.Color) error { return nil }

// Close does nothing.
func (NopStrip) Close() error { return nil }

// FakeStrip records pushed frames for test assertions.
type FakeStrip struct {
	Frames    [][]logic.Color
	PushError error
	Closed    bool
}

// NewFakeStrip creates an empty FakeStrip.
func NewFakeStrip() *FakeStrip {
	return &FakeStrip{}
}

// Push records a copy of frame.
func (f *FakeStrip) Push(frame []logic.Color) error {
	if f.PushError != nil {
		return f.PushError
	}
	cp := make([]logic.Color, len(frame))
	copy(cp, frame)
	f.Frames = append(f.Frames, cp)
	return nil
}

// Last returns the most recent frame, or nil.
func (f *FakeStrip) Last() []logic.Color {
	if len(f.Frames) == 0 {
		return nil
	}
	return f.Frames[len(f.Frames)-1]
}

// Close marks the strip as closed.
func (f *FakeStrip) Close() error {
	f.Closed = true
	return nil
}
