package gpio

import (
	"errors"

	"github.com/sweeney/led-arbiter/internal/logic"
)

// FakeReader is a test double that returns scripted switch values.
type FakeReader struct {
	// Samples contains scripted (manual, limitClosed) values to return.
	// Each call to Read() consumes the next sample.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// Sample represents a single switch reading (already in logical form).
type Sample struct {
	Manual      bool // true = override asserted
	LimitClosed bool
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(samples []Sample) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeReader) Read() (bool, bool, error) {
	if f.ReadError != nil {
		return false, false, f.ReadError
	}

	if len(f.Samples) == 0 {
		return false, false, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample.Manual, sample.LimitClosed, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeChannels records every colour written to the discrete outputs.
type FakeChannels struct {
	Writes   []logic.Color
	SetError error
	Closed   bool
}

// NewFakeChannels creates an empty FakeChannels.
func NewFakeChannels() *FakeChannels {
	return &FakeChannels{}
}

// Set records c, or returns SetError if configured.
func (f *FakeChannels) Set(c logic.Color) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Writes = append(f.Writes, c)
	return nil
}

// Last returns the most recent write, or black if none.
func (f *FakeChannels) Last() logic.Color {
	if len(f.Writes) == 0 {
		return logic.Black
	}
	return f.Writes[len(f.Writes)-1]
}

// Close marks the channels as closed.
func (f *FakeChannels) Close() error {
	f.Closed = true
	return nil
}
