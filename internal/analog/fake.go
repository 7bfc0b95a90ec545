package analog

import "errors"

// FakeSampler returns scripted readings.
type FakeSampler struct {
	// Values are returned in order; the last value repeats once exhausted.
	Values []uint16

	index int

	// SampleError, if set, will be returned by Sample.
	SampleError error

	Closed bool
}

// NewFakeSampler creates a FakeSampler with the given values.
func NewFakeSampler(values ...uint16) *FakeSampler {
	return &FakeSampler{Values: values}
}

// Sample returns the next scripted value.
func (f *FakeSampler) Sample() (uint16, error) {
	if f.SampleError != nil {
		return 0, f.SampleError
	}
	if len(f.Values) == 0 {
		return 0, errors.New("no values configured")
	}
	v := f.Values[f.index]
	if f.index < len(f.Values)-1 {
		f.index++
	}
	return v, nil
}

// Close marks the sampler as closed.
func (f *FakeSampler) Close() error {
	f.Closed = true
	return nil
}
