// Package analog samples the brightness potentiometer through an ADC.
package analog

import (
	"fmt"
	"time"
)

// Sampler reads one raw ADC value.
type Sampler interface {
	Sample() (uint16, error)
	Close() error
}

// DefaultSpacing separates consecutive samples in a window so that
// electrical noise is decorrelated.
const DefaultSpacing = 200 * time.Microsecond

// Window draws n consecutive samples spaced by spacing. sleep is injected so
// tests run without real delays; nil means no delay.
func Window(s Sampler, n int, spacing time.Duration, sleep func(time.Duration)) ([]uint16, error) {
	out := make([]uint16, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 && spacing > 0 && sleep != nil {
			sleep(spacing)
		}
		v, err := s.Sample()
		if err != nil {
			return nil, fmt.Errorf("sample %d/%d: %w", i+1, n, err)
		}
		out = append(out, v)
	}
	return out, nil
}
