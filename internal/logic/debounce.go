package logic

import "time"

// SwitchInput is one raw sample of the two local switches.
type SwitchInput struct {
	Manual      bool // manual override asserted
	LimitClosed bool
	Time        time.Time
}

// switchState tracks debounce state for a single switch.
type switchState struct {
	// Current stable (debounced) value
	stable bool
	// Pending value during debounce
	pending bool
	// Time when pending value was first observed
	pendingSince time.Time
	hasPending   bool
	baselined    bool
}

// Debouncer filters contact bounce on the manual and limit switches.
// The first sample is taken as the baseline; afterwards a change must hold
// for the debounce duration before it is reported. A zero duration passes
// samples straight through.
type Debouncer struct {
	duration time.Duration
	manual   switchState
	limit    switchState
}

// NewDebouncer creates a Debouncer with the given hold duration.
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{duration: duration}
}

// Process takes a raw sample and returns the debounced switch states.
func (d *Debouncer) Process(in SwitchInput) (manual, limitClosed bool) {
	return d.processSwitch(&d.manual, in.Manual, in.Time),
		d.processSwitch(&d.limit, in.LimitClosed, in.Time)
}

func (d *Debouncer) processSwitch(s *switchState, v bool, now time.Time) bool {
	if !s.baselined || d.duration <= 0 {
		s.stable = v
		s.baselined = true
		s.hasPending = false
		return s.stable
	}

	if v == s.stable {
		// Bounce back to stable, drop pending
		s.hasPending = false
		return s.stable
	}

	if !s.hasPending || s.pending != v {
		s.pending = v
		s.pendingSince = now
		s.hasPending = true
		return s.stable
	}

	if now.Sub(s.pendingSince) >= d.duration {
		s.stable = v
		s.hasPending = false
	}
	return s.stable
}
