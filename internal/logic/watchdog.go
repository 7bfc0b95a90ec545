package logic

import "time"

// DefaultHeartbeatTimeout is the silence interval after which the host is
// considered lost.
const DefaultHeartbeatTimeout = 2000 * time.Millisecond

// Watchdog tracks host liveness from received heartbeats.
// It starts LOST: no host is presumed until first contact.
type Watchdog struct {
	timeout     time.Duration
	state       Liveness
	lastContact time.Time
}

// NewWatchdog creates a Watchdog in the LOST state.
func NewWatchdog(timeout time.Duration) *Watchdog {
	if timeout <= 0 {
		timeout = DefaultHeartbeatTimeout
	}
	return &Watchdog{
		timeout: timeout,
		state:   LivenessLost,
	}
}

// Feed records a heartbeat at now. Returns true on the LOST→ALIVE edge.
func (w *Watchdog) Feed(now time.Time) bool {
	restored := w.state == LivenessLost
	w.state = LivenessAlive
	w.lastContact = now
	return restored
}

// Check moves ALIVE→LOST once more than the timeout has elapsed since the
// last heartbeat. Returns true only on that edge.
func (w *Watchdog) Check(now time.Time) bool {
	if w.state != LivenessAlive {
		return false
	}
	if now.Sub(w.lastContact) <= w.timeout {
		return false
	}
	w.state = LivenessLost
	return true
}

// State returns the current liveness.
func (w *Watchdog) State() Liveness {
	return w.state
}

// LastContact returns the time of the last heartbeat (zero if none).
func (w *Watchdog) LastContact() time.Time {
	return w.lastContact
}

// Timeout returns the configured silence threshold.
func (w *Watchdog) Timeout() time.Duration {
	return w.timeout
}
