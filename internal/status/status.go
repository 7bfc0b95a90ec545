// Package status provides a thread-safe status tracker for the led-arbiter daemon.
// It is written by the control loop and read by HTTP handlers and system events.
package status

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sweeney/led-arbiter/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs             int64
	HeartbeatTimeoutMs int64
	SystemHeartbeatMs  int64
	SerialPort         string
	StripLength        int
	Broker             string
	HTTPPort           string
}

// State is the per-cycle controller state copied into the tracker.
type State struct {
	Mode        logic.Mode
	Liveness    logic.Liveness
	Color       logic.Color
	Brightness  float64
	Manual      bool
	LimitClosed bool
	Counts      logic.Counts
	LastContact time.Time
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type and safe to use after the lock is released.
type Snapshot struct {
	State
	SessionID     string
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewTracker creates a Tracker with the given start time and config.
// Each tracker gets a fresh session id so consumers can spot restarts.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			SessionID: uuid.NewString(),
			StartTime: startTime,
			Config:    cfg,
		},
		now: time.Now,
	}
}

// Update replaces the controller state.
// Called from runLoop on every tick.
func (t *Tracker) Update(s State) {
	t.mu.Lock()
	t.snap.State = s
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}
