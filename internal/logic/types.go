// Package logic contains the pure decision core of the lighting controller:
// line framing, command parsing, the heartbeat watchdog, signal conditioning
// and mode arbitration.
// This package has NO external dependencies (no GPIO, serial, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// Liveness is the host connectivity state tracked by the Watchdog.
type Liveness string

const (
	LivenessAlive Liveness = "ALIVE"
	LivenessLost  Liveness = "LOST"
)

// Mode says which authority drives the actuator for a cycle.
type Mode string

const (
	ModeHost          Mode = "HOST"
	ModeLocalFallback Mode = "LOCAL_FALLBACK"
)

// EventType represents an arbitration transition worth publishing.
type EventType string

const (
	EventLinkLost     EventType = "LINK_LOST"
	EventLinkRestored EventType = "LINK_RESTORED"
	EventModeHost     EventType = "MODE_HOST"
	EventModeFallback EventType = "MODE_FALLBACK"
)

// Event is emitted on edges only, never once per cycle.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Mode      Mode
	Liveness  Liveness
	Color     Color // last applied colour at the time of the event
}

// Counts tracks protocol and link statistics since startup.
type Counts struct {
	Commands   int // lines that matched a known command
	Unknown    int
	Malformed  int
	Heartbeats int
	LinkLosses int
	Overflows  int // line buffer truncations
}
