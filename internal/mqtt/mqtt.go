// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/led-arbiter/internal/logic"
)

// Topic is the MQTT topic for arbitration events.
const Topic = "lighting/arbiter/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "lighting/arbiter/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends an arbitration event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Arbiter ArbiterPayload `json:"arbiter"`
}

// ArbiterPayload contains the event details.
type ArbiterPayload struct {
	Timestamp string       `json:"timestamp"`
	Event     string       `json:"event"`
	Mode      string       `json:"mode"`
	Host      string       `json:"host"`
	Color     ColorPayload `json:"color"`
}

// ColorPayload is the last applied colour.
type ColorPayload struct {
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
	Hex string `json:"hex"`
}

// FormatPayload creates the JSON payload for an arbitration event.
func FormatPayload(event logic.Event) ([]byte, error) {
	payload := Payload{
		Arbiter: ArbiterPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Mode:      string(event.Mode),
			Host:      string(event.Liveness),
			Color: ColorPayload{
				R:   event.Color.R,
				G:   event.Color.G,
				B:   event.Color.B,
				Hex: event.Color.Hex(),
			},
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
