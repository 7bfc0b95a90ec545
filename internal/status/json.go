package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Session       string     `json:"session"`
	Mode          string     `json:"mode"`
	Host          string     `json:"host"`
	LastContact   string     `json:"last_contact,omitempty"`
	Color         ColorJSON  `json:"color"`
	Brightness    float64    `json:"brightness"`
	Switches      SwitchJSON `json:"switches"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"counts"`
	Config        ConfigJSON `json:"config"`
}

// ColorJSON is the last applied colour.
type ColorJSON struct {
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
	Hex string `json:"hex"`
}

// SwitchJSON reports the debounced switch inputs.
type SwitchJSON struct {
	Manual      bool `json:"manual"`
	LimitClosed bool `json:"limit_closed"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of protocol counters.
type CountsJSON struct {
	Commands   int `json:"commands"`
	Unknown    int `json:"unknown"`
	Malformed  int `json:"malformed"`
	Heartbeats int `json:"heartbeats"`
	LinkLosses int `json:"link_losses"`
	Overflows  int `json:"overflows"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs             int64  `json:"poll_ms"`
	HeartbeatTimeoutMs int64  `json:"heartbeat_timeout_ms"`
	SystemHeartbeatMs  int64  `json:"system_heartbeat_ms"`
	SerialPort         string `json:"serial_port"`
	StripLength        int    `json:"strip_length"`
	Broker             string `json:"broker"`
	HTTPPort           string `json:"http_port"`
}

func orUnknown(s string) string {
	if s == "" {
		return "UNKNOWN"
	}
	return s
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		Session: snap.SessionID,
		Mode:    orUnknown(string(snap.Mode)),
		Host:    orUnknown(string(snap.Liveness)),
		Color: ColorJSON{
			R:   snap.Color.R,
			G:   snap.Color.G,
			B:   snap.Color.B,
			Hex: snap.Color.Hex(),
		},
		Brightness:    snap.Brightness,
		Switches:      SwitchJSON{Manual: snap.Manual, LimitClosed: snap.LimitClosed},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Commands:   snap.Counts.Commands,
			Unknown:    snap.Counts.Unknown,
			Malformed:  snap.Counts.Malformed,
			Heartbeats: snap.Counts.Heartbeats,
			LinkLosses: snap.Counts.LinkLosses,
			Overflows:  snap.Counts.Overflows,
		},
		Config: ConfigJSON{
			PollMs:             snap.Config.PollMs,
			HeartbeatTimeoutMs: snap.Config.HeartbeatTimeoutMs,
			SystemHeartbeatMs:  snap.Config.SystemHeartbeatMs,
			SerialPort:         snap.Config.SerialPort,
			StripLength:        snap.Config.StripLength,
			Broker:             snap.Config.Broker,
			HTTPPort:           snap.Config.HTTPPort,
		},
	}
	if !snap.LastContact.IsZero() {
		inner.LastContact = snap.LastContact.UTC().Format(time.RFC3339)
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
