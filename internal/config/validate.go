package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg.Serial.Baud < 0 {
		return fmt.Errorf("serial: baud must be positive, got %d", cfg.Serial.Baud)
	}
	if cfg.Strip.Length < 0 {
		return fmt.Errorf("strip: length must not be negative, got %d", cfg.Strip.Length)
	}

	pins := map[string]int{
		"manual_pin": cfg.GPIO.ManualPin,
		"limit_pin":  cfg.GPIO.LimitPin,
		"red_pin":    cfg.GPIO.RedPin,
		"green_pin":  cfg.GPIO.GreenPin,
		"blue_pin":   cfg.GPIO.BluePin,
	}
	owner := make(map[int]string, len(pins))
	for _, name := range []string{"manual_pin", "limit_pin", "red_pin", "green_pin", "blue_pin"} {
		pin := pins[name]
		if pin < 0 {
			return fmt.Errorf("gpio: %s must not be negative, got %d", name, pin)
		}
		if prev, ok := owner[pin]; ok {
			return fmt.Errorf("gpio: %s and %s both use pin %d", prev, name, pin)
		}
		owner[pin] = name
	}
	if cfg.GPIO.Threshold < 1 || cfg.GPIO.Threshold > 255 {
		return fmt.Errorf("gpio: threshold must be in [1,255], got %d", cfg.GPIO.Threshold)
	}
	if cfg.GPIO.DebounceMs < 0 {
		return fmt.Errorf("gpio: debounce_ms must not be negative, got %d", cfg.GPIO.DebounceMs)
	}

	if ep := cfg.Analog.Endpoint; ep != "" &&
		!strings.HasPrefix(ep, "tcp://") && !strings.HasPrefix(ep, "rtu://") {
		return fmt.Errorf("analog: endpoint %q must start with tcp:// or rtu://", ep)
	}
	if cfg.Analog.Samples < 1 {
		return fmt.Errorf("analog: samples must be at least 1, got %d", cfg.Analog.Samples)
	}
	if cfg.Analog.Alpha <= 0 || cfg.Analog.Alpha > 1 {
		return fmt.Errorf("analog: alpha must be in (0,1], got %v", cfg.Analog.Alpha)
	}
	if cfg.Analog.FullScale <= 0 {
		return fmt.Errorf("analog: full_scale must be positive, got %v", cfg.Analog.FullScale)
	}

	if cfg.Control.PollMs <= 0 {
		return fmt.Errorf("control: poll_ms must be positive, got %d", cfg.Control.PollMs)
	}
	if cfg.Control.HeartbeatTimeoutMs <= cfg.Control.PollMs {
		return fmt.Errorf("control: heartbeat_timeout_ms (%d) must exceed poll_ms (%d)",
			cfg.Control.HeartbeatTimeoutMs, cfg.Control.PollMs)
	}

	if cfg.MQTT.HeartbeatMs < 0 {
		return fmt.Errorf("mqtt: heartbeat_ms must not be negative, got %d", cfg.MQTT.HeartbeatMs)
	}
	if cfg.MQTT.Broker != "" && cfg.MQTT.ClientID == "" {
		return fmt.Errorf("mqtt: client_id required when broker is set")
	}

	return nil
}
