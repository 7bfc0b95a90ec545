// Package config loads the led-arbiter daemon configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	Strip   StripConfig   `yaml:"strip"`
	GPIO    GPIOConfig    `yaml:"gpio"`
	Analog  AnalogConfig  `yaml:"analog"`
	Control ControlConfig `yaml:"control"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	HTTP    HTTPConfig    `yaml:"http"`
}

// SerialConfig is the host command link.
type SerialConfig struct {
	Port          string `yaml:"port"`
	Baud          int    `yaml:"baud"`
	ReadTimeoutMs int    `yaml:"read_timeout_ms"`
}

// StripConfig is the addressable strip driver. An empty device disables the strip.
type StripConfig struct {
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
	Length int    `yaml:"length"`
}

type GPIOConfig struct {
	ManualPin  int `yaml:"manual_pin"`
	LimitPin   int `yaml:"limit_pin"`
	RedPin     int `yaml:"red_pin"`
	GreenPin   int `yaml:"green_pin"`
	BluePin    int `yaml:"blue_pin"`
	Threshold  int `yaml:"threshold"`
	DebounceMs int `yaml:"debounce_ms"`
}

// AnalogConfig locates the brightness ADC. An empty endpoint disables
// sampling and brightness stays at zero.
type AnalogConfig struct {
	Endpoint  string  `yaml:"endpoint"`
	UnitID    uint8   `yaml:"unit_id"`
	Register  uint16  `yaml:"register"`
	Baud      int     `yaml:"baud"`
	TimeoutMs int     `yaml:"timeout_ms"`
	Samples   int     `yaml:"samples"`
	SpacingUs int     `yaml:"spacing_us"`
	Alpha     float64 `yaml:"alpha"`
	FullScale float64 `yaml:"full_scale"`
}

type ControlConfig struct {
	PollMs             int `yaml:"poll_ms"`
	HeartbeatTimeoutMs int `yaml:"heartbeat_timeout_ms"`
}

// MQTTConfig configures telemetry. An empty broker disables MQTT.
type MQTTConfig struct {
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	HeartbeatMs int    `yaml:"heartbeat_ms"` // system heartbeat; 0 disables
	BufferSize  int    `yaml:"buffer_size"`
}

// HTTPConfig configures the status page. An empty addr disables it.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads, expands and validates the file at path. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := seeded()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.setDefaults()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := seeded()
	cfg.setDefaults()
	return &cfg
}

// seeded returns a Config with the pin numbers filled in. Pins are set before
// unmarshalling, not in setDefaults, because 0 is a valid pin.
func seeded() Config {
	return Config{
		GPIO: GPIOConfig{
			ManualPin: 26,
			LimitPin:  16,
			RedPin:    17,
			GreenPin:  27,
			BluePin:   22,
		},
	}
}

// Warnings lists settings that are valid but probably not intended.
func (c *Config) Warnings() []string {
	var w []string
	if c.Analog.Endpoint == "" {
		w = append(w, "analog.endpoint is not set: brightness stays at 0 and fallback colours are black")
	}
	return w
}

func (c *Config) setDefaults() {
	if c.Serial.Port == "" {
		c.Serial.Port = "/dev/ttyACM0"
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = 115200
	}
	if c.Serial.ReadTimeoutMs == 0 {
		c.Serial.ReadTimeoutMs = 50
	}
	if c.Strip.Baud == 0 {
		c.Strip.Baud = 115200
	}
	if c.Strip.Length == 0 {
		c.Strip.Length = 60
	}
	if c.GPIO.Threshold == 0 {
		c.GPIO.Threshold = 128
	}
	if c.Analog.UnitID == 0 {
		c.Analog.UnitID = 1
	}
	if c.Analog.Baud == 0 {
		c.Analog.Baud = 9600
	}
	if c.Analog.TimeoutMs == 0 {
		c.Analog.TimeoutMs = 100
	}
	if c.Analog.Samples == 0 {
		c.Analog.Samples = 9
	}
	if c.Analog.SpacingUs == 0 {
		c.Analog.SpacingUs = 200
	}
	if c.Analog.Alpha == 0 {
		c.Analog.Alpha = 0.1
	}
	if c.Analog.FullScale == 0 {
		c.Analog.FullScale = 4095
	}
	if c.Control.PollMs == 0 {
		c.Control.PollMs = 20
	}
	if c.Control.HeartbeatTimeoutMs == 0 {
		c.Control.HeartbeatTimeoutMs = 2000
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "led-arbiter"
	}
	if c.MQTT.BufferSize == 0 {
		c.MQTT.BufferSize = 256
	}
}

// Poll is the control cycle interval.
func (c *Config) Poll() time.Duration {
	return time.Duration(c.Control.PollMs) * time.Millisecond
}

// HeartbeatTimeout is the host silence after which the link counts as lost.
func (c *Config) HeartbeatTimeout() time.Duration {
	return time.Duration(c.Control.HeartbeatTimeoutMs) * time.Millisecond
}

// Debounce is the switch settle time.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.GPIO.DebounceMs) * time.Millisecond
}

// SystemHeartbeat is the MQTT status heartbeat interval; 0 disables it.
func (c *Config) SystemHeartbeat() time.Duration {
	return time.Duration(c.MQTT.HeartbeatMs) * time.Millisecond
}
