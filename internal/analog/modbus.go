package analog

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/goburrow/modbus"
)

// ModbusConfig describes where the ADC reading lives.
type ModbusConfig struct {
	// Endpoint is tcp://host:port or rtu:///dev/ttyX.
	Endpoint string
	UnitID   uint8
	Register uint16 // input register holding the reading
	BaudRate int    // RTU only
	Timeout  time.Duration
}

type modbusHandler interface {
	modbus.ClientHandler
	Connect() error
	Close() error
}

// ModbusSampler reads the ADC value from a Modbus input register.
type ModbusSampler struct {
	handler  modbusHandler
	client   modbus.Client
	register uint16
}

// NewModbusSampler connects to the ADC.
func NewModbusSampler(cfg ModbusConfig) (*ModbusSampler, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("analog: modbus endpoint required")
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("analog: parse endpoint %q: %w", cfg.Endpoint, err)
	}

	var h modbusHandler
	switch u.Scheme {
	case "tcp":
		th := modbus.NewTCPClientHandler(u.Host)
		th.Timeout = cfg.Timeout
		th.SlaveId = cfg.UnitID
		h = th
	case "rtu":
		rh := modbus.NewRTUClientHandler(u.Path)
		rh.BaudRate = cfg.BaudRate
		rh.DataBits = 8
		rh.Parity = "N"
		rh.StopBits = 1
		rh.Timeout = cfg.Timeout
		rh.SlaveId = cfg.UnitID
		h = rh
	default:
		return nil, fmt.Errorf("analog: unsupported endpoint scheme %q", u.Scheme)
	}

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("analog: connect %s: %w", cfg.Endpoint, err)
	}

	return &ModbusSampler{
		handler:  h,
		client:   modbus.NewClient(h),
		register: cfg.Register,
	}, nil
}

// Sample reads the input register.
func (s *ModbusSampler) Sample() (uint16, error) {
	b, err := s.client.ReadInputRegisters(s.register, 1)
	if err != nil {
		return 0, fmt.Errorf("read input register %d: %w", s.register, err)
	}
	return decodeRegister(b)
}

// Close disconnects from the ADC.
func (s *ModbusSampler) Close() error {
	return s.handler.Close()
}

func decodeRegister(b []byte) (uint16, error) {
	if len(b) < 2 {
		return 0, fmt.Errorf("short register payload: %d bytes", len(b))
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}
