package hostlink

import (
	"fmt"
	"strings"

	"github.com/sweeney/led-arbiter/internal/logic"
)

// FMSMode is the robot mode reported by the field management system.
type FMSMode string

const (
	FMSUnknown  FMSMode = "Unknown"
	FMSDisabled FMSMode = "Disabled"
	FMSTeleop   FMSMode = "Teleop"
	FMSAuto     FMSMode = "Auto"
	FMSTest     FMSMode = "Test"
)

// FMSState is one decoded FMSControlData word.
type FMSState struct {
	Code     int
	Mode     FMSMode
	Enabled  bool
	Attached bool // an FMS, not just a driver station, is connected
}

var fmsCodes = map[int]FMSState{
	32: {Mode: FMSDisabled},
	33: {Mode: FMSTeleop, Enabled: true},
	35: {Mode: FMSAuto, Enabled: true},
	37: {Mode: FMSTest, Enabled: true},
	48: {Mode: FMSDisabled, Attached: true},
	49: {Mode: FMSTeleop, Enabled: true, Attached: true},
	51: {Mode: FMSAuto, Enabled: true, Attached: true},
	53: {Mode: FMSTest, Enabled: true, Attached: true},
}

var fmsColors = map[FMSMode]logic.Color{
	FMSUnknown:  {R: 0x80, G: 0x80, B: 0x80},
	FMSDisabled: {G: 0xFF},
	FMSAuto:     {B: 0xFF},
	FMSTest:     {R: 0xF9, G: 0xA8, B: 0x25},
	FMSTeleop:   {R: 0xFF},
}

// DecodeFMS maps a control word to its state. Codes outside the table decode
// as FMSUnknown.
func DecodeFMS(code int) FMSState {
	s, ok := fmsCodes[code]
	if !ok {
		s = FMSState{Mode: FMSUnknown}
	}
	s.Code = code
	return s
}

// Color is the status colour: grey with no data, green while disabled and
// otherwise one colour per enabled mode.
func (s FMSState) Color() logic.Color {
	switch {
	case s.Mode == FMSUnknown:
		return fmsColors[FMSUnknown]
	case !s.Enabled:
		return fmsColors[FMSDisabled]
	}
	if c, ok := fmsColors[s.Mode]; ok {
		return c
	}
	return fmsColors[FMSUnknown]
}

// String renders the state as shown on a status display.
func (s FMSState) String() string {
	if s.Mode == FMSUnknown {
		return "No Data"
	}
	enabled := "DISABLED"
	if s.Enabled {
		enabled = "ENABLED"
	}
	return fmt.Sprintf("%s (%s)", enabled, strings.ToUpper(string(s.Mode)))
}

// FMSColor decodes code and returns its status colour.
func FMSColor(code int) (logic.Color, FMSState) {
	s := DecodeFMS(code)
	return s.Color(), s
}
