package logic

import (
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
)

// Command is one parsed protocol line. The set of implementations is closed:
// SetColor, SetColorHex, Heartbeat, Rainbow, QueryColor, Unknown and Malformed.
type Command interface {
	command()
}

// SetColor is "LED r g b" with each channel clamped to [0,255].
type SetColor struct {
	Color Color
}

// SetColorHex is "HEX #RRGGBB".
type SetColorHex struct {
	Color Color
}

// Heartbeat is the "Hallo" keep-alive ping.
type Heartbeat struct{}

// Rainbow fills the strip with a static hue gradient.
type Rainbow struct{}

// QueryColor is "GETRGB".
type QueryColor struct{}

// Unknown is a line that matched no command name.
type Unknown struct {
	Line string
}

// Malformed is a line whose command name matched but whose payload did not
// parse. It is dispatched as a no-op.
type Malformed struct {
	Name string
	Line string
}

func (SetColor) command()    {}
func (SetColorHex) command() {}
func (Heartbeat) command()   {}
func (Rainbow) command()     {}
func (QueryColor) command()  {}
func (Unknown) command()     {}
func (Malformed) command()   {}

// Command names, in match order.
const (
	NameLED       = "LED"
	NameHex       = "HEX"
	NameHeartbeat = "Hallo"
	NameRainbow   = "RAINBOW"
	NameQuery     = "GETRGB"
)

// Protocol responses.
const (
	RespUnknown = "ERR Unknown command"
	RespRainbow = "OK RAINBOW"
)

type commandEntry struct {
	name  string
	parse func(payload string) (Command, bool)
}

// commandTable is matched first-to-last by case-sensitive prefix.
var commandTable = []commandEntry{
	{NameLED, parseLED},
	{NameHex, parseHex},
	{NameHeartbeat, func(string) (Command, bool) { return Heartbeat{}, true }},
	{NameRainbow, func(string) (Command, bool) { return Rainbow{}, true }},
	{NameQuery, func(string) (Command, bool) { return QueryColor{}, true }},
}

// ParseCommand turns one line (terminator already stripped) into a Command.
func ParseCommand(line string) Command {
	for _, e := range commandTable {
		if !strings.HasPrefix(line, e.name) {
			continue
		}
		cmd, ok := e.parse(line[len(e.name):])
		if !ok {
			return Malformed{Name: e.name, Line: line}
		}
		return cmd
	}
	return Unknown{Line: line}
}

func parseLED(payload string) (Command, bool) {
	fields := strings.Fields(payload)
	if len(fields) != 3 {
		return nil, false
	}
	var ch [3]uint8
	for i, f := range fields {
		// Out-of-range integers come back saturated with ErrRange and clamp
		// like any other value.
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, false
		}
		ch[i] = clampByte(n)
	}
	return SetColor{Color: Color{R: ch[0], G: ch[1], B: ch[2]}}, true
}

func parseHex(payload string) (Command, bool) {
	fields := strings.Fields(payload)
	if len(fields) != 1 {
		return nil, false
	}
	digits := strings.TrimPrefix(fields[0], "#")
	if len(digits) != 6 {
		return nil, false
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil, false
	}
	return SetColorHex{Color: Color{R: b[0], G: b[1], B: b[2]}}, true
}

func clampByte(n int64) uint8 {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// FormatLEDAck returns the acknowledgement for a SetColor.
func FormatLEDAck(c Color) string {
	return "OK LED " + c.String()
}

// FormatHexAck returns the acknowledgement for a SetColorHex.
func FormatHexAck(c Color) string {
	return "OK HEX " + c.Hex()
}

// FormatColorReport returns the GETRGB response.
func FormatColorReport(c Color) string {
	return ReportPrefix + " " + c.String()
}

// ReportPrefix starts a GETRGB response.
const ReportPrefix = "RGBIS"

// ParseColorReport decodes a GETRGB response line.
func ParseColorReport(line string) (Color, bool) {
	rest, ok := strings.CutPrefix(line, ReportPrefix)
	if !ok || (rest != "" && rest[0] != ' ') {
		return Color{}, false
	}
	cmd, ok := parseLED(rest)
	if !ok {
		return Color{}, false
	}
	return cmd.(SetColor).Color, true
}

// ParseHex decodes RRGGBB with an optional leading #.
func ParseHex(s string) (Color, bool) {
	cmd, ok := parseHex(s)
	if !ok {
		return Color{}, false
	}
	return cmd.(SetColorHex).Color, true
}
