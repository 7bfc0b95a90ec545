package logic

import (
	"fmt"
	"strings"
	"testing"
)

func TestParseLED(t *testing.T) {
	cmd := ParseCommand("LED 10 20 30")
	sc, ok := cmd.(SetColor)
	if !ok {
		t.Fatalf("expected SetColor, got %T", cmd)
	}
	if sc.Color != (Color{10, 20, 30}) {
		t.Errorf("unexpected color: %+v", sc.Color)
	}
}

func TestParseLEDAllValues(t *testing.T) {
	// Spot-check the full channel range through a sweep per channel.
	for v := 0; v <= 255; v++ {
		line := fmt.Sprintf("LED %d %d %d", v, 255-v, v/2)
		sc, ok := ParseCommand(line).(SetColor)
		if !ok {
			t.Fatalf("%q: expected SetColor", line)
		}
		want := Color{uint8(v), uint8(255 - v), uint8(v / 2)}
		if sc.Color != want {
			t.Fatalf("%q: got %+v, want %+v", line, sc.Color, want)
		}
	}
}

func TestParseLEDClamps(t *testing.T) {
	tests := []struct {
		line string
		want Color
	}{
		{"LED 300 0 0", Color{255, 0, 0}},
		{"LED -5 128 1000", Color{0, 128, 255}},
		{"LED 0 0 256", Color{0, 0, 255}},
		{"LED 99999999999999999999 0 0", Color{255, 0, 0}},
		{"LED 0 -99999999999999999999 7", Color{0, 0, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			sc, ok := ParseCommand(tt.line).(SetColor)
			if !ok {
				t.Fatalf("expected SetColor")
			}
			if sc.Color != tt.want {
				t.Errorf("got %+v, want %+v", sc.Color, tt.want)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		line string
		name string
	}{
		{"LED 1 2", NameLED},
		{"LED 1 2 3 4", NameLED},
		{"LED a b c", NameLED},
		{"LED", NameLED},
		{"HEX #ZZZZZZ", NameHex},
		{"HEX #12345", NameHex},
		{"HEX", NameHex},
		{"HEX #112233 #445566", NameHex},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd := ParseCommand(tt.line)
			m, ok := cmd.(Malformed)
			if !ok {
				t.Fatalf("expected Malformed, got %T", cmd)
			}
			if m.Name != tt.name {
				t.Errorf("name: got %q, want %q", m.Name, tt.name)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		line string
		want Color
	}{
		{"HEX #FF0000", Color{255, 0, 0}},
		{"HEX #00ff7f", Color{0, 255, 127}},
		{"HEX 0A0B0C", Color{10, 11, 12}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			h, ok := ParseCommand(tt.line).(SetColorHex)
			if !ok {
				t.Fatalf("expected SetColorHex")
			}
			if h.Color != tt.want {
				t.Errorf("got %+v, want %+v", h.Color, tt.want)
			}
		})
	}
}

func TestHexMatchesDecimal(t *testing.T) {
	for _, c := range []Color{{0, 0, 0}, {255, 255, 255}, {1, 128, 254}, {171, 205, 239}} {
		h := ParseCommand("HEX " + c.Hex()).(SetColorHex)
		d := ParseCommand("LED " + c.String()).(SetColor)
		if h.Color != d.Color {
			t.Errorf("%v: hex %+v != decimal %+v", c, h.Color, d.Color)
		}
	}
}

func TestParseNoPayloadCommands(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"Hallo", Heartbeat{}},
		{"Hallo/n", Heartbeat{}},
		{"RAINBOW", Rainbow{}},
		{"GETRGB", QueryColor{}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := ParseCommand(tt.line); got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseUnknown(t *testing.T) {
	for _, line := range []string{"", "led 1 2 3", "hallo", " LED 1 2 3", "PING", "GET"} {
		cmd := ParseCommand(line)
		u, ok := cmd.(Unknown)
		if !ok {
			t.Errorf("%q: expected Unknown, got %T", line, cmd)
			continue
		}
		if u.Line != line {
			t.Errorf("Unknown.Line: got %q, want %q", u.Line, line)
		}
	}
}

func TestParsePrefixFirstMatchWins(t *testing.T) {
	// "LEDS ..." still matches LED by prefix; the payload decides validity.
	if _, ok := ParseCommand("LEDS 1 2 3").(Malformed); !ok {
		t.Error("expected LEDS to match LED and fail payload parsing")
	}
	if _, ok := ParseCommand("LED1 2 3").(SetColor); !ok {
		t.Error("expected LED1 2 3 to parse as SetColor")
	}
}

func TestResponseFormats(t *testing.T) {
	c := Color{1, 2, 3}
	if got := FormatLEDAck(c); got != "OK LED 1 2 3" {
		t.Errorf("FormatLEDAck: got %q", got)
	}
	if got := FormatHexAck(Color{0xAB, 0xCD, 0xEF}); got != "OK HEX #ABCDEF" {
		t.Errorf("FormatHexAck: got %q", got)
	}
	if got := FormatColorReport(c); got != "RGBIS 1 2 3" {
		t.Errorf("FormatColorReport: got %q", got)
	}
	if !strings.HasPrefix(RespUnknown, "ERR") {
		t.Errorf("RespUnknown: got %q", RespUnknown)
	}
}

func TestParseColorReport(t *testing.T) {
	tests := []struct {
		line string
		want Color
		ok   bool
	}{
		{"RGBIS 1 2 3", Color{1, 2, 3}, true},
		{"RGBIS 255 0 128", Color{255, 0, 128}, true},
		{FormatColorReport(Color{9, 8, 7}), Color{9, 8, 7}, true},
		{"RGBIS 1 2", Color{}, false},
		{"RGBIS1 2 3", Color{}, false},
		{"OK LED 1 2 3", Color{}, false},
		{"", Color{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColorReport(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseColorReport(%q) = %v, %v; want %v, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseHexHelper(t *testing.T) {
	if c, ok := ParseHex("#ff8000"); !ok || c != (Color{255, 128, 0}) {
		t.Errorf("ParseHex(#ff8000) = %v, %v", c, ok)
	}
	if c, ok := ParseHex("00FF00"); !ok || c != (Color{0, 255, 0}) {
		t.Errorf("ParseHex(00FF00) = %v, %v", c, ok)
	}
	for _, bad := range []string{"", "#12345", "#GGGGGG", "#1234567"} {
		if _, ok := ParseHex(bad); ok {
			t.Errorf("ParseHex(%q) should fail", bad)
		}
	}
}
