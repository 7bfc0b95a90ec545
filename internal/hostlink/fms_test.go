package hostlink

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sweeney/led-arbiter/internal/link"
	"github.com/sweeney/led-arbiter/internal/logic"
)

func TestFMSColor(t *testing.T) {
	grey := logic.Color{R: 0x80, G: 0x80, B: 0x80}
	green := logic.Color{G: 0xFF}
	amber := logic.Color{R: 0xF9, G: 0xA8, B: 0x25}
	blue := logic.Color{B: 0xFF}

	tests := []struct {
		code     int
		want     logic.Color
		mode     FMSMode
		enabled  bool
		attached bool
		label    string
	}{
		{32, green, FMSDisabled, false, false, "DISABLED (DISABLED)"},
		{33, logic.Red, FMSTeleop, true, false, "ENABLED (TELEOP)"},
		{35, blue, FMSAuto, true, false, "ENABLED (AUTO)"},
		{37, amber, FMSTest, true, false, "ENABLED (TEST)"},
		{48, green, FMSDisabled, false, true, "DISABLED (DISABLED)"},
		{49, logic.Red, FMSTeleop, true, true, "ENABLED (TELEOP)"},
		{51, blue, FMSAuto, true, true, "ENABLED (AUTO)"},
		{53, amber, FMSTest, true, true, "ENABLED (TEST)"},
		{0, grey, FMSUnknown, false, false, "No Data"},
		{34, grey, FMSUnknown, false, false, "No Data"},
		{-1, grey, FMSUnknown, false, false, "No Data"},
	}
	for _, tt := range tests {
		col, st := FMSColor(tt.code)
		assert.Equal(t, tt.want, col, "code %d colour", tt.code)
		assert.Equal(t, tt.code, st.Code)
		assert.Equal(t, tt.mode, st.Mode, "code %d mode", tt.code)
		assert.Equal(t, tt.enabled, st.Enabled, "code %d enabled", tt.code)
		assert.Equal(t, tt.attached, st.Attached, "code %d attached", tt.code)
		assert.Equal(t, tt.label, st.String(), "code %d label", tt.code)
	}
}

func TestFMSColorSentThroughSendRGB(t *testing.T) {
	fl := link.NewFakeLink()
	c := New(fl)

	for _, code := range []int{51, 51, 49, 48} {
		col, _ := FMSColor(code)
		_, err := c.SendRGB(col)
		assert.NoError(t, err)
	}

	assert.Equal(t, []string{"LED 0 0 255", "LED 255 0 0", "LED 0 255 0"}, fl.Written)
}
