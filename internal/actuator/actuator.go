// Package actuator applies colour decisions to the discrete channels and the
// addressable strip, and remembers the last colour applied.
package actuator

import (
	"fmt"
	"log"

	"github.com/sweeney/led-arbiter/internal/logic"
)

// Channels drives the three discrete colour outputs.
type Channels interface {
	Set(c logic.Color) error
}

// Strip pushes one full frame to the addressable strip.
type Strip interface {
	Push(frame []logic.Color) error
}

type display int

const (
	displayUnknown display = iota
	displaySolid
	displayRainbow
)

// Output owns the physical outputs and the LastApplied colour.
// Not safe for concurrent use; it belongs to the control loop.
type Output struct {
	channels Channels
	strip    Strip
	length   int

	last    logic.Color
	shown   logic.Color
	display display
	failing bool // hardware write failed; logged once until it recovers
}

// New creates an Output for a strip of the given pixel count.
func New(channels Channels, strip Strip, length int) *Output {
	return &Output{
		channels: channels,
		strip:    strip,
		length:   length,
	}
}

// Blank turns the channels off and clears the strip. Used at startup.
func (o *Output) Blank() error {
	o.display = displayUnknown
	if err := o.write(logic.Black); err != nil {
		return err
	}
	o.last = logic.Black
	return nil
}

// Apply shows c on the channels and as a uniform strip fill. Hardware is only
// written when c differs from what is already displayed. LastApplied is
// updated after a successful apply unless a manual override is active.
func (o *Output) Apply(c logic.Color, manual bool) {
	if o.display != displaySolid || o.shown != c {
		if err := o.write(c); err != nil {
			o.logFailure(err)
			return
		}
	}
	o.recovered()
	if !manual {
		o.last = c
	}
}

// Rainbow pushes a static hue gradient to the strip. The discrete channels
// and LastApplied are left unchanged.
func (o *Output) Rainbow() {
	if o.display == displayRainbow {
		return
	}
	if err := o.strip.Push(logic.RainbowFrame(o.length)); err != nil {
		o.display = displayUnknown
		o.logFailure(fmt.Errorf("push rainbow: %w", err))
		return
	}
	o.display = displayRainbow
	o.recovered()
}

// LastApplied returns the most recent colour applied outside manual override.
func (o *Output) LastApplied() logic.Color {
	return o.last
}

// Showing returns the solid colour currently displayed and whether the strip
// is showing a solid colour at all (false while a rainbow is shown).
func (o *Output) Showing() (logic.Color, bool) {
	return o.shown, o.display == displaySolid
}

func (o *Output) write(c logic.Color) error {
	if err := o.channels.Set(c); err != nil {
		o.display = displayUnknown
		return fmt.Errorf("set channels %s: %w", c.Hex(), err)
	}
	if err := o.strip.Push(fill(c, o.length)); err != nil {
		o.display = displayUnknown
		return fmt.Errorf("push strip %s: %w", c.Hex(), err)
	}
	o.shown = c
	o.display = displaySolid
	return nil
}

func (o *Output) logFailure(err error) {
	if !o.failing {
		log.Printf("actuator: %v", err)
		o.failing = true
	}
}

func (o *Output) recovered() {
	if o.failing {
		log.Printf("actuator: outputs recovered")
		o.failing = false
	}
}

func fill(c logic.Color, n int) []logic.Color {
	frame := make([]logic.Color, n)
	for i := range frame {
		frame[i] = c
	}
	return frame
}
