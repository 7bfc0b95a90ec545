// Package gpio provides switch inputs and colour channel outputs with
// hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "github.com/sweeney/led-arbiter/internal/logic"

// Reader reads the local switch inputs.
type Reader interface {
	// Read returns the logical switch states.
	// Switches are wired active-low: raw 0 = asserted/closed.
	// Returns (manual, limitClosed, error).
	Read() (bool, bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Pin definitions (BCM numbering)
const (
	DefaultPinManual = 26 // manual override switch
	DefaultPinLimit  = 16 // gate/limit switch
	DefaultPinRed    = 17
	DefaultPinGreen  = 27
	DefaultPinBlue   = 22
)

// DefaultThreshold is the channel level at or above which an output line is driven high.
const DefaultThreshold = 128

// ChannelPins groups the three colour output lines.
type ChannelPins struct {
	Red, Green, Blue int
}

// levels converts a colour to line values using the on threshold. The lines
// are on/off only; brightness below the threshold is left to the strip.
func levels(c logic.Color, threshold uint8) [3]int {
	var v [3]int
	for i, ch := range [3]uint8{c.R, c.G, c.B} {
		if ch >= threshold && ch > 0 {
			v[i] = 1
		}
	}
	return v
}
