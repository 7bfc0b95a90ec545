package logic

import (
	"fmt"
	"math"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{}
	Red   = Color{R: 255}
	Green = Color{G: 255}
)

// Scale multiplies every channel by f, clamped to [0,1].
func (c Color) Scale(f float64) Color {
	f = clamp01(f)
	return Color{
		R: scaleChannel(c.R, f),
		G: scaleChannel(c.G, f),
		B: scaleChannel(c.B, f),
	}
}

// Hex formats the colour as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String formats the colour as "r g b", the protocol's decimal form.
func (c Color) String() string {
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
}

func scaleChannel(v uint8, f float64) uint8 {
	return uint8(math.Round(float64(v) * f))
}

func clamp01(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// RainbowFrame returns a static hue gradient across n pixels at full
// saturation and value.
func RainbowFrame(n int) []Color {
	frame := make([]Color, n)
	for i := range frame {
		frame[i] = hsvToRGB(float64(i)/float64(n), 1, 1)
	}
	return frame
}

func hsvToRGB(h, s, v float64) Color {
	if s == 0 {
		c := to8(v)
		return Color{c, c, c}
	}
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return Color{to8(r), to8(g), to8(b)}
}

func to8(x float64) uint8 {
	return uint8(math.Round(clamp01(x) * 255))
}
