package logic

import "testing"

func TestColorFormatting(t *testing.T) {
	c := Color{R: 255, G: 8, B: 0}
	if got := c.Hex(); got != "#FF0800" {
		t.Errorf("Hex: got %q", got)
	}
	if got := c.String(); got != "255 8 0" {
		t.Errorf("String: got %q", got)
	}
}

func TestColorScale(t *testing.T) {
	c := Color{200, 100, 50}
	if got := c.Scale(0.5); got != (Color{100, 50, 25}) {
		t.Errorf("Scale(0.5): got %+v", got)
	}
	if got := c.Scale(-1); got != Black {
		t.Errorf("Scale(-1): got %+v", got)
	}
	if got := c.Scale(3); got != c {
		t.Errorf("Scale(3): got %+v", got)
	}
}

func TestRainbowFrame(t *testing.T) {
	frame := RainbowFrame(6)
	if len(frame) != 6 {
		t.Fatalf("length: got %d, want 6", len(frame))
	}
	want := []Color{
		{255, 0, 0},
		{255, 255, 0},
		{0, 255, 0},
		{0, 255, 255},
		{0, 0, 255},
		{255, 0, 255},
	}
	for i := range want {
		if frame[i] != want[i] {
			t.Errorf("pixel %d: got %+v, want %+v", i, frame[i], want[i])
		}
	}
	if len(RainbowFrame(0)) != 0 {
		t.Error("empty strip should yield empty frame")
	}
}
