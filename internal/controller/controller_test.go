package controller

import (
	"math"
	"testing"
	"time"

	"github.com/sweeney/led-arbiter/internal/actuator"
	"github.com/sweeney/led-arbiter/internal/gpio"
	"github.com/sweeney/led-arbiter/internal/logic"
	"github.com/sweeney/led-arbiter/internal/strip"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	c        *Controller
	channels *gpio.FakeChannels
	strip    *strip.FakeStrip
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ch := gpio.NewFakeChannels()
	st := strip.NewFakeStrip()
	out := actuator.New(ch, st, 8)
	if err := out.Blank(); err != nil {
		t.Fatalf("Blank: %v", err)
	}
	c := New(Config{HeartbeatTimeout: logic.DefaultHeartbeatTimeout}, out)
	return &harness{c: c, channels: ch, strip: st}
}

func window(v uint16) []uint16 {
	w := make([]uint16, logic.WindowSize)
	for i := range w {
		w[i] = v
	}
	return w
}

func (h *harness) cycle(at time.Duration, data string) Result {
	return h.c.Cycle(Input{Time: t0.Add(at), Data: []byte(data), Samples: window(0)})
}

func eventTypes(events []logic.Event) []logic.EventType {
	var out []logic.EventType
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func wrote(writes []logic.Color, c logic.Color) bool {
	for _, w := range writes {
		if w == c {
			return true
		}
	}
	return false
}

func equalResponses(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestStartsInFallback(t *testing.T) {
	h := newHarness(t)
	res := h.cycle(0, "")
	if res.Mode != logic.ModeLocalFallback {
		t.Errorf("mode: got %s, want LOCAL_FALLBACK", res.Mode)
	}
	if h.c.Liveness() != logic.LivenessLost {
		t.Errorf("liveness: got %s, want LOST", h.c.Liveness())
	}
	if len(res.Events) != 0 {
		t.Errorf("expected no events on a quiet first cycle, got %v", eventTypes(res.Events))
	}
}

func TestSetColorThenQuery(t *testing.T) {
	h := newHarness(t)
	res := h.cycle(0, "Hallo\nLED 12 34 56\nGETRGB\n")

	want := []string{"OK LED 12 34 56", "RGBIS 12 34 56"}
	if !equalResponses(res.Responses, want) {
		t.Errorf("responses: got %q, want %q", res.Responses, want)
	}
	if res.Mode != logic.ModeHost {
		t.Errorf("mode: got %s, want HOST", res.Mode)
	}
	if h.channels.Last() != (logic.Color{R: 12, G: 34, B: 56}) {
		t.Errorf("channels: got %+v", h.channels.Last())
	}
	gotTypes := eventTypes(res.Events)
	if len(gotTypes) != 2 || gotTypes[0] != logic.EventLinkRestored || gotTypes[1] != logic.EventModeHost {
		t.Errorf("events: got %v, want [LINK_RESTORED MODE_HOST]", gotTypes)
	}
}

func TestHexMatchesLED(t *testing.T) {
	h := newHarness(t)
	res := h.cycle(0, "Hallo\nHEX #0C2238\nGETRGB\n")

	want := []string{"OK HEX #0C2238", "RGBIS 12 34 56"}
	if !equalResponses(res.Responses, want) {
		t.Errorf("responses: got %q, want %q", res.Responses, want)
	}
}

func TestMalformedPayloadIsNoOp(t *testing.T) {
	h := newHarness(t)
	h.cycle(0, "Hallo\nLED 5 6 7\n")
	writes := len(h.channels.Writes)

	res := h.cycle(10*time.Millisecond, "LED 1 2\nHEX #ZZZZZZ\nGETRGB\n")

	want := []string{"RGBIS 5 6 7"}
	if !equalResponses(res.Responses, want) {
		t.Errorf("responses: got %q, want %q", res.Responses, want)
	}
	if len(h.channels.Writes) != writes {
		t.Error("malformed commands must not touch the outputs")
	}
	if h.c.Counts().Malformed != 2 {
		t.Errorf("malformed count: got %d, want 2", h.c.Counts().Malformed)
	}
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	res := h.cycle(0, "PING\n")
	if !equalResponses(res.Responses, []string{logic.RespUnknown}) {
		t.Errorf("responses: got %q", res.Responses)
	}
	if h.c.Counts().Unknown != 1 {
		t.Errorf("unknown count: got %d, want 1", h.c.Counts().Unknown)
	}
}

func TestLineSplitAcrossCycles(t *testing.T) {
	h := newHarness(t)
	h.cycle(0, "Hal")
	if h.c.Liveness() != logic.LivenessLost {
		t.Fatal("partial line must not be dispatched")
	}
	h.cycle(10*time.Millisecond, "lo\r\n")
	if h.c.Liveness() != logic.LivenessAlive {
		t.Error("completed heartbeat should mark host ALIVE")
	}
}

func TestWatchdogTimeoutOverCycles(t *testing.T) {
	h := newHarness(t)
	h.cycle(0, "Hallo\nLED 1 1 1\n")

	res := h.cycle(1999*time.Millisecond, "")
	if res.Mode != logic.ModeHost {
		t.Errorf("mode at 1999ms: got %s, want HOST", res.Mode)
	}

	res = h.cycle(2001*time.Millisecond, "")
	gotTypes := eventTypes(res.Events)
	if len(gotTypes) != 2 || gotTypes[0] != logic.EventLinkLost || gotTypes[1] != logic.EventModeFallback {
		t.Fatalf("events at 2001ms: got %v, want [LINK_LOST MODE_FALLBACK]", gotTypes)
	}

	for i := 1; i <= 20; i++ {
		res = h.cycle(2001*time.Millisecond+time.Duration(i)*100*time.Millisecond, "")
		if len(res.Events) != 0 {
			t.Fatalf("cycle %d after loss: unexpected events %v", i, eventTypes(res.Events))
		}
	}
	if h.c.Counts().LinkLosses != 1 {
		t.Errorf("link losses: got %d, want 1", h.c.Counts().LinkLosses)
	}
}

func TestCommandsProcessedWhileHostIdle(t *testing.T) {
	h := newHarness(t)
	h.cycle(0, "Hallo\n")

	// Host alive but silent on heartbeats; colour commands still land.
	res := h.cycle(500*time.Millisecond, "LED 9 9 9\n")
	if !equalResponses(res.Responses, []string{"OK LED 9 9 9"}) {
		t.Errorf("responses: got %q", res.Responses)
	}
	if h.c.LastApplied() != (logic.Color{R: 9, G: 9, B: 9}) {
		t.Errorf("LastApplied: got %+v", h.c.LastApplied())
	}
}

func TestManualOverridesAliveHost(t *testing.T) {
	h := newHarness(t)
	host := logic.Color{R: 1, G: 2, B: 3}
	h.cycle(0, "Hallo\nLED 1 2 3\n")

	res := h.c.Cycle(Input{
		Time:        t0.Add(100 * time.Millisecond),
		Data:        []byte("GETRGB\n"),
		Samples:     window(4095),
		Manual:      true,
		LimitClosed: true,
	})

	if res.Mode != logic.ModeLocalFallback {
		t.Errorf("mode: got %s, want LOCAL_FALLBACK", res.Mode)
	}
	// Brightness after one full-scale window with alpha 0.1 is 0.1.
	want := logic.Color{R: 26}
	if h.channels.Last() != want {
		t.Errorf("channels: got %+v, want %+v", h.channels.Last(), want)
	}
	if !equalResponses(res.Responses, []string{"RGBIS 1 2 3"}) {
		t.Errorf("responses: got %q", res.Responses)
	}
	if h.c.LastApplied() != host {
		t.Errorf("LastApplied under manual: got %+v, want %+v", h.c.LastApplied(), host)
	}

	// Releasing the switch hands control back to the host.
	res = h.cycle(200*time.Millisecond, "")
	if res.Mode != logic.ModeHost {
		t.Errorf("mode after release: got %s, want HOST", res.Mode)
	}
	if h.channels.Last() != host {
		t.Errorf("channels after release: got %+v, want %+v", h.channels.Last(), host)
	}
}

func TestLostHostFallbackFollowsLimitSwitch(t *testing.T) {
	h := newHarness(t)

	h.c.Cycle(Input{Time: t0, Samples: window(4095), LimitClosed: false})
	if got := h.channels.Last(); got.R != 0 || got.G == 0 || got.B != 0 {
		t.Errorf("open limit: expected green only, got %+v", got)
	}

	h.c.Cycle(Input{Time: t0.Add(10 * time.Millisecond), Samples: window(4095), LimitClosed: true})
	if got := h.channels.Last(); got.R == 0 || got.G != 0 || got.B != 0 {
		t.Errorf("closed limit: expected red only, got %+v", got)
	}

	// Not a manual override, so the fallback colour is what GETRGB reports.
	if h.c.LastApplied() != h.channels.Last() {
		t.Errorf("LastApplied: got %+v, want %+v", h.c.LastApplied(), h.channels.Last())
	}
}

func TestColorWhileLostAppliesThenFallsBack(t *testing.T) {
	h := newHarness(t)
	res := h.cycle(0, "LED 10 20 30\nGETRGB\n")
	want := []string{"OK LED 10 20 30", "RGBIS 10 20 30"}
	if !equalResponses(res.Responses, want) {
		t.Errorf("responses: got %q, want %q", res.Responses, want)
	}
	if !wrote(h.channels.Writes, logic.Color{R: 10, G: 20, B: 30}) {
		t.Error("host colour should reach the channels when dispatched")
	}
	if h.channels.Last() == (logic.Color{R: 10, G: 20, B: 30}) {
		t.Error("fallback colour should replace the host colour by the end of the cycle")
	}

	h.cycle(10*time.Millisecond, "Hallo\n")
	if h.channels.Last() != (logic.Color{R: 10, G: 20, B: 30}) {
		t.Errorf("host colour should show once ALIVE, got %+v", h.channels.Last())
	}
}

func TestColorUnderManualOverrideKeepsLastApplied(t *testing.T) {
	h := newHarness(t)
	res := h.c.Cycle(Input{Time: t0, Data: []byte("LED 10 20 30\nGETRGB\n"), Samples: window(0), Manual: true})
	want := []string{"OK LED 10 20 30", "RGBIS 0 0 0"}
	if !equalResponses(res.Responses, want) {
		t.Errorf("responses: got %q, want %q", res.Responses, want)
	}
}

func TestConditionerRunsInHostMode(t *testing.T) {
	h := newHarness(t)
	h.c.Cycle(Input{Time: t0, Data: []byte("Hallo\n"), Samples: window(4095)})
	h.c.Cycle(Input{Time: t0.Add(10 * time.Millisecond), Samples: window(4095)})

	if math.Abs(h.c.Brightness()-0.19) > 1e-9 {
		t.Errorf("brightness: got %v, want 0.19", h.c.Brightness())
	}
}

func TestRainbowInHostMode(t *testing.T) {
	h := newHarness(t)
	h.cycle(0, "Hallo\nLED 1 2 3\n")
	writes := len(h.channels.Writes)

	res := h.cycle(10*time.Millisecond, "RAINBOW\n")
	if !equalResponses(res.Responses, []string{logic.RespRainbow}) {
		t.Errorf("responses: got %q", res.Responses)
	}
	frame := h.strip.Last()
	if frame[0] != logic.Red || frame[len(frame)/2] == logic.Red {
		t.Errorf("expected gradient on strip, got %+v", frame)
	}
	if len(h.channels.Writes) != writes {
		t.Error("rainbow must not change the discrete channels")
	}

	frames := len(h.strip.Frames)
	h.cycle(20*time.Millisecond, "")
	if len(h.strip.Frames) != frames {
		t.Error("rainbow should not be re-pushed every cycle")
	}
}

func TestAnalogFailureKeepsBrightness(t *testing.T) {
	h := newHarness(t)
	h.c.Cycle(Input{Time: t0, Samples: window(4095)})
	before := h.c.Brightness()
	h.c.Cycle(Input{Time: t0.Add(10 * time.Millisecond), Samples: nil})
	if h.c.Brightness() != before {
		t.Errorf("brightness changed without samples: %v → %v", before, h.c.Brightness())
	}
}
