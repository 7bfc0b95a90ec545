// Package controller runs one control cycle: watchdog check, line dispatch,
// signal conditioning, mode arbitration and actuator output. All process
// state lives in the Controller; hardware is reached only through the
// actuator.Output it is given.
package controller

import (
	"log"
	"time"

	"github.com/sweeney/led-arbiter/internal/actuator"
	"github.com/sweeney/led-arbiter/internal/logic"
)

// Config tunes the decision core.
type Config struct {
	HeartbeatTimeout time.Duration
	Alpha            float64
	FullScale        float64
}

// Input is everything sampled for one cycle.
type Input struct {
	Time        time.Time
	Data        []byte   // serial bytes received since the last cycle
	Samples     []uint16 // one analog window; nil if the read failed
	Manual      bool
	LimitClosed bool
}

// Result is what the caller must deliver after a cycle.
type Result struct {
	Responses []string // lines to send back to the host, in order
	Events    []logic.Event
	Mode      logic.Mode
}

// scene is the host's most recent request for the actuator.
type scene struct {
	color   logic.Color
	rainbow bool
}

// Controller owns the arbitration state.
type Controller struct {
	lines    *logic.LineReader
	watchdog *logic.Watchdog
	cond     *logic.Conditioner
	out      *actuator.Output

	host        scene
	mode        logic.Mode
	manual      bool
	limitClosed bool
	brightness  float64
	counts      logic.Counts
}

// New creates a Controller. The host starts LOST, so the first cycle runs in
// local fallback.
func New(cfg Config, out *actuator.Output) *Controller {
	return &Controller{
		lines:    logic.NewLineReader(),
		watchdog: logic.NewWatchdog(cfg.HeartbeatTimeout),
		cond:     logic.NewConditioner(cfg.Alpha, cfg.FullScale),
		out:      out,
		mode:     logic.ModeLocalFallback,
	}
}

// Cycle runs one control pass.
func (c *Controller) Cycle(in Input) Result {
	var res Result
	c.manual = in.Manual
	c.limitClosed = in.LimitClosed

	if c.watchdog.Check(in.Time) {
		c.counts.LinkLosses++
		log.Printf("controller: host heartbeat lost (silent for more than %v)", c.watchdog.Timeout())
		res.Events = append(res.Events, c.event(in.Time, logic.EventLinkLost))
	}

	// Lines are read every cycle regardless of liveness.
	for _, line := range c.lines.FeedAll(in.Data) {
		c.dispatch(line, in, &res)
	}
	c.counts.Overflows = c.lines.Overflows()

	c.brightness = c.cond.Update(in.Samples)

	mode := logic.Decide(in.Manual, c.watchdog.State())
	if mode != c.mode {
		c.mode = mode
		t := logic.EventModeHost
		if mode == logic.ModeLocalFallback {
			t = logic.EventModeFallback
		}
		log.Printf("controller: mode %s (manual=%v host=%s)", mode, in.Manual, c.watchdog.State())
		res.Events = append(res.Events, c.event(in.Time, t))
	}
	res.Mode = mode

	switch mode {
	case logic.ModeHost:
		c.showHost()
	case logic.ModeLocalFallback:
		c.out.Apply(logic.FallbackColor(in.LimitClosed, c.brightness), in.Manual)
	}

	return res
}

func (c *Controller) dispatch(line string, in Input, res *Result) {
	cmd := logic.ParseCommand(line)

	switch cmd := cmd.(type) {
	case logic.SetColor:
		c.counts.Commands++
		c.setHost(scene{color: cmd.Color}, in)
		res.Responses = append(res.Responses, logic.FormatLEDAck(cmd.Color))
	case logic.SetColorHex:
		c.counts.Commands++
		c.setHost(scene{color: cmd.Color}, in)
		res.Responses = append(res.Responses, logic.FormatHexAck(cmd.Color))
	case logic.Heartbeat:
		c.counts.Commands++
		c.counts.Heartbeats++
		if c.watchdog.Feed(in.Time) {
			log.Printf("controller: host heartbeat restored")
			res.Events = append(res.Events, c.event(in.Time, logic.EventLinkRestored))
		}
	case logic.Rainbow:
		c.counts.Commands++
		c.setHost(scene{rainbow: true}, in)
		res.Responses = append(res.Responses, logic.RespRainbow)
	case logic.QueryColor:
		c.counts.Commands++
		res.Responses = append(res.Responses, logic.FormatColorReport(c.out.LastApplied()))
	case logic.Malformed:
		c.counts.Malformed++
	case logic.Unknown:
		c.counts.Unknown++
		res.Responses = append(res.Responses, logic.RespUnknown)
	default:
		log.Printf("controller: unhandled command %T", cmd)
	}
}

// setHost records the host's request and applies it at once in every mode,
// so a following GETRGB in the same batch reports it. Outside HOST mode the
// arbiter step later in the cycle replaces it with the fallback colour.
func (c *Controller) setHost(s scene, in Input) {
	c.host = s
	c.show(s, in.Manual)
}

func (c *Controller) showHost() {
	c.show(c.host, false)
}

func (c *Controller) show(s scene, manual bool) {
	if s.rainbow {
		c.out.Rainbow()
		return
	}
	c.out.Apply(s.color, manual)
}

func (c *Controller) event(t time.Time, typ logic.EventType) logic.Event {
	return logic.Event{
		Timestamp: t,
		Type:      typ,
		Mode:      logic.Decide(c.manual, c.watchdog.State()),
		Liveness:  c.watchdog.State(),
		Color:     c.out.LastApplied(),
	}
}

// Mode returns the mode decided in the last cycle.
func (c *Controller) Mode() logic.Mode { return c.mode }

// Liveness returns the watchdog state.
func (c *Controller) Liveness() logic.Liveness { return c.watchdog.State() }

// LastApplied returns the colour GETRGB would report.
func (c *Controller) LastApplied() logic.Color { return c.out.LastApplied() }

// Brightness returns the conditioned brightness fraction.
func (c *Controller) Brightness() float64 { return c.brightness }

// Switches returns the switch states seen in the last cycle.
func (c *Controller) Switches() (manual, limitClosed bool) { return c.manual, c.limitClosed }

// Counts returns protocol statistics since startup.
func (c *Controller) Counts() logic.Counts { return c.counts }

// LastContact returns the time of the last heartbeat.
func (c *Controller) LastContact() time.Time { return c.watchdog.LastContact() }
