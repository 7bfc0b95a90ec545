// Command led-arbiter arbitrates a lighting actuator between a serial host and
// local switches, and publishes arbitration events to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/led-arbiter/internal/actuator"
	"github.com/sweeney/led-arbiter/internal/analog"
	"github.com/sweeney/led-arbiter/internal/config"
	"github.com/sweeney/led-arbiter/internal/controller"
	"github.com/sweeney/led-arbiter/internal/gpio"
	"github.com/sweeney/led-arbiter/internal/link"
	"github.com/sweeney/led-arbiter/internal/logic"
	"github.com/sweeney/led-arbiter/internal/mqtt"
	"github.com/sweeney/led-arbiter/internal/status"
	"github.com/sweeney/led-arbiter/internal/strip"
	"github.com/sweeney/led-arbiter/internal/web"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (built-in defaults when empty)")
	printState := flag.Bool("print-state", false, "Print switch and brightness readings and exit")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if err := run(cfg, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg *config.Config, printState bool) error {
	for _, w := range cfg.Warnings() {
		log.Printf("warning: %s", w)
	}

	// Initialize switches
	switches, err := gpio.NewRealReader(cfg.GPIO.ManualPin, cfg.GPIO.LimitPin)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer switches.Close()

	// Initialize brightness ADC (optional)
	var sampler analog.Sampler
	if cfg.Analog.Endpoint != "" {
		s, err := analog.NewModbusSampler(analog.ModbusConfig{
			Endpoint: cfg.Analog.Endpoint,
			UnitID:   cfg.Analog.UnitID,
			Register: cfg.Analog.Register,
			BaudRate: cfg.Analog.Baud,
			Timeout:  time.Duration(cfg.Analog.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return fmt.Errorf("init analog: %w", err)
		}
		defer s.Close()
		sampler = s
	}

	spacing := time.Duration(cfg.Analog.SpacingUs) * time.Microsecond

	// Print state mode
	if printState {
		return printReadings(os.Stdout, switches, sampler, cfg.Analog.Samples, spacing, cfg.Analog.FullScale)
	}

	// Initialize outputs
	channels, err := gpio.NewRealChannels(gpio.ChannelPins{
		Red:   cfg.GPIO.RedPin,
		Green: cfg.GPIO.GreenPin,
		Blue:  cfg.GPIO.BluePin,
	}, uint8(cfg.GPIO.Threshold))
	if err != nil {
		return fmt.Errorf("init channels: %w", err)
	}
	defer channels.Close()

	var ledStrip actuator.Strip = strip.NopStrip{}
	if cfg.Strip.Device != "" {
		s, err := strip.Open(cfg.Strip.Device, cfg.Strip.Baud)
		if err != nil {
			return fmt.Errorf("init strip: %w", err)
		}
		defer s.Close()
		ledStrip = s
	}

	out := actuator.New(channels, ledStrip, cfg.Strip.Length)
	if err := out.Blank(); err != nil {
		log.Printf("blank outputs: %v", err)
	}

	// Initialize host link
	hostLink, err := link.Open(link.Config{
		Port:        cfg.Serial.Port,
		BaudRate:    cfg.Serial.Baud,
		ReadTimeout: time.Duration(cfg.Serial.ReadTimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("init serial link: %w", err)
	}
	defer hostLink.Close()

	// Initialize MQTT
	var publisher interface {
		mqtt.Publisher
		mqtt.ConnectionStatus
	} = mqtt.NopPublisher{}
	if cfg.MQTT.Broker != "" {
		publisher = mqtt.NewRealPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.BufferSize)
	}
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:             int64(cfg.Control.PollMs),
		HeartbeatTimeoutMs: int64(cfg.Control.HeartbeatTimeoutMs),
		SystemHeartbeatMs:  int64(cfg.MQTT.HeartbeatMs),
		SerialPort:         cfg.Serial.Port,
		StripLength:        cfg.Strip.Length,
		Broker:             cfg.MQTT.Broker,
		HTTPPort:           cfg.HTTP.Addr,
	})

	ctrl := controller.New(controller.Config{
		HeartbeatTimeout: cfg.HeartbeatTimeout(),
		Alpha:            cfg.Analog.Alpha,
		FullScale:        cfg.Analog.FullScale,
	}, out)
	tracker.Update(controllerState(ctrl))

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event (session %s)", snap.SessionID)
	}

	// Start HTTP status server
	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTP.Addr)
	}

	log.Printf("started: poll=%v serial=%s heartbeat-timeout=%v broker=%q",
		cfg.Poll(), cfg.Serial.Port, cfg.HeartbeatTimeout(), cfg.MQTT.Broker)

	ticker := time.NewTicker(cfg.Poll())
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	l := &loop{
		switches:   switches,
		debouncer:  logic.NewDebouncer(cfg.Debounce()),
		sampler:    sampler,
		samples:    cfg.Analog.Samples,
		spacing:    spacing,
		sleep:      time.Sleep,
		link:       hostLink,
		ctrl:       ctrl,
		publisher:  publisher,
		mqttStatus: publisher,
		tracker:    tracker,
		heartbeat:  cfg.SystemHeartbeat(),
	}
	err = runLoop(l, time.Now, ticker.C, sigCh)

	if berr := out.Blank(); berr != nil {
		log.Printf("blank outputs: %v", berr)
	}
	return err
}

// loop holds the collaborators of the control loop.
type loop struct {
	switches   gpio.Reader
	debouncer  *logic.Debouncer
	sampler    analog.Sampler // nil when no ADC is configured
	samples    int
	spacing    time.Duration
	sleep      func(time.Duration)
	link       link.Link
	ctrl       *controller.Controller
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	tracker    *status.Tracker
	heartbeat  time.Duration // 0 disables system heartbeats

	manual, limitClosed bool // last good raw switch reading
	switchFailing       bool
	analogFailing       bool
}

func runLoop(l *loop, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	lastHeartbeat := now()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if l.tracker != nil {
				l.refreshStatus()
				event.RawPayload = status.FormatStatusEvent(l.tracker.Snapshot(), "SHUTDOWN", signalName)
			}
			if err := l.publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			res := l.ctrl.Cycle(l.input(t))

			for _, line := range res.Responses {
				if err := l.link.WriteLine(line); err != nil {
					log.Printf("serial write error: %v", err)
				}
			}

			for _, event := range res.Events {
				log.Printf("event: %s (mode=%s host=%s color=%s)", event.Type, event.Mode, event.Liveness, event.Color.Hex())
				if err := l.publisher.Publish(event); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			if l.tracker != nil {
				l.refreshStatus()
			}

			// Check for heartbeat
			if l.heartbeat > 0 && t.Sub(lastHeartbeat) >= l.heartbeat {
				lastHeartbeat = t
				counts := l.ctrl.Counts()
				log.Printf("heartbeat: mode=%s host=%s commands=%d link_losses=%d",
					l.ctrl.Mode(), l.ctrl.Liveness(), counts.Commands, counts.LinkLosses)

				hbEvent := mqtt.SystemEvent{
					Timestamp: t,
					Event:     "HEARTBEAT",
				}
				if l.tracker != nil {
					hbEvent.RawPayload = status.FormatStatusEvent(l.tracker.Snapshot(), "HEARTBEAT", "")
				}
				if err := l.publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}

// input samples every source for one cycle. Read failures never skip the
// cycle: switches keep their last good value and a failed analog window
// leaves brightness where it was.
func (l *loop) input(t time.Time) controller.Input {
	manual, limitClosed, err := l.switches.Read()
	if err != nil {
		if !l.switchFailing {
			log.Printf("gpio read error: %v", err)
			l.switchFailing = true
		}
		manual, limitClosed = l.manual, l.limitClosed
	} else {
		if l.switchFailing {
			log.Printf("gpio read recovered")
			l.switchFailing = false
		}
		l.manual, l.limitClosed = manual, limitClosed
	}
	manual, limitClosed = l.debouncer.Process(logic.SwitchInput{
		Manual:      manual,
		LimitClosed: limitClosed,
		Time:        t,
	})

	var samples []uint16
	if l.sampler != nil {
		samples, err = analog.Window(l.sampler, l.samples, l.spacing, l.sleep)
		if err != nil {
			if !l.analogFailing {
				log.Printf("analog read error: %v", err)
				l.analogFailing = true
			}
		} else if l.analogFailing {
			log.Printf("analog read recovered")
			l.analogFailing = false
		}
	}

	return controller.Input{
		Time:        t,
		Data:        l.link.Poll(),
		Samples:     samples,
		Manual:      manual,
		LimitClosed: limitClosed,
	}
}

func (l *loop) refreshStatus() {
	l.tracker.Update(controllerState(l.ctrl))
	if l.mqttStatus != nil {
		l.tracker.SetMQTTConnected(l.mqttStatus.IsConnected())
	}
}

func controllerState(c *controller.Controller) status.State {
	manual, limitClosed := c.Switches()
	return status.State{
		Mode:        c.Mode(),
		Liveness:    c.Liveness(),
		Color:       c.LastApplied(),
		Brightness:  c.Brightness(),
		Manual:      manual,
		LimitClosed: limitClosed,
		Counts:      c.Counts(),
		LastContact: c.LastContact(),
	}
}
