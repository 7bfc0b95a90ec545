package main

import (
	"fmt"
	"io"
	"time"

	"github.com/sweeney/led-arbiter/internal/analog"
	"github.com/sweeney/led-arbiter/internal/gpio"
	"github.com/sweeney/led-arbiter/internal/logic"
)

// printReadings writes one raw reading of every local input.
func printReadings(w io.Writer, switches gpio.Reader, sampler analog.Sampler, n int, spacing time.Duration, fullScale float64) error {
	manual, limitClosed, err := switches.Read()
	if err != nil {
		return fmt.Errorf("read gpio: %w", err)
	}
	fmt.Fprintf(w, "manual: %s, limit: %s\n", onOff(manual), closedOpen(limitClosed))

	if sampler == nil {
		fmt.Fprintln(w, "brightness: no ADC configured")
		return nil
	}
	window, err := analog.Window(sampler, n, spacing, time.Sleep)
	if err != nil {
		return fmt.Errorf("read analog: %w", err)
	}
	median := logic.Median(window)
	level := min(max(float64(median)/fullScale, 0), 1)
	fmt.Fprintf(w, "brightness: raw median %d (%.0f%%)\n", median, level*100)
	return nil
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

func closedOpen(closed bool) string {
	if closed {
		return "CLOSED"
	}
	return "OPEN"
}
