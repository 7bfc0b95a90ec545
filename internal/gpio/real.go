//go:build linux

package gpio

import (
	"fmt"

	"github.com/sweeney/led-arbiter/internal/logic"
	"github.com/warthog618/go-gpiocdev"
)

// Chip is the GPIO character device used for all lines.
const Chip = "gpiochip0"

// RealReader reads switches from actual hardware using Linux GPIO character device.
type RealReader struct {
	chip      *gpiocdev.Chip
	manualPin *gpiocdev.Line
	limitPin  *gpiocdev.Line
}

// NewRealReader creates a switch reader for actual Raspberry Pi hardware.
func NewRealReader(pinManual, pinLimit int) (*RealReader, error) {
	chip, err := gpiocdev.NewChip(Chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	// Switches close to ground, so request inputs with pull-up.
	manualLine, err := chip.RequestLine(pinManual, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request manual pin %d: %w", pinManual, err)
	}

	limitLine, err := chip.RequestLine(pinLimit, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		manualLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request limit pin %d: %w", pinLimit, err)
	}

	return &RealReader{
		chip:      chip,
		manualPin: manualLine,
		limitPin:  limitLine,
	}, nil
}

// Read returns the logical switch states.
// Inverts raw GPIO: raw 0 (pulled to ground) = asserted/closed.
func (r *RealReader) Read() (bool, bool, error) {
	manualRaw, err := r.manualPin.Value()
	if err != nil {
		return false, false, fmt.Errorf("read manual pin: %w", err)
	}

	limitRaw, err := r.limitPin.Value()
	if err != nil {
		return false, false, fmt.Errorf("read limit pin: %w", err)
	}

	return manualRaw == 0, limitRaw == 0, nil
}

// Close releases GPIO resources.
func (r *RealReader) Close() error {
	var errs []error

	if r.manualPin != nil {
		if err := r.manualPin.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close manual pin: %w", err))
		}
	}
	if r.limitPin != nil {
		if err := r.limitPin.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close limit pin: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealChannels drives the red, green and blue outputs.
// The character device has no PWM, so a channel is lit when its level
// reaches the threshold.
type RealChannels struct {
	chip      *gpiocdev.Chip
	lines     *gpiocdev.Lines
	threshold uint8
}

// NewRealChannels requests the three output lines, initially off.
func NewRealChannels(pins ChannelPins, threshold uint8) (*RealChannels, error) {
	chip, err := gpiocdev.NewChip(Chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	lines, err := chip.RequestLines([]int{pins.Red, pins.Green, pins.Blue}, gpiocdev.AsOutput(0, 0, 0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request channel pins %d/%d/%d: %w", pins.Red, pins.Green, pins.Blue, err)
	}

	return &RealChannels{chip: chip, lines: lines, threshold: threshold}, nil
}

// Set drives the three lines for c.
func (c *RealChannels) Set(color logic.Color) error {
	v := levels(color, c.threshold)
	if err := c.lines.SetValues(v[:]); err != nil {
		return fmt.Errorf("set channel lines: %w", err)
	}
	return nil
}

// Close turns the channels off and releases them.
// Lines are reconfigured as inputs so the LEDs stay dark after exit.
func (c *RealChannels) Close() error {
	var errs []error

	if c.lines != nil {
		if err := c.lines.SetValues([]int{0, 0, 0}); err != nil {
			errs = append(errs, fmt.Errorf("clear channel lines: %w", err))
		}
		if err := c.lines.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure channel lines: %w", err))
		}
		if err := c.lines.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close channel lines: %w", err))
		}
	}
	if c.chip != nil {
		if err := c.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
