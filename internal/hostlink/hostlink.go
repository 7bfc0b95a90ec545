// Package hostlink is the host side of the line protocol: it sends colour
// commands and heartbeats to the controller and reads its responses.
package hostlink

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sweeney/led-arbiter/internal/link"
	"github.com/sweeney/led-arbiter/internal/logic"
)

// HeartbeatMessage is what the host sends to keep the controller in HOST mode.
// Older hosts sent a literal "/n" after the word; the controller matches by
// prefix so either form works.
const HeartbeatMessage = logic.NameHeartbeat

// DefaultKeepAlive is comfortably inside the controller's 2 s timeout.
const DefaultKeepAlive = time.Second

const pollInterval = 5 * time.Millisecond

// ErrUnexpectedResponse is returned when the controller answers with an error line.
var ErrUnexpectedResponse = errors.New("hostlink: unexpected response")

// Dialer opens a fresh link to the controller.
type Dialer func() (link.Link, error)

// Client speaks the line protocol over a link.Link.
type Client struct {
	link link.Link
	dial Dialer // nil when the client cannot reopen its link

	mu         sync.Mutex
	reader     *logic.LineReader
	pending    []string
	brightness float64
	requested  logic.Color // colour before brightness scaling
	hasReq     bool
	sent       logic.Color // last LED triple actually written
	hasSent    bool
}

// New creates a Client at full brightness.
func New(l link.Link) *Client {
	return &Client{
		link:       l,
		reader:     logic.NewLineReader(),
		brightness: 1,
	}
}

// Dial opens a link with dial and returns a Client that reopens it the same
// way after a write fails. The failed write is not retried; the next one
// reconnects first.
func Dial(dial Dialer) (*Client, error) {
	l, err := dial()
	if err != nil {
		return nil, err
	}
	c := New(l)
	c.dial = dial
	return c, nil
}

// SetBrightness sets the scale applied by SendRGB, clamped to [0,1], and
// resends the last requested colour at the new level.
func (c *Client) SetBrightness(f float64) (bool, error) {
	c.mu.Lock()
	c.brightness = min(max(f, 0), 1)
	req, has := c.requested, c.hasReq
	c.mu.Unlock()

	if !has {
		return false, nil
	}
	return c.SendRGB(req)
}

// Brightness returns the current scale.
func (c *Client) Brightness() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.brightness
}

// SendRGB sends LED r g b scaled by the brightness. Nothing is written when
// the scaled colour equals the last one sent; the bool reports whether a
// line went out.
func (c *Client) SendRGB(col logic.Color) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requested, c.hasReq = col, true
	scaled := col.Scale(c.brightness)
	if c.hasSent && scaled == c.sent {
		return false, nil
	}
	if err := c.writeLocked(fmt.Sprintf("%s %s", logic.NameLED, scaled)); err != nil {
		return false, fmt.Errorf("send LED: %w", err)
	}
	c.sent, c.hasSent = scaled, true
	return true, nil
}

// SendHex sends HEX #RRGGBB unscaled.
func (c *Client) SendHex(col logic.Color) error {
	c.forget()
	return c.write(fmt.Sprintf("%s %s", logic.NameHex, col.Hex()))
}

// Rainbow asks the controller for the strip gradient.
func (c *Client) Rainbow() error {
	c.forget()
	return c.write(logic.NameRainbow)
}

// forget lets the next SendRGB through after another command changed the output.
func (c *Client) forget() {
	c.mu.Lock()
	c.hasSent = false
	c.mu.Unlock()
}

// Heartbeat sends one heartbeat line.
func (c *Client) Heartbeat() error {
	return c.write(HeartbeatMessage)
}

func (c *Client) write(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.writeLocked(line); err != nil {
		return fmt.Errorf("send %q: %w", line, err)
	}
	return nil
}

// writeLocked writes one line, reopening a dropped link first. A failed
// write drops the link when the client can reopen it.
func (c *Client) writeLocked(line string) error {
	if c.link == nil {
		if err := c.reconnectLocked(); err != nil {
			return err
		}
	}
	if err := c.link.WriteLine(line); err != nil {
		if c.dial != nil {
			_ = c.link.Close()
			c.link = nil
		}
		return err
	}
	return nil
}

func (c *Client) reconnectLocked() error {
	l, err := c.dial()
	if err != nil {
		return fmt.Errorf("reopen link: %w", err)
	}
	c.link = l
	c.reader = logic.NewLineReader()
	c.pending = nil
	c.hasSent = false
	log.Printf("hostlink: link reopened")
	return nil
}

// ReadResponse waits for the next complete line from the controller.
func (c *Client) ReadResponse(ctx context.Context) (string, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if line, ok := c.next(); ok {
			return line, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) next() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.link == nil {
		return "", false
	}
	if data := c.link.Poll(); len(data) > 0 {
		c.pending = append(c.pending, c.reader.FeedAll(data)...)
	}
	if len(c.pending) == 0 {
		return "", false
	}
	line := c.pending[0]
	c.pending = c.pending[1:]
	return line, true
}

// Query sends GETRGB and waits for the RGBIS report. Acknowledgements for
// earlier commands that arrive first are skipped.
func (c *Client) Query(ctx context.Context) (logic.Color, error) {
	if err := c.write(logic.NameQuery); err != nil {
		return logic.Color{}, err
	}
	for {
		line, err := c.ReadResponse(ctx)
		if err != nil {
			return logic.Color{}, fmt.Errorf("waiting for %s: %w", logic.ReportPrefix, err)
		}
		if col, ok := logic.ParseColorReport(line); ok {
			return col, nil
		}
		if line == logic.RespUnknown {
			return logic.Color{}, fmt.Errorf("%w: %q", ErrUnexpectedResponse, line)
		}
	}
}

// KeepAlive sends a heartbeat immediately and then every interval until ctx
// is cancelled. Write failures are logged and retried on the next tick,
// reopening the link first when the client was created with Dial.
func (c *Client) KeepAlive(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultKeepAlive
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	failing := false
	for {
		err := c.Heartbeat()
		switch {
		case err != nil && !failing:
			log.Printf("hostlink: heartbeat failed: %v", err)
			failing = true
		case err == nil && failing:
			log.Printf("hostlink: heartbeat recovered")
			failing = false
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Close closes the underlying link.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.link == nil {
		return nil
	}
	return c.link.Close()
}
