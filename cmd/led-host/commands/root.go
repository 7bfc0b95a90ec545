// Package commands implements the led-host CLI.
package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/sweeney/led-arbiter/internal/hostlink"
	"github.com/sweeney/led-arbiter/internal/link"
)

// Opener opens the link to the controller.
type Opener func(port string, baud int) (link.Link, error)

// OpenSerial opens a real serial port.
func OpenSerial(port string, baud int) (link.Link, error) {
	return link.Open(link.Config{
		Port:        port,
		BaudRate:    baud,
		ReadTimeout: 50 * time.Millisecond,
	})
}

type options struct {
	port    string
	baud    int
	timeout time.Duration
	open    Opener
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd(open Opener) *cobra.Command {
	opts := &options{open: open}

	root := &cobra.Command{
		Use:   "led-host",
		Short: "Send colour commands and heartbeats to an led-arbiter controller",
		Long: `led-host speaks the controller's line protocol over a serial port.

The controller applies colour commands at once, but outside HOST mode its
local fallback colour takes over again within one cycle. led, hex and
rainbow therefore send a heartbeat first. Use keepalive to hold the
controller in HOST mode.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVarP(&opts.port, "port", "p", "/dev/ttyACM0", "Serial port of the controller")
	root.PersistentFlags().IntVarP(&opts.baud, "baud", "b", link.DefaultBaud, "Serial baud rate")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 2*time.Second, "How long to wait for a response")

	root.AddCommand(
		newLEDCmd(opts),
		newHexCmd(opts),
		newRainbowCmd(opts),
		newGetCmd(opts),
		newFMSCmd(opts),
		newKeepAliveCmd(opts),
	)
	return root
}

func (o *options) dialer() hostlink.Dialer {
	return func() (link.Link, error) {
		return o.open(o.port, o.baud)
	}
}

// withClient opens the link, runs fn and closes the link again.
func (o *options) withClient(cmd *cobra.Command, fn func(ctx context.Context, c *hostlink.Client) error) error {
	c, err := hostlink.Dial(o.dialer())
	if err != nil {
		return printError(cmd, "Cannot open serial port", err.Error(),
			"Check the --port flag and that the controller is plugged in.")
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	defer cancel()
	return fn(ctx, c)
}

// claim sends a heartbeat so the controller hands the actuator to the host.
func claim(cmd *cobra.Command, c *hostlink.Client) error {
	if err := c.Heartbeat(); err != nil {
		return printError(cmd, "Write failed", err.Error(), "")
	}
	return nil
}

// expectAck waits for the controller's reply to the last command.
func expectAck(ctx context.Context, cmd *cobra.Command, c *hostlink.Client) error {
	line, err := c.ReadResponse(ctx)
	if err != nil {
		return printError(cmd, "No response from controller", err.Error(),
			"Is the controller running at the expected baud rate?")
	}
	if !isAck(line) {
		return printError(cmd, "Controller rejected the command", line, "")
	}
	printSuccess(cmd, "%s\n", line)
	return nil
}
