package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sweeney/led-arbiter/internal/hostlink"
	"github.com/sweeney/led-arbiter/internal/logic"
)

func newKeepAliveCmd(opts *options) *cobra.Command {
	var (
		interval time.Duration
		hex      string
	)

	cmd := &cobra.Command{
		Use:   "keepalive",
		Short: "Send heartbeats until interrupted, keeping the controller in HOST mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var col logic.Color
			if hex != "" {
				var ok bool
				if col, ok = logic.ParseHex(hex); !ok {
					return printError(cmd, "Invalid colour", hex+" is not a hex colour", "")
				}
			}

			c, err := hostlink.Dial(opts.dialer())
			if err != nil {
				return printError(cmd, "Cannot open serial port", err.Error(),
					"Check the --port flag and that the controller is plugged in.")
			}
			defer c.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if hex != "" {
				if err := claim(cmd, c); err != nil {
					return err
				}
				if err := c.SendHex(col); err != nil {
					return printError(cmd, "Write failed", err.Error(), "")
				}
			}

			printStep(cmd, "sending heartbeats every %v on %s (Ctrl-C to stop)\n", interval, opts.port)
			c.KeepAlive(ctx, interval)
			if cmd.Context().Err() == nil {
				printSuccess(cmd, "stopped\n")
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", hostlink.DefaultKeepAlive, "Heartbeat interval (must stay under the controller's 2s timeout)")
	cmd.Flags().StringVar(&hex, "color", "", "Optional colour to set before holding (hex)")
	return cmd
}
