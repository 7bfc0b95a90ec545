package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sweeney/led-arbiter/internal/hostlink"
)

func newFMSCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fms CODE",
		Short: "Show the colour for an FMSControlData word",
		Long: `fms decodes a field management system control word and sends the matching
status colour: grey with no data, green while disabled, blue in auto, red in
teleop and amber in test.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := strconv.Atoi(args[0])
			if err != nil {
				return printError(cmd, "Invalid code", fmt.Sprintf("%q is not an integer", args[0]), "")
			}
			col, state := hostlink.FMSColor(code)
			attached := "no"
			if state.Attached {
				attached = "yes"
			}
			printStep(cmd, "%s, FMS attached: %s\n", state, attached)

			return opts.withClient(cmd, func(ctx context.Context, c *hostlink.Client) error {
				if err := claim(cmd, c); err != nil {
					return err
				}
				if _, err := c.SendRGB(col); err != nil {
					return printError(cmd, "Write failed", err.Error(), "")
				}
				return expectAck(ctx, cmd, c)
			})
		},
	}
}
