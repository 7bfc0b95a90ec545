package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sweeney/led-arbiter/internal/hostlink"
	"github.com/sweeney/led-arbiter/internal/logic"
)

func newLEDCmd(opts *options) *cobra.Command {
	var brightness float64

	cmd := &cobra.Command{
		Use:   "led R G B",
		Short: "Set the colour from three decimal channels (0-255)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := parseChannels(args)
			if err != nil {
				return printError(cmd, "Invalid colour", err.Error(), "Channels are integers from 0 to 255.")
			}
			if brightness < 0 || brightness > 1 {
				return printError(cmd, "Invalid brightness", fmt.Sprintf("%v is outside [0,1]", brightness), "")
			}
			return opts.withClient(cmd, func(ctx context.Context, c *hostlink.Client) error {
				if err := claim(cmd, c); err != nil {
					return err
				}
				if _, err := c.SetBrightness(brightness); err != nil {
					return printError(cmd, "Write failed", err.Error(), "")
				}
				if _, err := c.SendRGB(col); err != nil {
					return printError(cmd, "Write failed", err.Error(), "")
				}
				return expectAck(ctx, cmd, c)
			})
		},
	}
	cmd.Flags().Float64Var(&brightness, "brightness", 1, "Scale applied to the colour (0-1)")
	return cmd
}

func parseChannels(args []string) (logic.Color, error) {
	var ch [3]uint8
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return logic.Color{}, fmt.Errorf("%q is not an integer", a)
		}
		if n < 0 || n > 255 {
			return logic.Color{}, fmt.Errorf("%d is outside 0-255", n)
		}
		ch[i] = uint8(n)
	}
	return logic.Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

func newHexCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hex RRGGBB",
		Short: "Set the colour from a hex triplet (leading # optional)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, ok := logic.ParseHex(args[0])
			if !ok {
				return printError(cmd, "Invalid colour", fmt.Sprintf("%q is not a hex colour", args[0]), "Use six hex digits, for example #FF8000.")
			}
			return opts.withClient(cmd, func(ctx context.Context, c *hostlink.Client) error {
				if err := claim(cmd, c); err != nil {
					return err
				}
				if err := c.SendHex(col); err != nil {
					return printError(cmd, "Write failed", err.Error(), "")
				}
				return expectAck(ctx, cmd, c)
			})
		},
	}
}

func newRainbowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rainbow",
		Short: "Show a hue gradient on the strip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *hostlink.Client) error {
				if err := claim(cmd, c); err != nil {
					return err
				}
				if err := c.Rainbow(); err != nil {
					return printError(cmd, "Write failed", err.Error(), "")
				}
				return expectAck(ctx, cmd, c)
			})
		},
	}
}

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the last colour the controller applied for the host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *hostlink.Client) error {
				col, err := c.Query(ctx)
				if err != nil {
					return printError(cmd, "Query failed", err.Error(), "")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s (%s)\n", swatch(col), col.Hex(), col)
				return nil
			})
		},
	}
}
