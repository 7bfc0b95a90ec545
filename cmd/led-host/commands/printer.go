package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sweeney/led-arbiter/internal/logic"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed, color.Bold)
	cyan  = color.New(color.FgCyan)
)

func isAck(line string) bool {
	return strings.HasPrefix(line, "OK ")
}

// printSuccess prints a green message with a checkmark prefix.
func printSuccess(cmd *cobra.Command, format string, a ...any) {
	green.Fprintf(cmd.OutOrStdout(), "✓ "+format, a...)
}

// printStep prints a cyan progress message.
func printStep(cmd *cobra.Command, format string, a ...any) {
	cyan.Fprintf(cmd.OutOrStdout(), "→ "+format, a...)
}

// printError prints a titled error to stderr and returns a plain error for cobra.
func printError(cmd *cobra.Command, title, explanation, suggestion string) error {
	w := cmd.ErrOrStderr()
	red.Fprintf(w, "%s\n", title)
	if explanation != "" {
		fmt.Fprintf(w, "%s\n", explanation)
	}
	if suggestion != "" {
		fmt.Fprintf(w, "\n%s\n", suggestion)
	}
	return fmt.Errorf("%s", title)
}

// swatch renders a colour as a block in the terminal's true-colour mode.
func swatch(c logic.Color) string {
	if color.NoColor {
		return ""
	}
	return color.RGB(int(c.R), int(c.G), int(c.B)).Sprint("██") + " "
}
