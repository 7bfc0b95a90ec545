// Command led-host drives an led-arbiter controller from the host side of the
// serial line protocol.
package main

import (
	"os"

	"github.com/sweeney/led-arbiter/cmd/led-host/commands"
)

func main() {
	// Errors are printed by the commands package with colour formatting
	if err := commands.NewRootCmd(commands.OpenSerial).Execute(); err != nil {
		os.Exit(1)
	}
}
