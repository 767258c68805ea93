// Package serialscopecmder wires the serialscope root command.
package serialscopecmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/papercomputeco/serialscope/cmd/serialscope/config"
	mockcmder "github.com/papercomputeco/serialscope/cmd/serialscope/mock"
	monitorcmder "github.com/papercomputeco/serialscope/cmd/serialscope/monitor"
	portscmder "github.com/papercomputeco/serialscope/cmd/serialscope/ports"
	versioncmder "github.com/papercomputeco/serialscope/cmd/version"
)

const serialscopeLongDesc string = `Serialscope is a live plotter for serial devices.

It reads newline-delimited text from a serial port, shows every line, and
plots the number that follows a label such as "Distance:" along with the
min, max, mean and standard deviation of the latest readings.

Commands:
  serialscope ports      List serial ports
  serialscope monitor    Connect and plot readings
  serialscope mock       Send mock readings for testing
  serialscope config     Manage persistent configuration`

const serialscopeShortDesc string = "Serialscope - serial data plotter"

func NewSerialscopeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "serialscope",
		Short:        serialscopeShortDesc,
		Long:         serialscopeLongDesc,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .serialscope/ config directory")

	// Add subcommands
	cmd.AddCommand(monitorcmder.NewMonitorCmd())
	cmd.AddCommand(portscmder.NewPortsCmd())
	cmd.AddCommand(mockcmder.NewMockCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
