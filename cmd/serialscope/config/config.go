// Package configcmder provides the config command for managing persistent
// serialscope configuration stored in the .serialscope/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent serialscope configuration.

Configuration is stored as config.toml in the .serialscope/ directory and
provides default values for command flags. CLI flags and SERIALSCOPE_*
environment variables take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  serial.port, serial.baud_rate, serial.read_timeout_ms,
  extract.label, extract.window_capacity,
  stream.queue_size,
  display.y_min, display.y_max, display.log_lines,
  mock.interval_ms, mock.base, mock.jitter

Use subcommands to get, set, or list configuration values:
  serialscope config set <key> <value>    Set a configuration value
  serialscope config get <key>            Get a configuration value
  serialscope config list                 List all configuration values

Examples:
  serialscope config set serial.port /dev/ttyACM0
  serialscope config set extract.label "Temperature:"
  serialscope config get serial.baud_rate
  serialscope config list`

const configShortDesc string = "Manage persistent serialscope configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
