package configcmder

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/serialscope/pkg/cliui"
	"github.com/papercomputeco/serialscope/pkg/config"
)

const setLongDesc string = `Set a configuration value.

Sets the given key to the provided value in the config.toml file
stored in the .serialscope/ directory. Keys use dotted notation matching
the TOML section structure. Values are checked against the key's type but
not against the monitor's limits; "serialscope monitor" reports those.

Valid keys:
  serial.port, serial.baud_rate, serial.read_timeout_ms,
  extract.label, extract.window_capacity,
  stream.queue_size,
  display.y_min, display.y_max, display.log_lines,
  mock.interval_ms, mock.base, mock.jitter

Examples:
  serialscope config set serial.port /dev/ttyACM0
  serialscope config set serial.baud_rate 9600
  serialscope config set display.y_max 400`

const setShortDesc string = "Set a configuration value"

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: setShortDesc,
		Long:  setLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runSet(cmd.OutOrStdout(), args[0], args[1], configDir)
		},
		ValidArgsFunction: completeKeys,
	}

	return cmd
}

func runSet(out io.Writer, key, value, configDir string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	printTarget(out, cfger)

	if err := cfger.SetConfigValue(key, value); err != nil {
		return err
	}

	fmt.Fprintf(out, "  %s Set %s = %s\n\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(key),
		cliui.ValueStyle.Render(value),
	)
	return nil
}
