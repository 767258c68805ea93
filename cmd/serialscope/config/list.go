package configcmder

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/serialscope/pkg/cliui"
	"github.com/papercomputeco/serialscope/pkg/config"
)

const listLongDesc string = `List all configuration values.

Prints every supported key with the value stored in config.toml, quoted,
or <not set> when the file leaves it empty. Unset keys fall back to
built-in defaults, environment variables and flags at run time.

Examples:
  serialscope config list`

const listShortDesc string = "List all configuration values"

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runList(cmd.OutOrStdout(), configDir)
		},
	}

	return cmd
}

func runList(out io.Writer, configDir string) error {
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if target := cfger.GetTarget(); target != "" {
		fmt.Fprintf(out, "Using config file: %s\n\n", target)
	} else {
		fmt.Fprint(out, "No config file found. Using default config.\n\n")
	}

	keys := config.ValidConfigKeys()
	rows := make([][2]string, 0, len(keys))
	for _, key := range keys {
		value, err := cfger.GetConfigValue(key)
		if err != nil {
			return err
		}

		if value == "" {
			value = "<not set>"
		} else {
			value = strconv.Quote(value)
		}
		rows = append(rows, [2]string{key, value})
	}

	cliui.WriteAligned(out, " = ", rows)

	return nil
}
