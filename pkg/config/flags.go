package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline, so the same logical flag
// (e.g. --port on both "monitor" and "mock") cannot drift.
type Flag struct {
	// Name is the long flag name (e.g. "port").
	Name string

	// Shorthand is the one-letter short flag (e.g. "p"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "serial.port").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
const (
	FlagPort        = "port"
	FlagBaudRate    = "baud"
	FlagReadTimeout = "read-timeout-ms"
	FlagLabel       = "label"
	FlagCapacity    = "capacity"
	FlagQueueSize   = "queue-size"
	FlagYMin        = "y-min"
	FlagYMax        = "y-max"
	FlagLogLines    = "log-lines"
	FlagInterval    = "interval-ms"
	FlagBase        = "base"
	FlagJitter      = "jitter"
)

// Flags is the registry shared by every command.
var Flags = FlagSet{
	FlagPort: {
		Name: "port", Shorthand: "p", ViperKey: "serial.port",
		Description: "Serial device to open (e.g. /dev/ttyACM0, COM3)",
	},
	FlagBaudRate: {
		Name: "baud", Shorthand: "b", ViperKey: "serial.baud_rate",
		Description: "Baud rate",
	},
	FlagReadTimeout: {
		Name: "read-timeout-ms", ViperKey: "serial.read_timeout_ms",
		Description: "Read timeout in milliseconds; bounds how long a disconnect takes",
	},
	FlagLabel: {
		Name: "label", Shorthand: "l", ViperKey: "extract.label",
		Description: "Line prefix a reading follows (case-sensitive)",
	},
	FlagCapacity: {
		Name: "capacity", Shorthand: "n", ViperKey: "extract.window_capacity",
		Description: "Number of recent readings kept for the plot and statistics",
	},
	FlagQueueSize: {
		Name: "queue-size", ViperKey: "stream.queue_size",
		Description: "Lines buffered between reader and display before the oldest are dropped",
	},
	FlagYMin: {
		Name: "y-min", ViperKey: "display.y_min",
		Description: "Initial lower bound of the plot",
	},
	FlagYMax: {
		Name: "y-max", ViperKey: "display.y_max",
		Description: "Initial upper bound of the plot",
	},
	FlagLogLines: {
		Name: "log-lines", ViperKey: "display.log_lines",
		Description: "Raw lines kept in the log pane",
	},
	FlagInterval: {
		Name: "interval-ms", ViperKey: "mock.interval_ms",
		Description: "Milliseconds between mock readings",
	},
	FlagBase: {
		Name: "base", ViperKey: "mock.base",
		Description: "Lowest mock reading",
	},
	FlagJitter: {
		Name: "jitter", ViperKey: "mock.jitter",
		Description: "Random spread added to the mock base",
	},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaults().GetString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddIntFlag registers an int flag on cmd from the given FlagSet.
func AddIntFlag(cmd *cobra.Command, fs FlagSet, key string, target *int) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaults().GetInt(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().IntVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().IntVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddFloatFlag registers a float64 flag on cmd from the given FlagSet.
func AddFloatFlag(cmd *cobra.Command, fs FlagSet, key string, target *float64) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaults().GetFloat64(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().Float64VarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().Float64Var(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaults returns a viper instance holding only NewDefaultConfig values.
func defaults() *viper.Viper {
	v := viper.New()
	setViperDefaults(v)
	return v
}
