// Package monitorcmder provides the monitor command: connect to a serial
// device, show the raw line stream, and plot the readings extracted from it
// with rolling statistics.
package monitorcmder

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/serialscope/pkg/chart"
	"github.com/papercomputeco/serialscope/pkg/cliui"
	"github.com/papercomputeco/serialscope/pkg/config"
	"github.com/papercomputeco/serialscope/pkg/dotdir"
	"github.com/papercomputeco/serialscope/pkg/logger"
	"github.com/papercomputeco/serialscope/pkg/serialport"
	"github.com/papercomputeco/serialscope/pkg/session"
	"github.com/papercomputeco/serialscope/pkg/window"
)

const monitorLongDesc string = `Monitor a serial device.

Opens the device, shows every received line, and plots the number that
follows the configured label (default "Distance:") together with the
minimum, maximum, mean and standard deviation of the most recent readings.

Settings come from flags, SERIALSCOPE_* environment variables and
config.toml, in that order. When no port is given and exactly one port is
present, that port is used.

When stdout is not a terminal, or with --plain, lines are printed as they
arrive and every reading is logged with the current statistics.

Keys:
  c    clear the plot, statistics and log
  q    disconnect and quit

Examples:
  serialscope monitor /dev/ttyACM0
  serialscope monitor --port COM3 --baud 9600
  serialscope monitor -p /dev/pts/3 --label "Temperature:" --capacity 120
  serialscope monitor --plain | tee capture.txt`

const monitorShortDesc string = "Plot readings from a serial device"

// monitorFlags are the registry keys bound to viper for this command.
var monitorFlags = []string{
	config.FlagPort,
	config.FlagBaudRate,
	config.FlagReadTimeout,
	config.FlagLabel,
	config.FlagCapacity,
	config.FlagQueueSize,
	config.FlagYMin,
	config.FlagYMax,
	config.FlagLogLines,
}

type monitorCommander struct {
	flags struct {
		port        string
		baud        int
		readTimeout int
		label       string
		capacity    int
		queueSize   int
		yMin        float64
		yMax        float64
		logLines    int
	}

	plain     bool
	debug     bool
	configDir string
	cfg       *config.Config
}

// listPorts enumerates ports for name resolution and error hints.
var listPorts = serialport.List

func NewMonitorCmd() *cobra.Command {
	cmder := &monitorCommander{}

	cmd := &cobra.Command{
		Use:   "monitor [port]",
		Short: monitorShortDesc,
		Long:  monitorLongDesc,
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cmder.debug, _ = cmd.Flags().GetBool("debug")
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return err
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, monitorFlags)

			cmder.cfg = config.FromViper(v)
			if len(args) == 1 {
				cmder.cfg.Serial.Port = args[0]
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagPort, &cmder.flags.port)
	config.AddIntFlag(cmd, config.Flags, config.FlagBaudRate, &cmder.flags.baud)
	config.AddIntFlag(cmd, config.Flags, config.FlagReadTimeout, &cmder.flags.readTimeout)
	config.AddStringFlag(cmd, config.Flags, config.FlagLabel, &cmder.flags.label)
	config.AddIntFlag(cmd, config.Flags, config.FlagCapacity, &cmder.flags.capacity)
	config.AddIntFlag(cmd, config.Flags, config.FlagQueueSize, &cmder.flags.queueSize)
	config.AddFloatFlag(cmd, config.Flags, config.FlagYMin, &cmder.flags.yMin)
	config.AddFloatFlag(cmd, config.Flags, config.FlagYMax, &cmder.flags.yMax)
	config.AddIntFlag(cmd, config.Flags, config.FlagLogLines, &cmder.flags.logLines)
	cmd.Flags().BoolVar(&cmder.plain, "plain", false, "Print lines and readings instead of drawing the plot")

	return cmd
}

func (c *monitorCommander) run(cmd *cobra.Command) error {
	interactive := !c.plain && cliui.IsTerminal(os.Stdout)

	log, closeLog, err := c.newLogger(interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	known, err := listPorts()
	if err != nil {
		log.Debug("port enumeration failed", "error", err)
	}

	if strings.TrimSpace(c.cfg.Serial.Port) == "" && len(known) == 1 {
		c.cfg.Serial.Port = known[0].Name
		log.Info("using the only available port", "port", serialport.DisplayName(known[0]))
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	win, err := window.New(
		window.WithCapacity(c.cfg.Extract.WindowCapacity),
		window.WithLabel(c.cfg.Extract.Label),
	)
	if err != nil {
		return err
	}

	sess, err := session.New(session.Config{
		Serial:    c.cfg.SerialSettings(known),
		QueueSize: c.cfg.Stream.QueueSize,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	state := newMonitorState(
		win,
		chart.NewAxis(c.cfg.Display.YMin, c.cfg.Display.YMax),
		c.cfg.Display.LogLines,
		sess.Source(),
		sess.BaudRate(),
	)

	ctx := cmd.Context()
	if err := sess.Start(ctx); err != nil {
		return err
	}

	if interactive {
		err = runTUI(ctx, sess, state)
		sess.Stop()
	} else {
		runPlain(ctx, cmd.OutOrStdout(), sess, state, log)
	}
	sess.Wait()

	if err != nil {
		return err
	}

	if state.connectionFailed() {
		printAvailablePorts(cmd.ErrOrStderr(), known)
	}

	return state.err
}

// newLogger sends logs to the log file in the config dir. The plain
// monitor also prints them to stderr.
func (c *monitorCommander) newLogger(interactive bool) (*slog.Logger, func(), error) {
	f, err := dotdir.NewManager().OpenLog(c.configDir)
	if err != nil {
		return nil, nil, err
	}

	file := logger.New(
		logger.WithDebug(c.debug),
		logger.WithJSON(true),
		logger.WithWriter(f),
	)

	closeFn := func() { _ = f.Close() }

	if interactive {
		return file, closeFn, nil
	}

	console := logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(true),
		logger.WithWriter(os.Stderr),
	)

	return logger.Multi(console, file), closeFn, nil
}

func printAvailablePorts(w io.Writer, known []serialport.Enumerated) {
	fmt.Fprintln(w, "Available ports:")
	if len(known) == 0 {
		fmt.Fprintln(w, "  No serial ports found.")
		return
	}
	for _, p := range known {
		fmt.Fprintf(w, "  %s\n", serialport.DisplayName(p))
	}
}
