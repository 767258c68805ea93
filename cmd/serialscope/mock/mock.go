// Package mockcmder provides the mock command, which writes synthetic
// readings to a serial port so the monitor can be tried without hardware.
package mockcmder

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/serialscope/pkg/cliui"
	"github.com/papercomputeco/serialscope/pkg/config"
	"github.com/papercomputeco/serialscope/pkg/logger"
	"github.com/papercomputeco/serialscope/pkg/mock"
	"github.com/papercomputeco/serialscope/pkg/serialport"
)

const mockLongDesc string = `Send mock readings to a serial port.

Writes "<label> <value> cm" once per interval, where value is the base plus
a random amount up to the jitter, until interrupted. Pair it with socat to
get two connected ptys:

  socat -d -d pty,raw,echo=0 pty,raw,echo=0

then run the mock on one end and the monitor on the other.

Examples:
  serialscope mock /dev/pts/2
  serialscope mock -p /dev/pts/2 --interval-ms 200 --base 10 --jitter 30
  serialscope mock /dev/pts/2 --label "Temperature:"`

const mockShortDesc string = "Send mock readings to a serial port"

var mockFlags = []string{
	config.FlagPort,
	config.FlagBaudRate,
	config.FlagLabel,
	config.FlagInterval,
	config.FlagBase,
	config.FlagJitter,
}

type mockCommander struct {
	flags struct {
		port     string
		baud     int
		label    string
		interval int
		base     float64
		jitter   float64
	}

	debug bool
	cfg   *config.Config
}

func NewMockCmd() *cobra.Command {
	cmder := &mockCommander{}

	cmd := &cobra.Command{
		Use:   "mock [port]",
		Short: mockShortDesc,
		Long:  mockLongDesc,
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cmder.debug, _ = cmd.Flags().GetBool("debug")
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, mockFlags)

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
	config.AddStringFlag(cmd, config.Flags, config.FlagLabel, &cmder.flags.label)
	config.AddIntFlag(cmd, config.Flags, config.FlagInterval, &cmder.flags.interval)
	config.AddFloatFlag(cmd, config.Flags, config.FlagBase, &cmder.flags.base)
	config.AddFloatFlag(cmd, config.Flags, config.FlagJitter, &cmder.flags.jitter)

	return cmd
}

func (c *mockCommander) run(cmd *cobra.Command) error {
	log := logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(true),
		logger.WithPrefix("mock"),
		logger.WithWriter(cmd.ErrOrStderr()),
	)

	settings := c.cfg.SerialSettings(nil)

	var port serialport.Port
	err := cliui.Step(os.Stderr, fmt.Sprintf("Opening %s @ %d baud", settings.Source.Device(), settings.BaudRate), func() error {
		var openErr error
		port, openErr = serialport.Open(settings)
		return openErr
	})
	if err != nil {
		return err
	}
	defer port.Close()

	sender, err := mock.NewSender(port,
		mock.WithLabel(c.cfg.Extract.Label),
		mock.WithRange(c.cfg.Mock.Base, c.cfg.Mock.Jitter),
		mock.WithInterval(c.cfg.MockInterval()),
		mock.WithLogger(log),
	)
	if err != nil {
		return err
	}

	log.Info("sending mock data, press Ctrl+C to stop", "interval", c.cfg.MockInterval().String())

	if err := sender.Run(cmd.Context()); err != nil {
		return err
	}

	log.Info("stopped", "sent", sender.Sent())
	return nil
}
