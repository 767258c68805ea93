// Package portscmder provides the ports command, which lists the serial
// ports present on the system.
package portscmder

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/serialscope/pkg/cliui"
	"github.com/papercomputeco/serialscope/pkg/serialport"
)

const portsLongDesc string = `List serial ports.

Shows every port the operating system reports, sorted by device name, with
a short description. Ports that are not listed (for example a pty created by
socat) can still be passed to "serialscope monitor" by path.

Examples:
  serialscope ports
  serialscope ports --plain`

const portsShortDesc string = "List serial ports"

const noPortsHint = `No serial ports found.

Plug in the device, or create a virtual pair for testing:
  socat -d -d pty,raw,echo=0 pty,raw,echo=0`

type portsCommander struct {
	plain bool
}

// listPorts is replaced in tests.
var listPorts = serialport.List

func NewPortsCmd() *cobra.Command {
	cmder := &portsCommander{}

	cmd := &cobra.Command{
		Use:   "ports",
		Short: portsShortDesc,
		Long:  portsLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&cmder.plain, "plain", false, "Print one \"device: description\" per line")

	return cmd
}

func (c *portsCommander) run(out io.Writer) error {
	ports, err := listPorts()
	if err != nil {
		return err
	}

	if len(ports) == 0 {
		fmt.Fprintln(out, noPortsHint)
		return nil
	}

	if c.plain || !cliui.IsTerminal(out) {
		for _, p := range ports {
			fmt.Fprintln(out, serialport.DisplayName(p))
		}
		return nil
	}

	rendered, err := cliui.RenderMarkdown(portsMarkdown(ports), 0)
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)

	return nil
}

func portsMarkdown(ports []serialport.Enumerated) string {
	rows := make([][]string, 0, len(ports))
	for _, p := range ports {
		rows = append(rows, []string{"`" + p.Device() + "`", p.Description()})
	}
	return cliui.MarkdownTable([]string{"Port", "Description"}, rows)
}
