package monitorcmder

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/serialscope/pkg/serialport"
)

// newTestCmd wraps the monitor command in a root carrying the global flags.
func newTestCmd(ports []serialport.Enumerated, args ...string) (*cobra.Command, *bytes.Buffer) {
	root := &cobra.Command{Use: "serialscope"}
	root.PersistentFlags().Bool("debug", false, "")
	root.PersistentFlags().String("config-dir", "", "")

	cmd := NewMonitorCmd()
	root.AddCommand(cmd)

	stderr := &bytes.Buffer{}
	root.SetOut(&bytes.Buffer{})
	root.SetErr(stderr)
	root.SetArgs(append([]string{"monitor"}, args...))

	listPorts = func() ([]serialport.Enumerated, error) { return ports, nil }

	return root, stderr
}

var _ = Describe("NewMonitorCmd", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "serialscope-monitor-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { listPorts = serialport.List })
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("creates a command with the correct use string", func() {
		cmd := NewMonitorCmd()
		Expect(cmd.Use).To(Equal("monitor [port]"))
		Expect(cmd.Flags().Lookup("port")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("plain")).NotTo(BeNil())
	})

	It("rejects a missing port before opening anything", func() {
		cmd, _ := newTestCmd(nil, "--plain", "--config-dir", tmpDir)
		err := cmd.Execute()

		var cerr *serialport.ConfigurationError
		Expect(errors.As(err, &cerr)).To(BeTrue())
		Expect(cerr.Field).To(Equal("port"))
	})

	It("rejects an invalid capacity", func() {
		cmd, _ := newTestCmd(nil, "/dev/null", "--plain", "--capacity", "0", "--config-dir", tmpDir)
		err := cmd.Execute()

		var cerr *serialport.ConfigurationError
		Expect(errors.As(err, &cerr)).To(BeTrue())
		Expect(cerr.Field).To(Equal("window capacity"))
	})

	It("reports a connection error and lists the available ports", func() {
		missing := filepath.Join(tmpDir, "no-such-tty")
		ports := []serialport.Enumerated{{Name: "/dev/ttyACM0", Desc: "Arduino Uno"}}

		cmd, stderr := newTestCmd(ports, missing, "--plain", "--read-timeout-ms", "50", "--config-dir", tmpDir)
		err := cmd.Execute()

		var cerr *serialport.ConnectionError
		Expect(errors.As(err, &cerr)).To(BeTrue())
		Expect(cerr.Device).To(Equal(missing))
		Expect(cerr.Kind).To(Equal(serialport.FailureNotFound))

		Expect(stderr.String()).To(ContainSubstring("Available ports:"))
		Expect(stderr.String()).To(ContainSubstring("/dev/ttyACM0: Arduino Uno"))

		_, err = os.Stat(filepath.Join(tmpDir, "serialscope.log"))
		Expect(err).NotTo(HaveOccurred())
	})

	It("connects to the only enumerated port when none is given", func() {
		only := filepath.Join(tmpDir, "ghost-tty")
		ports := []serialport.Enumerated{{Name: only, Desc: "USB 2341:0043"}}

		cmd, _ := newTestCmd(ports, "--plain", "--read-timeout-ms", "50", "--config-dir", tmpDir)
		err := cmd.Execute()

		var cerr *serialport.ConnectionError
		Expect(errors.As(err, &cerr)).To(BeTrue())
		Expect(cerr.Device).To(Equal(only))
	})

	It("does not guess between several ports", func() {
		ports := []serialport.Enumerated{
			{Name: "/dev/ttyACM0", Desc: "Arduino Uno"},
			{Name: "/dev/ttyUSB0", Desc: "CP2102"},
		}

		cmd, _ := newTestCmd(ports, "--plain", "--config-dir", tmpDir)
		err := cmd.Execute()

		var cerr *serialport.ConfigurationError
		Expect(errors.As(err, &cerr)).To(BeTrue())
		Expect(cerr.Field).To(Equal("port"))
	})
})
