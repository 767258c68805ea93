package cliui_test

import (
	"bytes"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/serialscope/pkg/cliui"
)

var _ = Describe("Step", func() {
	It("prints a success mark and returns nil", func() {
		var buf bytes.Buffer
		err := cliui.Step(&buf, "Opening /dev/ttyACM0", func() error { return nil })
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("Opening /dev/ttyACM0"))
		Expect(buf.String()).To(ContainSubstring(cliui.SuccessMark))
		Expect(buf.String()).To(HaveSuffix("\n"))
	})

	It("does not animate when the writer is not a terminal", func() {
		var buf bytes.Buffer
		Expect(cliui.Step(&buf, "Opening /dev/pts/4", func() error {
			time.Sleep(200 * time.Millisecond)
			return nil
		})).To(Succeed())
		Expect(strings.Count(buf.String(), "Opening /dev/pts/4")).To(Equal(1))
	})

	It("passes the error through with a fail mark", func() {
		var buf bytes.Buffer
		boom := errors.New("port busy")
		err := cliui.Step(&buf, "Opening COM3", func() error { return boom })
		Expect(err).To(MatchError(boom))
		Expect(buf.String()).To(ContainSubstring(cliui.FailMark))
	})
})

var _ = Describe("FormatDuration", func() {
	It("uses milliseconds below one second", func() {
		Expect(cliui.FormatDuration(12 * time.Millisecond)).To(Equal("12ms"))
	})

	It("uses seconds with one decimal above one second", func() {
		Expect(cliui.FormatDuration(3200 * time.Millisecond)).To(Equal("3.2s"))
	})
})

var _ = Describe("FormatReading", func() {
	It("uses two decimals", func() {
		Expect(cliui.FormatReading(12.345, true)).To(Equal("12.35"))
		Expect(cliui.FormatReading(-3, true)).To(Equal("-3.00"))
	})

	It("shows N/A when unavailable", func() {
		Expect(cliui.FormatReading(0, false)).To(Equal("N/A"))
	})
})

var _ = Describe("WriteAligned", func() {
	It("pads keys to the longest one", func() {
		var buf bytes.Buffer
		cliui.WriteAligned(&buf, " = ", [][2]string{
			{"serial.port", `"/dev/ttyACM0"`},
			{"extract.window_capacity", "<not set>"},
		})
		Expect(buf.String()).To(Equal(
			"serial.port             = \"/dev/ttyACM0\"\n" +
				"extract.window_capacity = <not set>\n",
		))
	})
})

var _ = Describe("MarkdownTable", func() {
	It("writes a header, a separator and escaped rows", func() {
		table := cliui.MarkdownTable(
			[]string{"Port", "Description"},
			[][]string{{"`/dev/ttyUSB0`", "CP2102 | rev B"}},
		)
		Expect(table).To(Equal(
			"| Port | Description |\n" +
				"|---|---|\n" +
				"| `/dev/ttyUSB0` | CP2102 \\| rev B |\n",
		))
	})
})

var _ = Describe("RenderMarkdown", func() {
	It("renders table content", func() {
		table := cliui.MarkdownTable([]string{"Port", "Description"}, [][]string{{"/dev/ttyACM0", "Arduino Uno"}})
		out, err := cliui.RenderMarkdown(table, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("/dev/ttyACM0"))
		Expect(out).To(ContainSubstring("Arduino Uno"))
	})
})
