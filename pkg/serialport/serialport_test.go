package serialport

import (
	"errors"
	"fmt"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.bug.st/serial/enumerator"
)

var _ = Describe("Config", func() {
	Describe("Validate", func() {
		It("accepts a named port with a positive baud rate", func() {
			cfg := Config{Source: Manual{Name: "/dev/ttyACM0"}, BaudRate: 9600}
			Expect(cfg.Validate()).To(Succeed())
		})

		It("rejects a missing source", func() {
			err := Config{BaudRate: 9600}.Validate()

			var cfgErr *ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Field).To(Equal("port"))
		})

		It("rejects a blank device name", func() {
			err := Config{Source: Manual{Name: "   "}, BaudRate: 9600}.Validate()

			var cfgErr *ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Error()).To(ContainSubstring("cannot be empty"))
		})

		It("rejects zero and negative baud rates", func() {
			for _, baud := range []int{0, -115200} {
				err := Config{Source: Manual{Name: "/dev/ttyUSB0"}, BaudRate: baud}.Validate()

				var cfgErr *ConfigurationError
				Expect(errors.As(err, &cfgErr)).To(BeTrue())
				Expect(cfgErr.Field).To(Equal("baud rate"))
			}
		})

		It("rejects a negative read timeout", func() {
			cfg := Config{Source: Manual{Name: "/dev/ttyUSB0"}, BaudRate: 9600, ReadTimeout: -time.Second}
			Expect(cfg.Validate()).To(HaveOccurred())
		})
	})

	It("defaults the read timeout to one second", func() {
		Expect(Config{}.readTimeout()).To(Equal(time.Second))
		Expect(Config{ReadTimeout: 250 * time.Millisecond}.readTimeout()).To(Equal(250 * time.Millisecond))
	})

	It("refuses to open an invalid configuration", func() {
		port, err := Open(Config{Source: Manual{Name: ""}, BaudRate: 9600})
		Expect(port).To(BeNil())

		var cfgErr *ConfigurationError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
	})
})

var _ = Describe("ConnectionError", func() {
	It("classifies missing devices", func() {
		err := newConnectionError("/dev/nope", fmt.Errorf("open: %w", os.ErrNotExist))
		Expect(err.Kind).To(Equal(FailureNotFound))
		Expect(err.Kind.String()).To(Equal("not found"))
	})

	It("classifies permission problems", func() {
		err := newConnectionError("/dev/ttyS0", fmt.Errorf("open: %w", os.ErrPermission))
		Expect(err.Kind).To(Equal(FailurePermission))
	})

	It("keeps the underlying message and unwraps to it", func() {
		cause := errors.New("resource busy")
		err := newConnectionError("/dev/ttyUSB0", cause)

		Expect(err.Kind).To(Equal(FailureUnknown))
		Expect(err.Error()).To(ContainSubstring("/dev/ttyUSB0"))
		Expect(err.Error()).To(ContainSubstring("resource busy"))
		Expect(errors.Is(err, cause)).To(BeTrue())
	})
})

var _ = Describe("PortSource", func() {
	It("labels enumerated and manual ports", func() {
		Expect(DisplayName(Enumerated{Name: "/dev/ttyACM0", Desc: "Arduino Uno"})).To(Equal("/dev/ttyACM0: Arduino Uno"))
		Expect(DisplayName(Manual{Name: "/dev/pts/3"})).To(Equal("/dev/pts/3: Manually Added"))
	})

	It("resolves a known device to its enumerated entry", func() {
		known := []Enumerated{{Name: "/dev/ttyUSB0", Desc: "CP2102"}}

		src := Resolve("/dev/ttyUSB0", known)
		Expect(src).To(Equal(Enumerated{Name: "/dev/ttyUSB0", Desc: "CP2102"}))
	})

	It("falls back to a manual source", func() {
		src := Resolve("/dev/pts/7", nil)
		Expect(src).To(Equal(Manual{Name: "/dev/pts/7"}))
		Expect(src.Description()).To(Equal(ManualDescription))
	})
})

var _ = Describe("List", func() {
	It("sorts ports by name and describes them", func() {
		ports := fromDetails([]*enumerator.PortDetails{
			{Name: "/dev/ttyUSB1", IsUSB: true, VID: "10c4", PID: "ea60"},
			nil,
			{Name: "/dev/ttyACM0", IsUSB: true, Product: "Arduino Uno"},
			{Name: ""},
			{Name: "/dev/ttyS0"},
		})

		Expect(ports).To(Equal([]Enumerated{
			{Name: "/dev/ttyACM0", Desc: "Arduino Uno"},
			{Name: "/dev/ttyS0", Desc: "n/a"},
			{Name: "/dev/ttyUSB1", Desc: "USB 10c4:ea60"},
		}))
	})
})
