package session_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/serialscope/pkg/linestream"
	"github.com/papercomputeco/serialscope/pkg/serialport"
	"github.com/papercomputeco/serialscope/pkg/session"
	testutils "github.com/papercomputeco/serialscope/pkg/utils/test"
	"github.com/papercomputeco/serialscope/pkg/window"
)

func serialConfig() serialport.Config {
	return serialport.Config{
		Source:   serialport.Manual{Name: "/dev/pts/9"},
		BaudRate: 9600,
	}
}

func openerFor(src io.ReadCloser) session.OpenFunc {
	return func(serialport.Config) (*linestream.Reader, error) {
		return linestream.NewReader(src), nil
	}
}

func nextEvent(s *session.Session) session.Event {
	var ev session.Event
	Eventually(s.Events(), time.Second).Should(Receive(&ev))
	return ev
}

var _ = Describe("Session", func() {
	Describe("New", func() {
		It("rejects an empty port before connecting", func() {
			opened := false
			_, err := session.New(session.Config{
				Serial: serialport.Config{Source: serialport.Manual{}, BaudRate: 9600},
				Open: func(serialport.Config) (*linestream.Reader, error) {
					opened = true
					return nil, nil
				},
			})

			var cfgErr *serialport.ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(opened).To(BeFalse())
		})

		It("rejects a queue that cannot hold the terminal events", func() {
			_, err := session.New(session.Config{Serial: serialConfig(), QueueSize: 1})

			var cfgErr *serialport.ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Field).To(Equal("queue size"))
		})

		It("exposes the connection it was built for", func() {
			s, err := session.New(session.Config{Serial: serialConfig()})
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Source().Device()).To(Equal("/dev/pts/9"))
			Expect(s.BaudRate()).To(Equal(9600))
			Expect(s.ID().String()).NotTo(BeEmpty())
		})
	})

	Describe("running", func() {
		var (
			port *testutils.FakePort
			s    *session.Session
		)

		BeforeEach(func() {
			port = testutils.NewFakePort()

			var err error
			s, err = session.New(session.Config{Serial: serialConfig(), Open: openerFor(port)})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Start(context.Background())).To(Succeed())
		})

		AfterEach(func() {
			s.Stop()
			s.Wait()
		})

		It("delivers lines in order and closes cooperatively", func() {
			port.Push([]byte("Distance: 10.0\r\njunk\nDist"))
			port.Push([]byte("ance: 12.0\n"))

			Expect(nextEvent(s)).To(HaveField("Line", "Distance: 10.0"))
			Expect(nextEvent(s)).To(HaveField("Line", "junk"))
			Expect(nextEvent(s)).To(HaveField("Line", "Distance: 12.0"))

			s.Stop()

			ev := nextEvent(s)
			Expect(ev.Kind).To(Equal(session.EventClosed))
			Eventually(s.Events()).Should(BeClosed())
			Expect(port.Closed()).To(BeTrue())
		})

		It("reports a stream failure and then closes", func() {
			port.Push([]byte("Distance: 1\n"))
			Expect(nextEvent(s).Line).To(Equal("Distance: 1"))

			port.Fail(errors.New("device unplugged"))

			ev := nextEvent(s)
			Expect(ev.Kind).To(Equal(session.EventError))
			var streamErr *linestream.StreamError
			Expect(errors.As(ev.Err, &streamErr)).To(BeTrue())
			Expect(ev.Err.Error()).To(ContainSubstring("device unplugged"))

			Expect(nextEvent(s).Kind).To(Equal(session.EventClosed))
			Eventually(s.Events()).Should(BeClosed())
		})

		It("refuses to start twice", func() {
			Expect(s.Start(context.Background())).To(MatchError(session.ErrAlreadyStarted))
		})
	})

	It("reports an open failure as a single error followed by close", func() {
		s, err := session.New(session.Config{
			Serial: serialConfig(),
			Open: func(cfg serialport.Config) (*linestream.Reader, error) {
				return nil, &serialport.ConnectionError{
					Device: cfg.Source.Device(),
					Kind:   serialport.FailureNotFound,
					Err:    fmt.Errorf("open %s: %w", cfg.Source.Device(), os.ErrNotExist),
				}
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Start(context.Background())).To(Succeed())
		s.Wait()

		ev := nextEvent(s)
		Expect(ev.Kind).To(Equal(session.EventError))
		var connErr *serialport.ConnectionError
		Expect(errors.As(ev.Err, &connErr)).To(BeTrue())
		Expect(connErr.Kind).To(Equal(serialport.FailureNotFound))

		Expect(nextEvent(s).Kind).To(Equal(session.EventClosed))
		Eventually(s.Events()).Should(BeClosed())
	})

	It("stops when the context is cancelled", func() {
		port := testutils.NewFakePort()
		s, err := session.New(session.Config{Serial: serialConfig(), Open: openerFor(port)})
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		Expect(s.Start(ctx)).To(Succeed())
		cancel()

		Expect(nextEvent(s).Kind).To(Equal(session.EventClosed))
		s.Wait()
	})

	It("drops the oldest lines when the foreground falls behind", func() {
		var input strings.Builder
		for i := 1; i <= 10; i++ {
			fmt.Fprintf(&input, "Distance: %d\n", i)
		}
		src := io.NopCloser(strings.NewReader(input.String()))

		s, err := session.New(session.Config{Serial: serialConfig(), Open: openerFor(src), QueueSize: 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Start(context.Background())).To(Succeed())
		s.Wait()

		var got []session.Event
		for ev := range s.Events() {
			got = append(got, ev)
		}

		Expect(got).To(HaveLen(4))
		Expect(got[0].Line).To(Equal("Distance: 9"))
		Expect(got[1].Line).To(Equal("Distance: 10"))
		Expect(got[2].Kind).To(Equal(session.EventError))
		Expect(errors.Is(got[2].Err, io.EOF)).To(BeTrue())
		Expect(got[3].Kind).To(Equal(session.EventClosed))
		Expect(s.Dropped()).To(BeEquivalentTo(8))
	})

	DescribeTable("keeps both terminal events when a tiny queue overflows",
		func(queueSize int, wantLines []string, wantDropped int) {
			var input strings.Builder
			for i := 1; i <= 10; i++ {
				fmt.Fprintf(&input, "Distance: %d\n", i)
			}
			src := io.NopCloser(strings.NewReader(input.String()))

			s, err := session.New(session.Config{Serial: serialConfig(), Open: openerFor(src), QueueSize: queueSize})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Start(context.Background())).To(Succeed())
			s.Wait()

			var lines []string
			var kinds []session.EventKind
			for ev := range s.Events() {
				kinds = append(kinds, ev.Kind)
				if ev.Kind == session.EventLine {
					lines = append(lines, ev.Line)
				}
			}

			Expect(lines).To(Equal(wantLines))
			Expect(kinds[len(kinds)-2:]).To(Equal([]session.EventKind{session.EventError, session.EventClosed}))
			Expect(s.Dropped()).To(BeEquivalentTo(wantDropped))
		},
		Entry("minimum size", 2, []string(nil), 10),
		Entry("one spare slot", 3, []string{"Distance: 10"}, 9),
	)

	It("feeds a foreground window end to end", func() {
		src := io.NopCloser(strings.NewReader("Distance: 10.0\njunk\nDistance: 12.0\nDistance: 8.0\n"))
		s, err := session.New(session.Config{Serial: serialConfig(), Open: openerFor(src)})
		Expect(err).NotTo(HaveOccurred())

		w, err := window.New()
		Expect(err).NotTo(HaveOccurred())

		Expect(s.Start(context.Background())).To(Succeed())

		var raw []string
		for ev := range s.Events() {
			if ev.Kind == session.EventLine {
				raw = append(raw, ev.Line)
				w.Accept(ev.Line)
			}
		}

		Expect(raw).To(HaveLen(4))
		Expect(w.Values()).To(Equal([]float64{10, 12, 8}))
		Expect(w.Statistics().Stdev).To(BeNumerically("~", 2.0, 1e-12))
	})
})
