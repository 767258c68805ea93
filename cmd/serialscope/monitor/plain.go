package monitorcmder

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/papercomputeco/serialscope/pkg/cliui"
	"github.com/papercomputeco/serialscope/pkg/session"
)

// runPlain prints every raw line to out and logs each reading with the
// current statistics. It returns when the session has closed.
func runPlain(ctx context.Context, out io.Writer, source eventSource, state *monitorState, log *slog.Logger) {
	stop := context.AfterFunc(ctx, source.Stop)
	defer stop()

	log.Info(state.status())

	for ev := range source.Events() {
		sample, ok := state.apply(ev)

		switch ev.Kind {
		case session.EventLine:
			fmt.Fprintln(out, ev.Line)
			if !ok {
				continue
			}

			stats := state.window.Statistics()
			log.Info("reading",
				"index", sample.Index,
				"value", sample.Value,
				"min", cliui.FormatReading(stats.Min, stats.Available()),
				"max", cliui.FormatReading(stats.Max, stats.Available()),
				"mean", cliui.FormatReading(stats.Mean, stats.Available()),
				"stdev", cliui.FormatReading(stats.Stdev, stats.Available()),
			)

		case session.EventError:
			log.Error(state.status())

		case session.EventClosed:
			if dropped := source.Dropped(); dropped > 0 {
				log.Warn("lines dropped while printing", "count", dropped)
			}
			log.Info("Disconnected")
		}
	}
}
