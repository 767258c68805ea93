package monitorcmder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/papercomputeco/serialscope/pkg/chart"
	"github.com/papercomputeco/serialscope/pkg/cliui"
	"github.com/papercomputeco/serialscope/pkg/session"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// header, rule, index range, blank, two statistics rows, blank,
	// log title, rule, help
	chromeRows = 10

	minPlotRows = 3
	minLogRows  = 3
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	plotStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("215"))
	metricLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Bold(true)
	metricValue  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	statusOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	statusFail   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	statusWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// eventSource is the part of a session the TUI consumes.
type eventSource interface {
	Events() <-chan session.Event
	Stop()
	Dropped() uint64
}

type monitorKeyMap struct {
	Clear key.Binding
	Quit  key.Binding
}

func (k monitorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Clear, k.Quit}
}

func (k monitorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Clear, k.Quit}}
}

func defaultKeyMap() monitorKeyMap {
	return monitorKeyMap{
		Clear: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// sessionEventMsg wraps one event; ok is false once the channel is closed.
type sessionEventMsg struct {
	event session.Event
	ok    bool
}

func waitForEvent(events <-chan session.Event) bubbletea.Cmd {
	return func() bubbletea.Msg {
		ev, ok := <-events
		return sessionEventMsg{event: ev, ok: ok}
	}
}

type monitorModel struct {
	source eventSource
	state  *monitorState
	width  int
	height int
	keys   monitorKeyMap
	help   help.Model
}

func newMonitorModel(source eventSource, state *monitorState) monitorModel {
	return monitorModel{
		source: source,
		state:  state,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

func runTUI(ctx context.Context, source eventSource, state *monitorState) error {
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.EnvColorProfile()))
	lipgloss.SetDefaultRenderer(renderer)

	program := bubbletea.NewProgram(newMonitorModel(source, state),
		bubbletea.WithContext(ctx),
		bubbletea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}

func (m monitorModel) Init() bubbletea.Cmd {
	return waitForEvent(m.source.Events())
}

func (m monitorModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionEventMsg:
		if !msg.ok {
			return m, nil
		}
		m.state.apply(msg.event)
		return m, waitForEvent(m.source.Events())

	case bubbletea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.source.Stop()
			return m, bubbletea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.state.clear()
		}
	}

	return m, nil
}

func (m monitorModel) View() string {
	width, height := m.size()
	logRows := max(minLogRows, height/4)
	plotRows := max(minPlotRows, height-chromeRows-logRows)

	lines := make([]string, 0, height)
	lines = append(lines, m.viewHeader(width), renderRule(width))
	lines = append(lines, m.viewPlot(width, plotRows)...)
	lines = append(lines, m.viewIndexRange(), "")
	lines = append(lines, m.viewStatistics(width)...)
	lines = append(lines, "", sectionStyle.Render("raw log"), renderRule(width))
	lines = append(lines, m.viewLog(width, logRows)...)
	lines = append(lines, mutedStyle.Render(m.help.View(m.keys)))

	return strings.Join(lines, "\n")
}

func (m monitorModel) size() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

func (m monitorModel) viewHeader(width int) string {
	left := titleStyle.Render("serialscope") + mutedStyle.Render(" · "+m.state.window.Label())

	status := m.state.status()
	switch m.state.conn {
	case stateConnected:
		status = statusOK.Render("● " + status)
	case stateFailed:
		status = statusFail.Render("● " + status)
	case stateConnecting:
		status = statusWarn.Render("○ " + status)
	default:
		status = mutedStyle.Render("○ " + status)
	}
	if dropped := m.source.Dropped(); dropped > 0 {
		status += mutedStyle.Render(fmt.Sprintf("  (%d dropped)", dropped))
	}

	return renderHeaderLine(width, left, status)
}

func (m monitorModel) viewPlot(width, rows int) []string {
	lo, hi := chart.IndexRange(m.state.window.Last(), m.state.window.Capacity())
	plot := chart.Plot(m.state.window.Samples(), m.state.axis, lo, hi, width, rows)
	for i, line := range plot {
		plot[i] = plotStyle.Render(line)
	}
	return plot
}

func (m monitorModel) viewIndexRange() string {
	lo, hi := chart.IndexRange(m.state.window.Last(), m.state.window.Capacity())
	return mutedStyle.Render(fmt.Sprintf("samples %d–%d · %d in window", lo, hi, m.state.window.Len()))
}

func (m monitorModel) viewStatistics(width int) []string {
	stats := m.state.window.Statistics()
	ok := stats.Available()

	headers := []string{"MIN", "MAX", "MEAN", "STDEV"}
	values := []string{
		cliui.FormatReading(stats.Min, ok),
		cliui.FormatReading(stats.Max, ok),
		cliui.FormatReading(stats.Mean, ok),
		cliui.FormatReading(stats.Stdev, ok),
	}

	return []string{
		renderMetricRow(width, headers, metricLabel),
		renderMetricRow(width, values, metricValue),
	}
}

func (m monitorModel) viewLog(width, rows int) []string {
	tail := m.state.tail(rows)
	lines := make([]string, rows)
	offset := rows - len(tail)
	for i, line := range tail {
		lines[offset+i] = ansi.Truncate(line, width, "…")
	}
	return lines
}

func renderHeaderLine(width int, left, right string) string {
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	if leftWidth+rightWidth+1 >= width {
		return strings.TrimSpace(left + " " + right)
	}
	return left + strings.Repeat(" ", width-leftWidth-rightWidth) + right
}

func renderRule(width int) string {
	return dividerStyle.Render(strings.Repeat("─", width))
}

func renderMetricRow(width int, items []string, style lipgloss.Style) string {
	if len(items) == 0 {
		return ""
	}
	spaceWidth := (len(items) - 1) * 2
	colWidth := max((width-spaceWidth)/len(items), 10)
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, style.Render(fitCell(item, colWidth)))
	}
	return strings.Join(parts, "  ")
}

func fitCell(value string, width int) string {
	if lipgloss.Width(value) > width {
		return ansi.Truncate(value, width, "…")
	}
	return value + strings.Repeat(" ", width-lipgloss.Width(value))
}
