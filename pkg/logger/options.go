package logger

import (
	"io"
	"log/slog"
)

// format selects the slog.Handler New builds.
type format int

const (
	formatText format = iota
	formatPretty
	formatJSON
)

// Option configures a Logger created with New.
type Option func(*config)

// WithLevel sets the minimum level that is written.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithDebug is shorthand for WithLevel(slog.LevelDebug) when debug is set.
// A false value restores the Info level.
func WithDebug(debug bool) Option {
	if debug {
		return WithLevel(slog.LevelDebug)
	}
	return WithLevel(slog.LevelInfo)
}

// WithPretty switches to colorized charmbracelet/log output for terminals.
func WithPretty(pretty bool) Option {
	return func(c *config) {
		if pretty {
			c.format = formatPretty
		} else if c.format == formatPretty {
			c.format = formatText
		}
	}
}

// WithJSON switches to one JSON object per record, as written to the
// session log file.
func WithJSON(json bool) Option {
	return func(c *config) {
		if json {
			c.format = formatJSON
		} else if c.format == formatJSON {
			c.format = formatText
		}
	}
}

// WithPrefix sets the prefix shown by pretty output.
func WithPrefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

// WithWriter replaces the destinations with w. The default is os.Stderr.
func WithWriter(w io.Writer) Option {
	return WithWriters(w)
}

// WithWriters writes every record to each of w.
func WithWriters(w ...io.Writer) Option {
	return func(c *config) {
		c.writers = w
	}
}

// WithSource adds the caller's file:line to each record.
func WithSource(source bool) Option {
	return func(c *config) {
		c.source = source
	}
}
