package logger

import (
	"io"
	"log/slog"
)

// Option adjusts how New assembles its handlers.
type Option func(*config)

// WithDebug lowers the level to Debug when true. The -d/--debug flag on
// every command feeds this.
func WithDebug(debug bool) Option {
	return func(c *config) {
		c.level = slog.LevelInfo
		if debug {
			c.level = slog.LevelDebug
		}
	}
}

// WithPretty switches to the charmbracelet/log handler. Commands use this
// for their terminal output.
func WithPretty(pretty bool) Option {
	return func(c *config) {
		c.pretty = pretty
	}
}

// WithJSON switches to slog's JSON handler, one record per line. The serve
// command uses this for its --log-file stream.
func WithJSON(json bool) Option {
	return func(c *config) {
		c.json = json
	}
}

// WithWriter sends output to a single writer instead of os.Stdout.
func WithWriter(w io.Writer) Option {
	return WithWriters(w)
}

// WithWriters sends output to every given writer via io.MultiWriter.
func WithWriters(w ...io.Writer) Option {
	return func(c *config) {
		c.writers = w
	}
}

// WithSource annotates records with the calling file and line.
func WithSource(source bool) Option {
	return func(c *config) {
		c.source = source
	}
}
