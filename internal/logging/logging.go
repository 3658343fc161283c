// Package logging builds the zerolog logger used across the CLI.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/bankist-dev/bankist/internal/config"
)

// New returns a logger writing to w at the configured level. The console
// format is for humans at a terminal; anything else emits JSON lines.
func New(w io.Writer, cfg config.LogConfig) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
		}
		level = l
	}

	out := w
	if cfg.Format == "" || cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}
