// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the global zerolog logger for the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pdiddy/dat-filter/pkg/types"
)

// consoleWriter filters console output to the configured level while the
// underlying logger stays at debug so an attached log file gets everything.
type consoleWriter struct {
	w     zerolog.ConsoleWriter
	level zerolog.Level
}

func (c consoleWriter) Write(p []byte) (int, error) {
	return c.w.Write(p)
}

func (c consoleWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < c.level {
		return len(p), nil
	}
	return c.w.Write(p)
}

// Setup installs the global logger: human-readable records on stderr at the
// configured level, optionally mirrored to a file at debug level. The
// returned closer is nil when no file is open.
func Setup(cfg types.LogConfig) (io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	console := consoleWriter{
		w: zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		},
		level: level,
	}

	var closer io.Closer
	var sink io.Writer = console
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		closer = f
		sink = zerolog.MultiLevelWriter(console, f)
	}

	log.Logger = zerolog.New(sink).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return closer, nil
}
