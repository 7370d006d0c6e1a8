// Package log holds the zerolog setup shared by the service and the CLI.
package log

import (
	"fmt"
	"io"

	zl "github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

const consoleTimeFormat = "02 Jan 06 15:04:05.000 -0700"

// Default returns the process-wide logger with a timestamp on every event.
func Default() zl.Logger {
	return zlog.With().Timestamp().Logger()
}

// UseConsole routes the global logger through a human-friendly console writer.
func UseConsole(w io.Writer) {
	zlog.Logger = zlog.Output(zl.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat})
}

func SetGlobalLevelFromString(s string) error {
	switch s {
	case "debug":
		zl.SetGlobalLevel(zl.DebugLevel)
	case "info":
		zl.SetGlobalLevel(zl.InfoLevel)
	case "warn":
		zl.SetGlobalLevel(zl.WarnLevel)
	case "error":
		zl.SetGlobalLevel(zl.ErrorLevel)
	default:
		return fmt.Errorf("Unknown log level: %s", s)
	}
	return nil
}
