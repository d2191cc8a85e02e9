// Package logging builds the zerolog logger shared by the framework.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/km-arc/go-inject/framework/config"
)

// New creates a zerolog.Logger from cfg. The returned Closer releases the
// log file when Output is a path; for stdout and stderr it does nothing.
func New(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	output, outputFile, err := selectOutput(cfg.Output)
	if err != nil {
		return zerolog.Logger{}, nil, err
	}
	var closer io.Closer = nopCloser{}
	if outputFile != os.Stdout && outputFile != os.Stderr {
		closer = outputFile
	}
	return build(cfg, output, outputFile), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewWithWriter creates a logger writing to w. Console formatting is only
// applied when cfg.Format is "pretty".
func NewWithWriter(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	return build(cfg, w, nil)
}

func build(cfg config.LogConfig, output io.Writer, outputFile *os.File) zerolog.Logger {
	if shouldUsePretty(cfg, outputFile) {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05"}
	}
	return zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level. Unknown names mean info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput returns the writer for an output setting and, when it is a
// file, the file itself.
func selectOutput(output string) (io.Writer, *os.File, error) {
	switch output {
	case "", "stderr":
		return os.Stderr, os.Stderr, nil
	case "stdout":
		return os.Stdout, os.Stdout, nil
	default:
		f, err := os.OpenFile(filepath.Clean(output), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log output %s: %w", output, err)
		}
		return f, f, nil
	}
}

// shouldUsePretty decides between console and JSON output. "console" picks
// pretty output only when writing to a terminal.
func shouldUsePretty(cfg config.LogConfig, outputFile *os.File) bool {
	switch cfg.Format {
	case "pretty":
		return true
	case "json":
		return false
	default:
		return outputFile != nil && isatty.IsTerminal(outputFile.Fd())
	}
}
