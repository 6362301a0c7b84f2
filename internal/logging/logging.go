// Package logging configures the application logger and scrubs credentials
// from anything that could reach a log file or the screen.
//
// The TUI owns the terminal, so logs go to a rotated file instead of
// stderr. Error text shown to the user passes through Redact first: a
// backend error can echo request fields, and an n8n API key must never
// survive that round trip.
package logging

import (
	"io"
	"regexp"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RedactedValue replaces any matched secret.
const RedactedValue = "[REDACTED]"

var sensitivePatterns = []*regexp.Regexp{
	// n8n API keys are JWTs issued by the instance.
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),

	// Query-string style secrets: token=..., key=..., secret=..., password=...
	regexp.MustCompile(`(?i)(token|key|secret|password)=([^\s&"']+)`),

	// JSON/yaml style: "api_key": "...", apiKey=...
	regexp.MustCompile(`(?i)(api[_-]?key|apikey)(["']?\s*[:=]\s*)["']?([a-zA-Z0-9._-]{8,})["']?`),

	// Bearer tokens.
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._-]{16,}`),
}

// Redact replaces credential-shaped substrings in s.
func Redact(s string) string {
	if s == "" {
		return s
	}
	for i, re := range sensitivePatterns {
		switch i {
		case 1:
			s = re.ReplaceAllString(s, "$1="+RedactedValue)
		case 2:
			s = re.ReplaceAllString(s, "$1$2"+RedactedValue)
		default:
			s = re.ReplaceAllString(s, RedactedValue)
		}
	}
	return s
}

// redactWriter scrubs serialized log lines before they hit the sink, so a
// secret smuggled into any field is caught, not just the message.
type redactWriter struct {
	w io.Writer
}

func (rw redactWriter) Write(p []byte) (int, error) {
	redacted := Redact(string(p))
	if _, err := rw.w.Write([]byte(redacted)); err != nil {
		return 0, err
	}
	// Report the original length; rewriting may change it.
	return len(p), nil
}

// Options controls logger construction.
type Options struct {
	// File is the log file path. Empty disables logging entirely.
	File string
	// Level is a zerolog level name; unparseable values mean info.
	Level string
	// Writer overrides the file destination, for tests.
	Writer io.Writer
}

// New builds the application logger. A rotated file keeps the terminal
// clean for the TUI.
func New(opts Options) zerolog.Logger {
	var w io.Writer
	switch {
	case opts.Writer != nil:
		w = opts.Writer
	case opts.File != "":
		w = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		}
	default:
		w = io.Discard
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(redactWriter{w: w}).Level(level).With().Timestamp().Logger()
}
