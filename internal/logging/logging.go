// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"picdesc/internal/config"
)

// ParseLevel maps a configured level name to a logrus level. Unknown names fall back to info.
func ParseLevel(name string) log.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "trace":
		return log.TraceLevel
	default:
		return log.InfoLevel
	}
}

// Formatter returns the formatter for the configured output format.
func Formatter(format string) log.Formatter {
	if strings.EqualFold(format, "json") {
		return &log.JSONFormatter{}
	}
	return &log.TextFormatter{FullTimestamp: true}
}

// Setup applies cfg to the standard logger, writing to stderr.
func Setup(cfg *config.LogConfig) {
	SetupWriter(cfg, os.Stderr)
}

// SetupWriter applies cfg to the standard logger, writing to w.
func SetupWriter(cfg *config.LogConfig, w io.Writer) {
	log.SetOutput(w)
	log.SetLevel(ParseLevel(cfg.Level))
	log.SetFormatter(Formatter(cfg.Format))
}
