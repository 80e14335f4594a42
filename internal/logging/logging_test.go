package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picdesc/internal/config"
	"picdesc/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{" WARN ", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"info", log.InfoLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestFormatter(t *testing.T) {
	assert.IsType(t, &log.JSONFormatter{}, logging.Formatter("json"))
	assert.IsType(t, &log.TextFormatter{}, logging.Formatter("console"))
	assert.IsType(t, &log.TextFormatter{}, logging.Formatter(""))
}

func TestSetupWriter_JSON(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{})
	})

	var buf bytes.Buffer
	logging.SetupWriter(&config.LogConfig{Level: "warn", Format: "json"}, &buf)

	log.Info("suppressed")
	log.WithField("source", "report.pdf").Warn("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "report.pdf", entry["source"])
	assert.Equal(t, "warning", entry["level"])
}
