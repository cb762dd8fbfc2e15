package logger_test

import (
	"bytes"
	"careops/config"
	"careops/shared/logger"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("boom"))

	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"stack"`)
}

func TestErrorWithStack_Nil(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(nil)

	assert.Empty(t, buf.String())
}

func TestSetLogLevel(t *testing.T) {
	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()

	defer func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
	}()

	tests := []struct {
		name     string
		logLevel string
		expected zerolog.Level
	}{
		{name: "debug", logLevel: "debug", expected: zerolog.DebugLevel},
		{name: "info", logLevel: "info", expected: zerolog.InfoLevel},
		{name: "error", logLevel: "error", expected: zerolog.ErrorLevel},
		{name: "invalid falls back to trace", logLevel: "verbose", expected: zerolog.TraceLevel},
		{name: "empty falls back to trace", logLevel: "", expected: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestSetOutput_ProductionWritesJSON(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.App.Name = "care-ops-hub"

	var buf bytes.Buffer
	logger.SetOutput(cfg, &buf)

	log.Error().Str("contactId", "c-1").Msg("failed to get contact")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "care-ops-hub", line["app"])
	assert.Equal(t, "c-1", line["contactId"])
	assert.Equal(t, "failed to get contact", line["message"])
}
