// Package logger configures the global zerolog logger.
package logger

import (
	"careops/config"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLevel = zerolog.TraceLevel

// InitLogger installs a console logger at trace level until the
// configuration is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(defaultLevel)

	log.Logger = log.Output(consoleWriter(os.Stdout))
}

// ErrorWithStack logs err with the stack of the caller. Used for failures
// that end up as a 500.
func ErrorWithStack(err error) {
	if err == nil {
		return
	}

	log.Error().
		Err(err).
		Str("stack", fmt.Sprintf("%+v", errors.WithStack(err))).
		Msg("unexpected error")
}

// SetLogLevel applies SERVER_LOG_LEVEL and switches to JSON lines outside development.
func SetLogLevel(cfg *config.Config) {
	SetOutput(cfg, os.Stdout)

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == "" {
		log.Warn().Str("configured", cfg.Server.LogLevel).Str("using", defaultLevel.String()).Msg("Unusable log level, falling back")

		level = defaultLevel
	}

	zerolog.SetGlobalLevel(level)
}

func SetOutput(cfg *config.Config, out io.Writer) {
	if cfg.Server.Env == "" || cfg.IsDevelopment() {
		log.Logger = log.Output(consoleWriter(out))

		return
	}

	log.Logger = zerolog.New(out).With().Timestamp().Str("app", cfg.App.Name).Logger()
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}
