// Package logging configures the process-wide zerolog logger.
//
// promptctl is an interactive tool, so logs go to a rotating file under the
// state directory rather than to the terminal; stdout belongs to command
// output and the TUI.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/chazuruo/promptctl/internal/config"
)

// Setup initializes the global logger from the logging config section.
// When cfg.File is empty, logging is discarded entirely.
func Setup(cfg config.LoggingConfig) error {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	var w io.Writer = io.Discard
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return err
		}
		w = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			Compress:   true,
		}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}

// parseLevel maps a config level name onto a zerolog level.
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
