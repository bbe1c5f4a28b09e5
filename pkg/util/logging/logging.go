package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"nestedset/pkg/config"
)

var logLevelMapping = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// New builds a logger from cfg. LOG_LEVEL, when set to a known level,
// overrides the configured one.
func New(w io.Writer, cfg config.LogConfig, sessionID string) *slog.Logger {
	level := strings.ToLower(os.Getenv("LOG_LEVEL"))

	logLevel, ok := logLevelMapping[level]
	if !ok {
		logLevel, ok = logLevelMapping[strings.ToLower(cfg.Level)]
	}
	if !ok {
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With("session_id", sessionID)
}

// InitDefault installs a logger writing to stderr as the slog default.
func InitDefault(cfg config.LogConfig, sessionID string) *slog.Logger {
	logger := New(os.Stderr, cfg, sessionID)
	slog.SetDefault(logger)
	return logger
}
