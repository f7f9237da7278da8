package server

import (
	"io"
	"log/slog"
	"strings"

	"github.com/veo1/health-scanner/config"
)

// NewLogger builds the process logger from cfg, writing to w, and installs it
// as the slog default. The text format adds source locations for local runs.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	text := strings.EqualFold(cfg.Format, "text")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: text,
	}

	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if text {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// parseLevel accepts slog level names in any case ("warn", "ERROR",
// "info+2") and falls back to info.
func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
