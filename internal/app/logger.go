package app

import (
	"log/slog"
	"os"
)

// NewLogger returns the configured slog.Logger. Production defaults to
// JSON output at Info; development gets text output at Debug so the
// quote pipeline's per-request logging is visible locally.
func NewLogger(cfg *Config) *slog.Logger {
	level := slog.LevelDebug
	if cfg.IsProduction() {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{AddSource: true, Level: level}
	if cfg.IsProduction() || (cfg != nil && cfg.LogFormat == "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
