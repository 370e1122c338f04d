// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the structured diagnostic logger. Status lines
// for each file go to the command's output writer; everything else
// (scores, per-file errors, setup notices) goes through this logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pdiddy/download-manager/pkg/types"
)

// New returns a logger writing to w at the configured level. Format "json"
// selects the JSON handler; anything else uses the text handler.
func New(w io.Writer, cfg types.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops every record. Tests use it where
// log output is irrelevant.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
