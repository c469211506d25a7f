package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// NewLogger builds the CLI logger. Output goes to w with the handler and
// level selected by cfg.
func NewLogger(w io.Writer, cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.EffectiveLevel()}
	if strings.EqualFold(cfg.Log.Format, LogFormatJSON) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// OpenLogWriter returns where logs should go. With log.file set, the file is
// opened for appending; otherwise fallback is used, and a nil fallback
// discards logs. The returned close func is never nil.
func OpenLogWriter(cfg *Config, fallback io.Writer) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	if cfg.Log.File == "" {
		if fallback == nil {
			return io.Discard, noop, nil
		}
		return fallback, noop, nil
	}

	if dir := filepath.Dir(cfg.Log.File); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, f.Close, nil
}
