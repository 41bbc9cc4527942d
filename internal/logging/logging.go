// Package logging puts log/slog on top of the HAL's line logger.
package logging

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"dial/hal"
)

// ParseLevel converts error/warn/info/debug to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s (must be error, warn, info, or debug)", level)
	}
}

// New returns a text logger writing one record per line to l.
func New(l hal.Logger, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}
	return slog.New(slog.NewTextHandler(&lineWriter{l: l}, opts))
}

// lineWriter splits writes into lines for hal.Logger. A trailing partial
// line is held until its newline arrives.
type lineWriter struct {
	mu  sync.Mutex
	l   hal.Logger
	buf []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.l.WriteLineBytes(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	if len(w.buf) == 0 {
		w.buf = nil
	}
	return len(p), nil
}
