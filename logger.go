package main

import (
	"fmt"
	"log/slog"
	"os"
)

// setupLogger directs slog to a file. Debug mode lowers the level so that
// every command/reply exchange is recorded.
func setupLogger(filename string, debug bool) (*os.File, error) {
	logFile, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	return logFile, nil
}
