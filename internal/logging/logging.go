// Package logging builds the sync log. Records are written as
//
//	2024-03-01 12:00:00,000 - file_sync - INFO - File a.txt copied to /replica
//
// which keeps the log greppable and diffable across runs.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Name is the logger name embedded in every record.
const Name = "file_sync"

const timeLayout = "2006-01-02 15:04:05,000"

// New opens the log file at path, appending if it already exists, and returns
// the logger plus a close func that flushes and releases the file. With debug
// set, records are also mirrored to stderr and the level drops to DEBUG.
func New(path string, debug bool) (*zap.Logger, func(), error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
		}
	}

	paths := []string{path}
	if debug {
		paths = append(paths, "stderr")
	}

	sink, closeSink, err := zap.Open(paths...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log: %w", err)
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), sink, level)
	logger := zap.New(core)

	closer := func() {
		_ = logger.Sync()
		closeSink()
	}

	return logger, closer, nil
}

// encoderConfig lays the record out as time, name, level, message joined by
// " - ". The console encoder has no slot between time and level, so the
// level encoder emits the logger name first and the separator supplies the
// dashes.
func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " - ",
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format(timeLayout))
		},
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(Name)
			enc.AppendString(l.CapitalString())
		},
	}
}
