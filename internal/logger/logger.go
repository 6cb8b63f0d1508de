// Package logger builds the application's zerolog logger from LogConfig.
//
// The log file keeps the original operational contract: it is truncated to
// zero bytes at process startup once it has grown past the configured size
// (1 MiB by default). Rotation with backups is available as an opt-in via
// max_log_backups.
package logger

import (
	"io"
	stdlog "log" // Standard Go log package, aliased to avoid conflict with zerolog field
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"webwatch/internal/common"
	"webwatch/internal/config"
)

// New creates a zerolog logger from the given log configuration.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Logger{}, err
	}

	writers := []io.Writer{consoleWriter(cfg.LogFormat, os.Stderr)}

	if cfg.LogFile != "" {
		fileWriter, err := createFileWriter(cfg)
		if err != nil {
			return zerolog.Logger{}, err
		}
		writers = append(writers, fileWriter)
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(multiWriter).
		Level(level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(level)
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)

	return logger, nil
}

// createFileWriter opens the log file for appending. When rotation is not
// enabled, the file is truncated first if it already exceeds the size cap.
func createFileWriter(cfg config.LogConfig) (io.Writer, error) {
	if dir := filepath.Dir(cfg.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, common.WrapError(err, "failed to create log directory")
		}
	}

	maxSizeMB := cfg.MaxLogSizeMB
	if maxSizeMB <= 0 {
		maxSizeMB = config.DefaultMaxLogSizeMB
	}

	if cfg.MaxLogBackups > 0 {
		return &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    maxSizeMB,
			MaxBackups: cfg.MaxLogBackups,
			LocalTime:  true,
		}, nil
	}

	if err := truncateOversizedLog(cfg.LogFile, int64(maxSizeMB)*1024*1024); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, common.WrapError(err, "failed to open log file")
	}

	if strings.ToLower(cfg.LogFormat) != "json" {
		return zerolog.ConsoleWriter{Out: file, TimeFormat: time.RFC3339, NoColor: true}, nil
	}
	return file, nil
}

// truncateOversizedLog empties the log file if it has grown past maxBytes.
func truncateOversizedLog(path string, maxBytes int64) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return common.WrapError(err, "failed to stat log file")
	}
	if info.Size() <= maxBytes {
		return nil
	}
	if err := os.Truncate(path, 0); err != nil {
		return common.WrapError(err, "failed to truncate log file")
	}
	return nil
}

// consoleWriter wraps the output according to the configured format.
func consoleWriter(format string, out io.Writer) io.Writer {
	switch strings.ToLower(format) {
	case "json":
		return out
	case "text":
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	default:
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
}

func parseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "fatal":
		return zerolog.FatalLevel, nil
	case "panic":
		return zerolog.PanicLevel, nil
	default:
		return zerolog.NoLevel, common.NewValidationError("log_level", level, "unknown log level")
	}
}
