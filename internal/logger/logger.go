// Package logger is the process-wide structured log. Records always go to a
// rotating file under <config-dir>/logs.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/fitcoach/internal/constants"
)

// Mode selects where records go besides the log file.
type Mode int

const (
	// ModeCLI mirrors to stderr only with --debug.
	ModeCLI Mode = iota
	// ModeTUI never writes to the terminal; bubbletea owns it.
	ModeTUI
	// ModeServer always mirrors to stderr, in logfmt so a supervisor can parse it.
	ModeServer
)

type Config struct {
	Debug     bool
	ConfigDir string
	Mode      Mode
}

var (
	Logger *log.Logger
	file   *lumberjack.Logger
)

func Init(cfg Config) error {
	dir := filepath.Join(cfg.ConfigDir, constants.LogDirName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	file = &lumberjack.Logger{
		Filename:   filepath.Join(dir, constants.AppName+".log"),
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}

	opts := log.Options{
		ReportTimestamp: true,
		ReportCaller:    cfg.Debug,
		Level:           log.InfoLevel,
		Prefix:          constants.AppName,
	}
	if cfg.Debug {
		opts.Level = log.DebugLevel
	}
	if cfg.Mode == ModeServer {
		opts.Formatter = log.LogfmtFormatter
	}

	Logger = log.NewWithOptions(output(cfg), opts)
	return nil
}

func output(cfg Config) io.Writer {
	switch {
	case cfg.Mode == ModeTUI:
		return file
	case cfg.Mode == ModeServer, cfg.Debug:
		return io.MultiWriter(os.Stderr, file)
	default:
		return file
	}
}

// Close releases the log file. Later calls to the helpers are dropped.
func Close() error {
	if file == nil {
		return nil
	}
	err := file.Close()
	Logger, file = nil, nil
	return err
}

func Debug(msg string, keyvals ...any) { emit(log.DebugLevel, msg, keyvals) }
func Info(msg string, keyvals ...any)  { emit(log.InfoLevel, msg, keyvals) }
func Warn(msg string, keyvals ...any)  { emit(log.WarnLevel, msg, keyvals) }
func Error(msg string, keyvals ...any) { emit(log.ErrorLevel, msg, keyvals) }

func emit(level log.Level, msg string, keyvals []any) {
	if Logger != nil {
		Logger.Log(level, msg, keyvals...)
	}
}
