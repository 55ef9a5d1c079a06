// Package logger holds pado's process-wide logger. Records go to a rotating
// file under the config directory; --debug also echoes them to stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/pado/internal/constants"
)

// Logger is nil until Init or UseWriter runs; the helpers below drop
// records until then.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
}

// rotation limits for the log file
const (
	maxSizeMB   = 5
	maxBackups  = 3
	maxAgeDays  = 28
	logsDirName = "logs"
)

// LogPath is <configdir>/logs/pado.log
func LogPath(cfg Config) string {
	return filepath.Join(cfg.ConfigDir, logsDirName, constants.AppName+".log")
}

func Init(cfg Config) error {
	path := LogPath(cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	level := log.WarnLevel
	if cfg.Debug {
		// stderr belongs to the TUI otherwise
		out = io.MultiWriter(os.Stderr, out)
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		CallerOffset:    2, // emit and the level helper
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// UseWriter swaps in a logger writing to w, for tests and one-off tools
func UseWriter(w io.Writer, level log.Level) {
	Logger = log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: constants.AppName,
	})
}

func emit(level log.Level, msg string, keyvals []interface{}) {
	if Logger == nil {
		return
	}
	Logger.Log(level, msg, keyvals...)
}

func Debug(msg string, keyvals ...interface{}) { emit(log.DebugLevel, msg, keyvals) }
func Info(msg string, keyvals ...interface{})  { emit(log.InfoLevel, msg, keyvals) }
func Warn(msg string, keyvals ...interface{})  { emit(log.WarnLevel, msg, keyvals) }
func Error(msg string, keyvals ...interface{}) { emit(log.ErrorLevel, msg, keyvals) }
