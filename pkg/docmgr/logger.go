package docmgr

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger      *zap.Logger
	globalLevel       = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	globalLoggerMutex sync.RWMutex
	globalLoggerOnce  sync.Once
)

func initGlobalLogger() {
	globalLoggerOnce.Do(func() {
		globalLevel.SetLevel(parseLogLevel(GetGlobalConfig().LogLevel))
		logger := NewLogger(os.Stderr, globalLevel)
		globalLoggerMutex.Lock()
		if globalLogger == nil {
			globalLogger = logger
		}
		globalLoggerMutex.Unlock()
	})
}

// parseLogLevel maps a configured level name to a zap level. "off" maps to
// a level above fatal so nothing is written.
func parseLogLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "off":
		return zapcore.FatalLevel + 1
	default:
		return zapcore.InfoLevel // Default to info
	}
}

// NewLogger builds a console logger writing to w at the given level
func NewLogger(w zapcore.WriteSyncer, level zapcore.LevelEnabler) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(w), level)
	return zap.New(core)
}

// SetLogger replaces the package logger. A nil logger discards everything.
func SetLogger(logger *zap.Logger) {
	initGlobalLogger()
	if logger == nil {
		logger = zap.NewNop()
	}
	globalLoggerMutex.Lock()
	globalLogger = logger
	globalLoggerMutex.Unlock()
}

// GetLogger returns the package logger
func GetLogger() *zap.Logger {
	initGlobalLogger()
	globalLoggerMutex.RLock()
	defer globalLoggerMutex.RUnlock()
	return globalLogger
}

// SetLogLevel changes the level of the default package logger
func SetLogLevel(level string) {
	globalLevel.SetLevel(parseLogLevel(level))
}

// UpdateLoggerFromConfig updates the default logger level from the current global configuration
func UpdateLoggerFromConfig() {
	SetLogLevel(GetGlobalConfig().LogLevel)
}
