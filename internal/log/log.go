// Package log provides centralized logging functionality using zap logger.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

var log *zap.SugaredLogger
var baseLogger *zap.Logger

// Init initializes the package-level logger. Without debug only warnings and
// errors reach stderr so reports on stdout stay clean.
func Init(debug bool) error {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		cfg.Sampling = nil
		zapLogger, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	baseLogger = zapLogger
	log = zapLogger.WithOptions(zap.AddCallerSkip(1)).Sugar()
	return nil
}

// GetZapLogger returns the base zap logger, handed to the analyzer engine.
func GetZapLogger() *zap.Logger {
	if baseLogger == nil {
		// Fallback logger if not initialized
		baseLogger = zap.NewNop()
		log = baseLogger.Sugar()
	}
	return baseLogger
}

// Sync flushes any buffered log entries
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

func sugared() *zap.SugaredLogger {
	if log == nil {
		GetZapLogger()
	}
	return log
}

func Debugw(msg string, keysAndValues ...interface{}) {
	sugared().Debugw(msg, keysAndValues...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	sugared().Infow(msg, keysAndValues...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	sugared().Warnw(msg, keysAndValues...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	sugared().Errorw(msg, keysAndValues...)
}
