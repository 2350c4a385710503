// Package log provides centralized logging functionality using zap logger.
package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

var log *zap.SugaredLogger

// Init initializes the package-level logger
func Init(debug bool) error {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		zapLogger, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	log = zapLogger.Sugar()
	return nil
}

// GetSugaredLogger returns a sugared logger for handing to profiles and
// stores. The caller skip used by the package wrappers is removed so call
// sites are reported correctly.
func GetSugaredLogger() *zap.SugaredLogger {
	return sugar().Desugar().WithOptions(zap.AddCallerSkip(-1)).Sugar()
}

func sugar() *zap.SugaredLogger {
	if log == nil {
		// Fallback logger if not initialized
		zapLogger, _ := zap.NewProduction(zap.AddCallerSkip(1))
		log = zapLogger.Sugar()
	}
	return log
}

// Sync flushes any buffered log entries
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

// Package-level convenience functions
func Debugf(template string, args ...interface{}) {
	sugar().Debugf(template, args...)
}

func Debugw(msg string, keysAndValues ...interface{}) {
	sugar().Debugw(msg, keysAndValues...)
}

func Infof(template string, args ...interface{}) {
	sugar().Infof(template, args...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	sugar().Infow(msg, keysAndValues...)
}

func Warnf(template string, args ...interface{}) {
	sugar().Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	sugar().Errorf(template, args...)
}

func Fatalf(template string, args ...interface{}) {
	sugar().Fatalf(template, args...)
	os.Exit(1)
}
