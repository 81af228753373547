package peerseek

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Package-wide structured logger. Every component logs through the
// helpers below so the CLI can set one level for the whole run.
var logInstance = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return l
}

// SetLogLevel adjusts the shared logger level. Accepted values are
// "debug", "info", "warn"/"warning" and "error"; anything else leaves the
// level untouched and logs a warning.
func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		logInstance.SetLevel(logrus.DebugLevel)
	case "info":
		logInstance.SetLevel(logrus.InfoLevel)
	case "warn", "warning":
		logInstance.SetLevel(logrus.WarnLevel)
	case "error":
		logInstance.SetLevel(logrus.ErrorLevel)
	default:
		logInstance.Warnf("Unknown log level '%s', keeping %s", level, logInstance.GetLevel())
	}
}

// Debug logs a debug message with optional arguments.
func Debug(message string, args ...interface{}) {
	if len(args) == 0 {
		logInstance.Debug(message)
		return
	}
	logInstance.Debugf(message, args...)
}

// Info logs an info message with optional arguments.
func Info(message string, args ...interface{}) {
	if len(args) == 0 {
		logInstance.Info(message)
		return
	}
	logInstance.Infof(message, args...)
}

// Warning logs a warning message with optional arguments.
func Warning(message string, args ...interface{}) {
	if len(args) == 0 {
		logInstance.Warn(message)
		return
	}
	logInstance.Warnf(message, args...)
}

// Error logs an error message with optional arguments.
func Error(message string, args ...interface{}) {
	if len(args) == 0 {
		logInstance.Error(message)
		return
	}
	logInstance.Errorf(message, args...)
}
