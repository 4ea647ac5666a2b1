package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Leveled logger shared by the gateway, the stores and the CLI.
// Backed by logrus; callers keep the printf-style helpers and can attach
// structured fields through WithFields.

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// Fields is an alias so callers don't need to import logrus.
type Fields = logrus.Fields

var (
	mu     sync.RWMutex
	logger *logrus.Logger = newLogger()
	level  Level          = LevelInfo
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	l.SetLevel(logrus.DebugLevel)
	return l
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level = LevelDebug
	case "warn", "warning":
		level = LevelWarn
	case "error":
		level = LevelError
	case "fatal":
		level = LevelFatal
	default:
		level = LevelInfo
	}
}

// SetJSON switches the output to logrus' JSON formatter.
func SetJSON(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	if enabled {
		logger.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
}

func shouldLog(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func Debugf(format string, v ...interface{}) {
	if !shouldLog(LevelDebug) {
		return
	}
	logger.Debugf(format, v...)
}

func Infof(format string, v ...interface{}) {
	if !shouldLog(LevelInfo) {
		return
	}
	logger.Infof(format, v...)
}

func Warnf(format string, v ...interface{}) {
	if !shouldLog(LevelWarn) {
		return
	}
	logger.Warnf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	if !shouldLog(LevelError) {
		return
	}
	logger.Errorf(format, v...)
}

func Fatalf(format string, v ...interface{}) {
	logger.Errorf(format, v...)
	os.Exit(1)
}

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) {
	if !shouldLog(LevelInfo) {
		return
	}
	logger.Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// Debug/Info/Warn/Error helpers that accept a single string
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// Entry is a field-scoped logger honoring the package level.
type Entry struct {
	e *logrus.Entry
}

// WithFields returns an Entry that attaches fields to every line it writes.
func WithFields(f Fields) Entry {
	return Entry{e: logger.WithFields(f)}
}

func (e Entry) Debugf(format string, v ...interface{}) {
	if shouldLog(LevelDebug) {
		e.e.Debugf(format, v...)
	}
}

func (e Entry) Infof(format string, v ...interface{}) {
	if shouldLog(LevelInfo) {
		e.e.Infof(format, v...)
	}
}

func (e Entry) Warnf(format string, v ...interface{}) {
	if shouldLog(LevelWarn) {
		e.e.Warnf(format, v...)
	}
}

func (e Entry) Errorf(format string, v ...interface{}) {
	if shouldLog(LevelError) {
		e.e.Errorf(format, v...)
	}
}

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
