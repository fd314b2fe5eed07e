package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level mirrors zap levels with a small fixed set.
type Level = zapcore.Level

const (
	DEBUG = zapcore.DebugLevel
	INFO  = zapcore.InfoLevel
	WARN  = zapcore.WarnLevel
	ERROR = zapcore.ErrorLevel
)

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(INFO)
	base  = newLogger()
)

func newLogger() *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}

// SetLevel changes the minimum level for all components.
func SetLevel(l Level) {
	level.SetLevel(l)
}

// SetOutput replaces the logger core, writing to w instead of stderr.
// Intended for tests.
func SetOutput(w zapcore.WriteSyncer) {
	mu.Lock()
	defer mu.Unlock()
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	base = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), w, level))
}

func component(name string) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With(zap.String("component", name))
}

func toFields(fields map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

// DebugC logs a component-tagged debug message.
func DebugC(comp, msg string) { component(comp).Debug(msg) }

// DebugCF logs a component-tagged debug message with structured fields.
func DebugCF(comp, msg string, fields map[string]interface{}) {
	component(comp).Debug(msg, toFields(fields)...)
}

// InfoC logs a component-tagged info message.
func InfoC(comp, msg string) { component(comp).Info(msg) }

// InfoCF logs a component-tagged info message with structured fields.
func InfoCF(comp, msg string, fields map[string]interface{}) {
	component(comp).Info(msg, toFields(fields)...)
}

// WarnC logs a component-tagged warning.
func WarnC(comp, msg string) { component(comp).Warn(msg) }

// WarnCF logs a component-tagged warning with structured fields.
func WarnCF(comp, msg string, fields map[string]interface{}) {
	component(comp).Warn(msg, toFields(fields)...)
}

// ErrorC logs a component-tagged error.
func ErrorC(comp, msg string) { component(comp).Error(msg) }

// ErrorCF logs a component-tagged error with structured fields.
func ErrorCF(comp, msg string, fields map[string]interface{}) {
	component(comp).Error(msg, toFields(fields)...)
}
