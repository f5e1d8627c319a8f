package logger

import (
	"os"

	"github.com/grassroot-hq/grassroot-apiclient/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the object-logging surface components accept.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) InfoObj(string, string, interface{})  {}
func (NopLogger) DebugObj(string, string, interface{}) {}
func (NopLogger) WarnObj(string, string, interface{})  {}
func (NopLogger) ErrorObj(string, string, interface{}) {}

// Zap routes Logger calls to the package-level logger set by Init.
type Zap struct{}

func (Zap) InfoObj(msg, key string, obj interface{})  { write(zapcore.InfoLevel, msg, key, obj) }
func (Zap) DebugObj(msg, key string, obj interface{}) { write(zapcore.DebugLevel, msg, key, obj) }
func (Zap) WarnObj(msg, key string, obj interface{})  { write(zapcore.WarnLevel, msg, key, obj) }
func (Zap) ErrorObj(msg, key string, obj interface{}) { write(zapcore.ErrorLevel, msg, key, obj) }

// Package-level logger to be used across packages after Init.
var S *zap.SugaredLogger

// objLog backs the *Obj helpers. Every helper reaches Check through write,
// so two frames are skipped to report the helper's caller.
var objLog *zap.Logger

func setLogger(l *zap.Logger) {
	S = l.Sugar()
	objLog = l.WithOptions(zap.AddCallerSkip(2))
}

// Init initializes a zap SugaredLogger using settings from config.
func Init(cfg *config.Config) (*zap.SugaredLogger, error) {
	var level zapcore.Level
	switch cfg.LogLevel {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn", "warning":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	// stdout carries command output, so logs go to stderr.
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(zapcore.Lock(os.Stderr)),
		level,
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("app", cfg.AppName), zap.String("env", cfg.Env))
	setLogger(logger)
	return S, nil
}

// Close flushes any buffered loggers.
func Close() error {
	if S == nil {
		return nil
	}
	return S.Sync()
}

// Minimal object logging helpers -------------------------------------------------
// These log the given object as a structured field named `key`.
func InfoObj(msg, key string, obj interface{})  { write(zapcore.InfoLevel, msg, key, obj) }
func DebugObj(msg, key string, obj interface{}) { write(zapcore.DebugLevel, msg, key, obj) }
func WarnObj(msg, key string, obj interface{})  { write(zapcore.WarnLevel, msg, key, obj) }
func ErrorObj(msg, key string, obj interface{}) { write(zapcore.ErrorLevel, msg, key, obj) }

func write(lvl zapcore.Level, msg, key string, obj interface{}) {
	if objLog == nil {
		return
	}
	if ce := objLog.Check(lvl, msg); ce != nil {
		ce.Write(zap.Any(key, obj))
	}
}
