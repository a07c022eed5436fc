package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the console logger used across the bot. The level is shared so
// it can be changed at runtime.
func New(name string, level zap.AtomicLevel) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stdout),
		level,
	)
	return zap.New(core, zap.AddCaller()).Named(name)
}

// ParseLevel turns a level name such as "debug" into an atomic level.
func ParseLevel(text string) (zap.AtomicLevel, error) {
	return zap.ParseAtomicLevel(text)
}

// BadgerLogger adapts zap to badger.Logger.
type BadgerLogger struct {
	log *zap.SugaredLogger
}

func NewBadgerLogger(log *zap.Logger) *BadgerLogger {
	return &BadgerLogger{log.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (b *BadgerLogger) Errorf(template string, args ...interface{}) {
	b.log.Errorf(template, args...)
}

func (b *BadgerLogger) Warningf(template string, args ...interface{}) {
	b.log.Warnf(template, args...)
}

func (b *BadgerLogger) Infof(template string, args ...interface{}) {
	b.log.Infof(template, args...)
}

func (b *BadgerLogger) Debugf(template string, args ...interface{}) {
	b.log.Debugf(template, args...)
}
