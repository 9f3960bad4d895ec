// Package logging provides the leveled logger handed to engine components.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger is a zap sugared logger whose minimum level can be switched
// between info and debug at runtime.
type DefaultLogger struct {
	level zap.AtomicLevel
	*zap.SugaredLogger
}

func New(prefix string, debug bool) *DefaultLogger {
	return NewWithWriters(prefix, debug, os.Stdout, os.Stderr)
}

// NewWithWriters routes info/debug to out and warnings/errors to errOut.
func NewWithWriters(prefix string, debug bool, out, errOut io.Writer) *DefaultLogger {
	level := levelFor(debug)
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000")
	enc := zapcore.NewConsoleEncoder(encCfg)

	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return level.Enabled(l) && l < zapcore.WarnLevel })
	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return level.Enabled(l) && l >= zapcore.WarnLevel })
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(out)), low),
		zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(errOut)), high),
	)
	return NewWithCore(prefix, level, core)
}

// NewWithCore logs through core. The core should gate entries on level so
// SetDebug takes effect.
func NewWithCore(prefix string, level zap.AtomicLevel, core zapcore.Core) *DefaultLogger {
	l := zap.New(core)
	if prefix != "" {
		l = l.Named(prefix)
	}
	return &DefaultLogger{level: level, SugaredLogger: l.Sugar()}
}

func levelFor(debug bool) zap.AtomicLevel {
	if debug {
		return zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zap.NewAtomicLevelAt(zapcore.InfoLevel)
}

// DebugEnabled reports whether a debug entry would reach the output.
func (l *DefaultLogger) DebugEnabled() bool {
	return l.Desugar().Core().Enabled(zapcore.DebugLevel)
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	if enabled {
		l.level.SetLevel(zapcore.DebugLevel)
	} else {
		l.level.SetLevel(zapcore.InfoLevel)
	}
}

// Nop discards everything.
func Nop() Logger {
	return &DefaultLogger{level: zap.NewAtomicLevel(), SugaredLogger: zap.NewNop().Sugar()}
}
