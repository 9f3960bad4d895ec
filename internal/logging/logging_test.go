package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(debug bool) (*DefaultLogger, *observer.ObservedLogs) {
	level := levelFor(debug)
	core, logs := observer.New(level)
	return NewWithCore("engine", level, core), logs
}

func TestLevelsAndPrefix(t *testing.T) {
	l, logs := observed(false)

	l.Debugf("hidden %d", 1)
	l.Infof("hello %s", "world")
	l.Warnf("careful")
	l.Errorf("broken %v", 42)

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "hello world", entries[0].Message)
	assert.Equal(t, "engine", entries[0].LoggerName)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "broken 42", entries[2].Message)
	assert.Zero(t, logs.FilterMessage("hidden 1").Len())
}

func TestDebugToggle(t *testing.T) {
	l, logs := observed(false)
	assert.False(t, l.DebugEnabled())

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("visible")
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.DebugLevel).Len())

	l.SetDebug(false)
	l.Debugf("gone")
	assert.Equal(t, 1, logs.Len())
}

func TestWritersSplitByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWithWriters("engine", false, &out, &errOut)

	l.Infof("hello")
	l.Errorf("broken")
	l.Debugf("hidden")

	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "engine")
	assert.NotContains(t, out.String(), "broken")
	assert.Contains(t, errOut.String(), "broken")
	assert.NotContains(t, out.String()+errOut.String(), "hidden")
}

func TestNopIsSilent(t *testing.T) {
	l := Nop()
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	l.Errorf("nothing")
}

func TestNewWithCoreWithoutPrefix(t *testing.T) {
	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	core, logs := observer.New(level)
	l := NewWithCore("", level, core)
	l.Infof("dropped")
	l.Warnf("kept")
	require.Equal(t, 1, logs.Len())
	assert.Empty(t, logs.All()[0].LoggerName)
}
