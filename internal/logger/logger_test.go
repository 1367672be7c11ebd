package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewNoopLogger(t *testing.T) {
	l := NewNoopLogger()
	assert.NotNil(t, l)

	// Must be safe to call every method.
	l.Debug("debug", String("k", "v"))
	l.Info("info")
	l.Warn("warn")
	l.Error("error", Err(assert.AnError))
	assert.NoError(t, l.Sync())
}

func TestWithAndNamed(t *testing.T) {
	l := NewNoopLogger()

	child := l.With(String("component", "container")).Named("di")
	assert.NotNil(t, child)
	child.Info("still works")
}

func TestGlobalLogger(t *testing.T) {
	orig := GetGlobalLogger()
	defer SetGlobalLogger(orig)

	l := NewDevelopmentLoggerWithLevel(zapcore.ErrorLevel)
	SetGlobalLogger(l)
	assert.Equal(t, l, GetGlobalLogger())

	// nil must not clobber the global instance.
	SetGlobalLogger(nil)
	assert.Equal(t, l, GetGlobalLogger())
}
