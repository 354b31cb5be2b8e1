package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New(false)
	if err != nil {
		t.Fatalf("New(false) error = %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled without verbose")
	}

	verbose, err := New(true)
	if err != nil {
		t.Fatalf("New(true) error = %v", err)
	}
	if !verbose.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be enabled with verbose")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	l := zap.NewExample()
	if OrNop(l) != l {
		t.Error("OrNop should return the given logger")
	}
	// Must not panic on a nil parent.
	Component(nil, "weather").Info("ok")
}
