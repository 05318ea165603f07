package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestInitForCLIWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Info("TestSubsystem", "hello %s", "world")

	out := buf.String()
	if !strings.Contains(out, "hello world") {
		t.Errorf("expected message in output, got: %s", out)
	}
	if !strings.Contains(out, "subsystem=TestSubsystem") {
		t.Errorf("expected subsystem attribute, got: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)

	Debug("Test", "debug message")
	Info("Test", "info message")
	Warn("Test", "warn message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below filter level should be suppressed, got: %s", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("expected warn message in output, got: %s", out)
	}
}

func TestErrorAttachesErrAttribute(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Error("Test", errors.New("boom"), "something failed")

	out := buf.String()
	if !strings.Contains(out, "error=boom") {
		t.Errorf("expected error attribute, got: %s", out)
	}
}
