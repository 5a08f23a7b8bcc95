package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"WARN", WarnLevel},
		{"WARNING", WarnLevel},
		{"error", ErrorLevel},
		{"invalid", InfoLevel}, // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFieldConstructors(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		f := String("key", "value")
		if f.Key != "key" || f.Value != "value" {
			t.Errorf("String() = %+v, want {Key:key Value:value}", f)
		}
	})

	t.Run("Float64", func(t *testing.T) {
		f := Float64("pressure", 101325.0)
		if f.Key != "pressure" || f.Value != 101325.0 {
			t.Errorf("Float64() = %+v", f)
		}
	})

	t.Run("Duration", func(t *testing.T) {
		f := Duration("elapsed", 5*time.Second)
		if f.Key != "elapsed" || f.Value != "5s" {
			t.Errorf("Duration() = %+v", f)
		}
	})

	t.Run("Error", func(t *testing.T) {
		err := errors.New("test error")
		f := Error(err)
		if f.Key != "error" || f.Value != "test error" {
			t.Errorf("Error() = %+v", f)
		}
	})

	t.Run("Error_nil", func(t *testing.T) {
		f := Error(nil)
		if f.Key != "error" || f.Value != nil {
			t.Errorf("Error(nil) = %+v", f)
		}
	})

	t.Run("Model", func(t *testing.T) {
		f := Model("pump1")
		if f.Key != "model" || f.Value != "pump1" {
			t.Errorf("Model() = %+v", f)
		}
	})

	t.Run("Iteration", func(t *testing.T) {
		f := Iteration(3)
		if f.Key != "iteration" || f.Value != 3 {
			t.Errorf("Iteration() = %+v", f)
		}
	})
}

func TestJSONLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("solve finished", Status("success"), Iteration(2))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("Level = %q, want INFO", entry.Level)
	}
	if entry.Message != "solve finished" {
		t.Errorf("Message = %q", entry.Message)
	}
	if entry.Fields["status"] != "success" {
		t.Errorf("Fields[status] = %v", entry.Fields["status"])
	}
}

func TestJSONLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("not visible")
	logger.Info("not visible either")
	logger.Warn("visible")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "visible") {
		t.Errorf("unexpected line: %q", lines[0])
	}
}

func TestJSONLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Model("pump1"))
	child.Info("equation evaluated")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Fields["model"] != "pump1" {
		t.Errorf("Fields[model] = %v, want pump1", entry.Fields["model"])
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	// Must not panic and must accept all calls
	logger.Debug("x")
	logger.Info("x")
	logger.Warn("x")
	logger.Error("x")
	if logger.With(String("a", "b")) == nil {
		t.Error("With() returned nil")
	}
}
