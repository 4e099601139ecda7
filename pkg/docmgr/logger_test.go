package docmgr

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name           string
		level          string
		expectedOutput []string
		notExpected    []string
	}{
		{
			name:           "debug level shows all messages",
			level:          "debug",
			expectedOutput: []string{"DEBUG", "debug message", "INFO", "WARN", "ERROR"},
		},
		{
			name:           "info level hides debug messages",
			level:          "info",
			expectedOutput: []string{"INFO", "info message", "WARN", "ERROR"},
			notExpected:    []string{"DEBUG", "debug message"},
		},
		{
			name:           "warn level shows only warnings and errors",
			level:          "warn",
			expectedOutput: []string{"WARN", "warn message", "ERROR"},
			notExpected:    []string{"DEBUG", "INFO"},
		},
		{
			name:        "off hides everything",
			level:       "off",
			notExpected: []string{"DEBUG", "INFO", "WARN", "ERROR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(zapcore.AddSync(&buf), parseLogLevel(tt.level))
			logger.Debug("debug message")
			logger.Info("info message")
			logger.Warn("warn message")
			logger.Error("error message", zap.Int("table", 2))

			output := buf.String()
			for _, expected := range tt.expectedOutput {
				if !strings.Contains(output, expected) {
					t.Errorf("Expected output to contain %q, got: %s", expected, output)
				}
			}
			for _, notExpected := range tt.notExpected {
				if strings.Contains(output, notExpected) {
					t.Errorf("Expected output not to contain %q, got: %s", notExpected, output)
				}
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"off":     zapcore.FatalLevel + 1,
		"verbose": zapcore.InfoLevel,
	}
	for input, want := range tests {
		if got := parseLogLevel(input); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestSetLogger(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	var buf bytes.Buffer
	SetLogger(NewLogger(zapcore.AddSync(&buf), zapcore.DebugLevel))

	mgr, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := mgr.AddHeading("Logged", 1); err != nil {
		t.Fatalf("AddHeading failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Added heading") {
		t.Errorf("Expected manager to log through the package logger, got: %s", output)
	}
	if !strings.Contains(output, "<memory>") {
		t.Errorf("Expected the doc field on every entry, got: %s", output)
	}

	SetLogger(nil)
	if GetLogger() == nil {
		t.Error("SetLogger(nil) should install a no-op logger")
	}
}
