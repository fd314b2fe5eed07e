package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestFacadeWritesComponentTaggedLines(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(zapcore.AddSync(buf))
	SetLevel(DEBUG)
	t.Cleanup(func() {
		SetOutput(zapcore.Lock(zapcore.AddSync(bytes.NewBuffer(nil))))
		SetLevel(INFO)
	})

	DebugC("memory", "debug message")
	DebugCF("memory", "debug with fields", map[string]interface{}{"count": 1})
	InfoC("agent", "info message")
	InfoCF("agent", "info with fields", map[string]interface{}{"session_key": "s"})
	WarnC("agent", "warn message")
	WarnCF("agent", "warn with fields", map[string]interface{}{"retries": 2})
	ErrorC("analyzer", "error message")
	ErrorCF("analyzer", "error with fields", map[string]interface{}{"status": 500})

	out := buf.String()
	for _, want := range []string{
		"DEBUG", "debug message", "debug with fields",
		"INFO", "info message", "info with fields",
		"WARN", "warn message",
		"ERROR", "error message",
		`"component": "memory"`,
		`"component": "agent"`,
		`"component": "analyzer"`,
		`"count": 1`,
		`"session_key": "s"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSetLevelFiltersBelowThreshold(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(zapcore.AddSync(buf))
	SetLevel(WARN)
	t.Cleanup(func() {
		SetOutput(zapcore.Lock(zapcore.AddSync(bytes.NewBuffer(nil))))
		SetLevel(INFO)
	})

	InfoC("agent", "filtered info")
	WarnC("agent", "visible warning")

	out := buf.String()
	if strings.Contains(out, "filtered info") {
		t.Errorf("info line should be filtered at WARN level:\n%s", out)
	}
	if !strings.Contains(out, "visible warning") {
		t.Errorf("warning missing from output:\n%s", out)
	}
}
