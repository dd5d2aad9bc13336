package filmgrade

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestLoggerSilentByDefault(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger must discard all levels")
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	NewRenderer(DefaultParams())
	if !strings.Contains(buf.String(), "renderer built") {
		t.Errorf("expected construction log, got %q", buf.String())
	}

	SetLogger(nil)
	buf.Reset()
	NewRenderer(DefaultParams())
	if buf.Len() != 0 {
		t.Error("nil logger must restore silence")
	}
}

// TestClampWarning verifies NewRenderer warns when sanitization changes
// a parameter and stays quiet for legal input.
func TestClampWarning(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	p := DefaultParams()
	p.Exposure = float32(math.NaN())
	NewRenderer(p)
	if !strings.Contains(buf.String(), "parameters clamped") {
		t.Errorf("expected clamp warning, got %q", buf.String())
	}

	buf.Reset()
	NewRenderer(DefaultParams())
	if buf.Len() != 0 {
		t.Errorf("legal params must not warn, got %q", buf.String())
	}
}
