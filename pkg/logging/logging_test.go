package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "biasview.log")

	logger, err := New(path, "debug")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("dataset loaded", zap.Int("issues", 2))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"dataset loaded"`) || !strings.Contains(string(data), `"issues":2`) {
		t.Errorf("unexpected log output %q", data)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biasview.log")

	logger, err := New(path, "warn")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("quiet")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "quiet") {
		t.Error("info should be dropped at warn level")
	}
}

func TestNewEmptyPathIsNop(t *testing.T) {
	logger, err := New("", "info")
	if err != nil {
		t.Fatal(err)
	}
	if logger.Core().Enabled(zap.ErrorLevel) {
		t.Error("expected a no-op logger")
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "x.log"), "loud"); err == nil {
		t.Error("expected an error")
	}
}
