package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.Data != "./data/allsides_test_lex_inf_det.jsonl" {
		t.Errorf("unexpected default data %q", cfg.Data)
	}
	if cfg.Strict || cfg.Watch {
		t.Error("strict and watch are off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biasview", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level, got %q", cfg.LogLevel)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults were not written: %v", err)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("strict: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Strict {
		t.Error("strict should be read from file")
	}
	if cfg.Data == "" {
		t.Error("data should fall back to the default")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "data: [", "parsing config"},
		{"bad scheme", "data: ftp://example.com/x.jsonl", "scheme"},
		{"bad timeout", "fetch_timeout: soon", "fetch_timeout"},
		{"negative timeout", "fetch_timeout: -1s", "negative"},
		{"bad level", "log_level: loud", "log_level"},
		{"watch remote", "data: https://example.com/x.jsonl\nwatch: true", "watch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestFetchTimeoutDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"", 0},
		{"10s", 10 * time.Second},
		{"garbage", 0},
	}
	for _, tt := range tests {
		cfg := &Config{FetchTimeout: tt.input}
		if got := cfg.FetchTimeoutDuration(); got != tt.want {
			t.Errorf("FetchTimeoutDuration(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogPath(t *testing.T) {
	if (&Config{LogFile: LogOff}).LogPath() != "" {
		t.Error("off disables logging")
	}
	if got := (&Config{LogFile: "/tmp/x.log"}).LogPath(); got != "/tmp/x.log" {
		t.Errorf("got %q", got)
	}
	if got := (&Config{}).LogPath(); !strings.HasSuffix(got, filepath.Join("biasview", "biasview.log")) {
		t.Errorf("unexpected default log path %q", got)
	}
}

func TestIsRemote(t *testing.T) {
	if !(&Config{Data: "https://example.com/d.jsonl"}).IsRemote() {
		t.Error("https is remote")
	}
	if (&Config{Data: "./data/d.jsonl"}).IsRemote() {
		t.Error("relative path is local")
	}
}
