package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"verbose", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseLevel(tt.in)
			if tt.want == "" {
				if got != nil {
					t.Errorf("parseLevel(%q) = %v, want nil", tt.in, *got)
				}
				return
			}
			if got == nil || got.String() != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "syl.log")
	log := NewFile("info", path).With(String("component", "test"))

	log.Debug("hidden")
	log.Info("written", Int("n", 3))
	if err := log.Sync(); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %s", out)
	}
	for _, want := range []string{`"msg":"written"`, `"n":3`, `"component":"test"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}
