package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// isolate points every lookup location at a temp dir so the developer's own
// configuration never leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("HOME", dir)
	for _, k := range []string{
		"SYL_CONFIG", "SYL_DATABASE", "SYL_TIMEOUT", "SYL_LOG_LEVEL", "SYL_PRETTY_LOG", "SYL_LOG_FILE",
		"SYL_FETCH_METADATA", "SYL_REMOTE_URL", "SYL_REMOTE_USERNAME", "SYL_REMOTE_PASSWORD",
		"SYL_SERVER_LISTEN", "SYL_SERVER_USERNAME", "SYL_SERVER_PASSWORD", "SYL_REDIS_ADDR",
		"SYL_RATE_BURST", "SYL_RATE_PER_MINUTE", "SYL_ALLOWED_CIDRS",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	wantDB := filepath.Join(dir, "data", "seeyoulater", "seeyoulater.db")
	if cfg.Database != wantDB {
		t.Errorf("Database = %q, want %q", cfg.Database, wantDB)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if !cfg.FetchMetadata {
		t.Error("FetchMetadata should default to true")
	}
	if cfg.Remote != nil || cfg.Server != nil || cfg.Redis != nil {
		t.Errorf("optional sections should be nil, got remote=%v server=%v redis=%v", cfg.Remote, cfg.Server, cfg.Redis)
	}
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, `
database: /tmp/bookmarks.db
timeout: 3s
log_level: debug
remote:
  url: http://bookmarks.lan:8080
  username: alice
  password: secret
server:
  username: admin
  password: hunter2
  allowed_cidrs: ["10.0.0.0/8"]
redis:
  addr: localhost:6379
  ttl: 1h
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database != "/tmp/bookmarks.db" {
		t.Errorf("Database = %q", cfg.Database)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.Timeout)
	}
	if cfg.Remote == nil || cfg.Remote.URL != "http://bookmarks.lan:8080" || cfg.Remote.Username != "alice" {
		t.Errorf("Remote = %+v", cfg.Remote)
	}
	if cfg.Server == nil {
		t.Fatal("Server section missing")
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("Server.Listen = %q, want default :8080", cfg.Server.Listen)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 5s", cfg.Server.ShutdownTimeout)
	}
	if !reflect.DeepEqual(cfg.Server.AllowedCIDRS, []string{"10.0.0.0/8"}) {
		t.Errorf("Server.AllowedCIDRS = %v", cfg.Server.AllowedCIDRS)
	}
	if cfg.Redis == nil || cfg.Redis.TTL != time.Hour || cfg.Redis.PoolSize != 10 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "database: /tmp/from-file.db\nremote:\n  url: http://file\n")

	t.Setenv("SYL_DATABASE", "/tmp/from-env.db")
	t.Setenv("SYL_REMOTE_URL", "http://env")
	t.Setenv("SYL_REMOTE_PASSWORD", "pw")
	t.Setenv("SYL_SERVER_LISTEN", ":9999")
	t.Setenv("SYL_SERVER_USERNAME", "u")
	t.Setenv("SYL_SERVER_PASSWORD", "p")
	t.Setenv("SYL_ALLOWED_CIDRS", "127.0.0.1/32, 192.168.0.0/16")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database != "/tmp/from-env.db" {
		t.Errorf("Database = %q", cfg.Database)
	}
	if cfg.Remote.URL != "http://env" || cfg.Remote.Password != "pw" {
		t.Errorf("Remote = %+v", cfg.Remote)
	}
	if cfg.Server == nil || cfg.Server.Listen != ":9999" {
		t.Fatalf("Server = %+v", cfg.Server)
	}
	want := []string{"127.0.0.1/32", "192.168.0.0/16"}
	if !reflect.DeepEqual(cfg.Server.AllowedCIDRS, want) {
		t.Errorf("AllowedCIDRS = %v, want %v", cfg.Server.AllowedCIDRS, want)
	}
}

func TestLoad_ConfigFromEnvPath(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "database: /tmp/env-path.db\n")
	t.Setenv("SYL_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database != "/tmp/env-path.db" {
		t.Errorf("Database = %q", cfg.Database)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
		wantErr string
	}{
		{name: "explicit file missing", missing: true, wantErr: "failed to read config"},
		{name: "invalid yaml", content: "database: [", wantErr: "failed to parse config"},
		{name: "remote without url", content: "remote:\n  username: a\n", wantErr: "remote.url"},
		{name: "server without credentials", content: "server:\n  listen: :1\n", wantErr: "server.username"},
		{name: "redis without addr", content: "redis:\n  db: 2\n", wantErr: "redis.addr"},
		{name: "non-positive timeout", content: "timeout: -1s\n", wantErr: "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "absent.yaml")
			if !tt.missing {
				path = writeFile(t, dir, tt.content)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{
		Remote: &RemoteConfig{URL: "http://x", Password: "a"},
		Server: &ServerConfig{Password: "b"},
		Redis:  &RedisConfig{Password: "c"},
	}

	r := cfg.Redacted()
	if r.Remote.Password == "a" || r.Server.Password == "b" || r.Redis.Password == "c" {
		t.Errorf("Redacted() leaked a password: %+v %+v %+v", r.Remote, r.Server, r.Redis)
	}
	if cfg.Remote.Password != "a" || cfg.Server.Password != "b" || cfg.Redis.Password != "c" {
		t.Error("Redacted() modified the original")
	}
}

func TestEnsureDatabaseDir(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Database: filepath.Join(dir, "a", "b", "db.sqlite")}

	if err := cfg.EnsureDatabaseDir(); err != nil {
		t.Fatalf("EnsureDatabaseDir() error = %v", err)
	}
	if fi, err := os.Stat(filepath.Join(dir, "a", "b")); err != nil || !fi.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      int
		expected int
	}{
		{name: "valid integer", key: "TEST_INT", value: "42", def: 1, expected: 42},
		{name: "invalid integer uses default", key: "TEST_INT_INVALID", value: "nope", def: 7, expected: 7},
		{name: "missing variable uses default", key: "TEST_INT_MISSING", value: "", def: 3, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if result := getenvInt(tt.key, tt.def); result != tt.expected {
				t.Errorf("getenvInt() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "a", expected: []string{"a"}},
		{name: "spaces and quotes", input: ` "a" , 'b',, c `, expected: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("splitAndTrim(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "false",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}
