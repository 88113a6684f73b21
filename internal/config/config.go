package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const appName = "seeyoulater"

type Config struct {
	Database string        `yaml:"database"` // path to the SQLite file
	Timeout  time.Duration `yaml:"timeout"`  // remote request and page fetch timeout (default: 10s)

	LogLevel  string `yaml:"log_level"`  // "debug" | "info" | "warn" | "error"
	PrettyLog bool   `yaml:"pretty_log"` // true => zap dev (color), false => zap prod (JSON)
	LogFile   string `yaml:"log_file"`   // optional, rotated JSON log file instead of stderr

	// FetchMetadata enables page title/description lookup on add.
	FetchMetadata bool `yaml:"fetch_metadata"`

	Remote *RemoteConfig `yaml:"remote"` // set => commands go to a remote server
	Server *ServerConfig `yaml:"server"` // required by syl-server
	Redis  *RedisConfig  `yaml:"redis"`  // optional metadata cache
}

type RemoteConfig struct {
	URL       string  `yaml:"url"`        // ex: "http://bookmarks.lan:8080"
	Username  string  `yaml:"username"`   // sent as X-Username
	Password  string  `yaml:"password"`   // sent as X-Password
	RateLimit float64 `yaml:"rate_limit"` // max requests per second, 0 = unlimited
}

type ServerConfig struct {
	Listen          string        `yaml:"listen"`           // ex: ":8080"
	Username        string        `yaml:"username"`         // expected X-Username
	Password        string        `yaml:"password"`         // expected X-Password
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // ex: 5s
	RequestTimeout  time.Duration `yaml:"request_timeout"`  // per-request handler timeout
	AllowedCIDRS    []string      `yaml:"allowed_cidrs"`    // optional, restricts /healthz
	TrustProxy      bool          `yaml:"trust_proxy"`      // true => trust X-Forwarded-For headers
	RateBurst       int           `yaml:"rate_burst"`       // per-IP burst, 0 = no rate limit
	RatePerMinute   int           `yaml:"rate_per_minute"`  // per-IP refill
}

type RedisConfig struct {
	Addr           string        `yaml:"addr"`            // ex: "localhost:6379"
	User           string        `yaml:"user"`            // optional
	Password       string        `yaml:"password"`        // optional
	DB             int           `yaml:"db"`              // Redis DB number
	DialTimeout    time.Duration `yaml:"dial_timeout"`    // ex: 5s
	ReadTimeout    time.Duration `yaml:"read_timeout"`    // ex: 3s
	WriteTimeout   time.Duration `yaml:"write_timeout"`   // ex: 3s
	PoolSize       int           `yaml:"pool_size"`       // connection pool size
	ConnectTimeout time.Duration `yaml:"connect_timeout"` // total time to retry connecting
	RetryInterval  time.Duration `yaml:"retry_interval"`  // initial wait between retries
	MaxWait        time.Duration `yaml:"max_wait"`        // max wait between retries
	PingTimeout    time.Duration `yaml:"ping_timeout"`    // timeout for each ping attempt
	WarnThreshold  int           `yaml:"warn_threshold"`  // warn after this many attempts
	TTL            time.Duration `yaml:"ttl"`             // metadata cache lifetime
}

// Load builds the configuration from, in increasing priority: defaults,
// the YAML file at path (or the default location when path is empty), a
// .env file in the working directory, and SYL_* environment variables.
func Load(path string) (*Config, error) {
	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()

	explicit := path != ""
	if !explicit {
		path = getenv("SYL_CONFIG", DefaultConfigPath())
		explicit = os.Getenv("SYL_CONFIG") != ""
	}
	if err := cfg.loadFile(path, explicit); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Database:      DefaultDatabasePath(),
		Timeout:       10 * time.Second,
		LogLevel:      "warn",
		PrettyLog:     true,
		FetchMetadata: true,
	}
}

// loadFile merges the YAML file at path into c. A missing file is only an
// error when the caller asked for it explicitly.
func (c *Config) loadFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Database = getenv("SYL_DATABASE", c.Database)
	c.Timeout = mustDuration("SYL_TIMEOUT", c.Timeout)
	c.LogLevel = getenv("SYL_LOG_LEVEL", c.LogLevel)
	c.PrettyLog = mustBool("SYL_PRETTY_LOG", c.PrettyLog)
	c.LogFile = getenv("SYL_LOG_FILE", c.LogFile)
	c.FetchMetadata = mustBool("SYL_FETCH_METADATA", c.FetchMetadata)

	if url := os.Getenv("SYL_REMOTE_URL"); url != "" {
		if c.Remote == nil {
			c.Remote = &RemoteConfig{}
		}
		c.Remote.URL = url
	}
	if c.Remote != nil {
		c.Remote.Username = getenv("SYL_REMOTE_USERNAME", c.Remote.Username)
		c.Remote.Password = getenv("SYL_REMOTE_PASSWORD", c.Remote.Password)
	}

	if listen := os.Getenv("SYL_SERVER_LISTEN"); listen != "" {
		if c.Server == nil {
			c.Server = &ServerConfig{}
		}
		c.Server.Listen = listen
	}
	if c.Server != nil {
		c.Server.Username = getenv("SYL_SERVER_USERNAME", c.Server.Username)
		c.Server.Password = getenv("SYL_SERVER_PASSWORD", c.Server.Password)
		c.Server.ShutdownTimeout = mustDuration("SYL_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
		c.Server.TrustProxy = mustBool("SYL_TRUST_PROXY", c.Server.TrustProxy)
		c.Server.RateBurst = getenvInt("SYL_RATE_BURST", c.Server.RateBurst)
		c.Server.RatePerMinute = getenvInt("SYL_RATE_PER_MINUTE", c.Server.RatePerMinute)
		if cidrs := parseAllowedIPs(os.Getenv("SYL_ALLOWED_CIDRS")); cidrs != nil {
			c.Server.AllowedCIDRS = cidrs
		}
	}

	if addr := os.Getenv("SYL_REDIS_ADDR"); addr != "" {
		if c.Redis == nil {
			c.Redis = &RedisConfig{}
		}
		c.Redis.Addr = addr
	}
	if c.Redis != nil {
		c.Redis.User = getenv("SYL_REDIS_USERNAME", c.Redis.User)
		c.Redis.Password = getenv("SYL_REDIS_PASSWORD", c.Redis.Password)
		c.Redis.DB = getenvInt("SYL_REDIS_DB", c.Redis.DB)
	}
}

// fillDefaults sets defaults inside optional sections once they exist.
func (c *Config) fillDefaults() {
	if c.Server != nil {
		setDefault(&c.Server.Listen, ":8080")
		setDefaultDuration(&c.Server.ShutdownTimeout, 5*time.Second)
		setDefaultDuration(&c.Server.RequestTimeout, 30*time.Second)
		if c.Server.RateBurst > 0 && c.Server.RatePerMinute <= 0 {
			c.Server.RatePerMinute = 60
		}
	}
	if c.Redis != nil {
		setDefaultDuration(&c.Redis.DialTimeout, 5*time.Second)
		setDefaultDuration(&c.Redis.ReadTimeout, 3*time.Second)
		setDefaultDuration(&c.Redis.WriteTimeout, 3*time.Second)
		setDefaultDuration(&c.Redis.ConnectTimeout, 10*time.Second)
		setDefaultDuration(&c.Redis.RetryInterval, time.Second)
		setDefaultDuration(&c.Redis.MaxWait, 5*time.Second)
		setDefaultDuration(&c.Redis.PingTimeout, 2*time.Second)
		if c.Redis.PoolSize <= 0 {
			c.Redis.PoolSize = 10
		}
		if c.Redis.WarnThreshold <= 0 {
			c.Redis.WarnThreshold = 3
		}
	}
}

// Validate checks section consistency.
func (c *Config) Validate() error {
	if c.Database == "" {
		return errors.New("database path is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %v", c.Timeout)
	}
	if c.Remote != nil && c.Remote.URL == "" {
		return errors.New("remote.url is required when a remote section is present")
	}
	if c.Server != nil && (c.Server.Username == "" || c.Server.Password == "") {
		return errors.New("server.username and server.password are required")
	}
	if c.Redis != nil && c.Redis.Addr == "" {
		return errors.New("redis.addr is required when a redis section is present")
	}
	return nil
}

// Redacted returns a copy safe to log.
func (c *Config) Redacted() Config {
	cp := *c
	if c.Remote != nil {
		r := *c.Remote
		r.Password = "***REDACTED***"
		cp.Remote = &r
	}
	if c.Server != nil {
		s := *c.Server
		s.Password = "***REDACTED***"
		cp.Server = &s
	}
	if c.Redis != nil {
		r := *c.Redis
		r.Password = "***REDACTED***"
		cp.Redis = &r
	}
	return cp
}

// EnsureDatabaseDir creates the directory holding the database file.
func (c *Config) EnsureDatabaseDir() error {
	if c.Database == ":memory:" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(c.Database), 0o755)
}

// DefaultDatabasePath is $XDG_DATA_HOME/seeyoulater/seeyoulater.db.
func DefaultDatabasePath() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return appName + ".db"
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, appName, appName+".db")
}

// DefaultConfigPath is <user config dir>/seeyoulater/config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, appName, "config.yaml")
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func setDefault(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

func setDefaultDuration(v *time.Duration, def time.Duration) {
	if *v <= 0 {
		*v = def
	}
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
