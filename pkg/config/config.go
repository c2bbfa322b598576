package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override their config-file counterparts.
// The session cookie is a static long-lived credential; how it is obtained
// or refreshed is outside this program
const (
	EnvSessionCookie = "CHEF_SESSION_COOKIE"
	EnvCSRFToken     = "CHEF_CSRF_TOKEN"
)

// AppConfig holds the global application configuration
type AppConfig struct {
	BaseURL       string `yaml:"base_url,omitempty"`       // Upstream site root
	SolutionsDir  string `yaml:"solutions_dir,omitempty"`  // Root of the on-disk solution archive
	SessionCookie string `yaml:"session_cookie,omitempty"` // Cookie for the structured (JSON) endpoints
	CSRFToken     string `yaml:"csrf_token,omitempty"`     // Token sent alongside the cookie

	MaxAttempts   int           `yaml:"max_attempts,omitempty"`    // Fetch attempts before giving up
	MinRetryDelay time.Duration `yaml:"min_retry_delay,omitempty"` // Lower bound of the randomized backoff window
	MaxRetryDelay time.Duration `yaml:"max_retry_delay,omitempty"` // Upper bound of the randomized backoff window

	MaxWorkers int    `yaml:"max_workers,omitempty"` // Worker-pool ceiling for fan-out scraping
	ListenAddr string `yaml:"listen_addr,omitempty"` // Address for the serve subcommand

	HTTPClientSettings HTTPClientConfig `yaml:"http_client_settings,omitempty"`
}

// HTTPClientConfig holds settings for the shared HTTP client
type HTTPClientConfig struct {
	Timeout             time.Duration `yaml:"timeout,omitempty"`                 // Overall request timeout (upstream pages are heavy)
	MaxIdleConns        int           `yaml:"max_idle_conns,omitempty"`          // Max total idle connections
	MaxIdleConnsPerHost int           `yaml:"max_idle_conns_per_host,omitempty"` // Max idle connections per host
	IdleConnTimeout     time.Duration `yaml:"idle_conn_timeout,omitempty"`       // Timeout for idle connections
	TLSHandshakeTimeout time.Duration `yaml:"tls_handshake_timeout,omitempty"`   // Timeout for TLS handshake
	DialerTimeout       time.Duration `yaml:"dialer_timeout,omitempty"`          // Connection dial timeout
	DialerKeepAlive     time.Duration `yaml:"dialer_keep_alive,omitempty"`       // TCP keep-alive interval
}

// Default returns the configuration used when no config file is given
func Default() *AppConfig {
	cfg := &AppConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields with their defaults
func (c *AppConfig) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://www.codechef.com"
	}
	if c.SolutionsDir == "" {
		c.SolutionsDir = "solutions"
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 5
	}
	if c.MinRetryDelay == 0 {
		c.MinRetryDelay = 15 * time.Second
	}
	if c.MaxRetryDelay == 0 {
		c.MaxRetryDelay = 45 * time.Second
	}
	if c.MaxWorkers == 0 {
		c.MaxWorkers = 10
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.HTTPClientSettings.Timeout == 0 {
		c.HTTPClientSettings.Timeout = 120 * time.Second
	}
	if c.HTTPClientSettings.MaxIdleConns == 0 {
		c.HTTPClientSettings.MaxIdleConns = 100
	}
	if c.HTTPClientSettings.MaxIdleConnsPerHost == 0 {
		c.HTTPClientSettings.MaxIdleConnsPerHost = 10
	}
	if c.HTTPClientSettings.IdleConnTimeout == 0 {
		c.HTTPClientSettings.IdleConnTimeout = 90 * time.Second
	}
	if c.HTTPClientSettings.TLSHandshakeTimeout == 0 {
		c.HTTPClientSettings.TLSHandshakeTimeout = 10 * time.Second
	}
	if c.HTTPClientSettings.DialerTimeout == 0 {
		c.HTTPClientSettings.DialerTimeout = 30 * time.Second
	}
	if c.HTTPClientSettings.DialerKeepAlive == 0 {
		c.HTTPClientSettings.DialerKeepAlive = 30 * time.Second
	}

	// Env overrides for credentials
	if v := os.Getenv(EnvSessionCookie); v != "" {
		c.SessionCookie = v
	}
	if v := os.Getenv(EnvCSRFToken); v != "" {
		c.CSRFToken = v
	}
}

// Load reads and parses the config file at path, applies env overrides and
// defaults. An empty path yields the default configuration
func Load(path string) (*AppConfig, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}
