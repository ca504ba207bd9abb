package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration for the lg-render host application.
// Precedence: environment variables > config file > defaults.
type Config struct {
	Repo      RepoConfig      `toml:"repo"`
	Server    ServerConfig    `toml:"server"`
	Transport TransportConfig `toml:"transport"`
	Log       LogConfig       `toml:"log"`
	CacheGC   CacheGCConfig   `toml:"cache_gc"`
}

// RepoConfig locates the repository being rendered and its adaptive
// (tag-set/mode-set) and processed-blob cache configuration.
type RepoConfig struct {
	Root        string `toml:"root"`         // Repository root containing lg-cfg/ directories.
	ModesConfig string `toml:"modes_config"` // Path to the adaptive_loader YAML (tag_sets/mode_sets).
	CacheDir    string `toml:"cache_dir"`    // Processed-blob cache root.
	CacheEnable bool   `toml:"cache_enable"`
}

// ServerConfig holds MCP server metadata.
type ServerConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// TransportConfig holds transport-related settings.
type TransportConfig struct {
	// Mode selects the transport: "stdio" (default) or "http".
	Mode string `toml:"mode"`
	// Port is the HTTP listen port (default: 21452). Only used when Mode is "http".
	Port string `toml:"port"`
	// Host is the HTTP listen address (default: "0.0.0.0"). Only used when Mode is "http".
	Host string `toml:"host"`
	// CORSOrigins is a comma-separated list of allowed CORS origins (default: "*").
	CORSOrigins string `toml:"cors_origins"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// CacheGCConfig holds processed-blob cache garbage collection scheduling.
type CacheGCConfig struct {
	Enabled       bool `toml:"enabled"`        // Enable scheduled cache GC runs.
	IntervalHours int  `toml:"interval_hours"` // How often to run (in hours).
	MaxAgeHours   int  `toml:"max_age_hours"`  // Entries older than this are removed.
}

// Load creates a Config by reading from a TOML config file and environment
// variables. Precedence: environment variables > config file > defaults.
//
// Config file search order (first found wins):
//  1. Path passed via configPath parameter (from --config flag)
//  2. LG_RENDER_CONFIG environment variable
//  3. ./lg-render.toml (current directory)
//  4. ~/.config/lg-render/lg-render.toml (XDG-style)
//
// All fields are optional in the config file. Environment variables always
// override file values.
func Load(configPath string) (*Config, error) {
	// Start with defaults
	cfg := &Config{
		Repo: RepoConfig{
			Root:        ".",
			ModesConfig: "lg-cfg/modes.yaml",
			CacheDir:    ".lg-cache",
			CacheEnable: true,
		},
		Server: ServerConfig{
			Name:    "lg-render",
			Version: "0.1.0",
		},
		Transport: TransportConfig{
			Mode:        "stdio",
			Port:        "21452",
			Host:        "0.0.0.0",
			CORSOrigins: "*",
		},
		Log: LogConfig{
			Level: "info",
		},
		CacheGC: CacheGCConfig{
			Enabled:       false, // Disabled by default
			IntervalHours: 1,     // Run every hour when enabled
			MaxAgeHours:   168,   // One week
		},
	}

	// Layer config file values on top of defaults
	if err := cfg.loadFile(configPath); err != nil {
		return nil, err
	}

	// Layer environment variables on top (always win)
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile finds and parses the TOML config file. If no file is found,
// this is a no-op (config file is optional).
func (c *Config) loadFile(configPath string) error {
	path := resolveConfigPath(configPath)
	if path == "" {
		return nil // no config file found; rely on defaults + env
	}

	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	return nil
}

// resolveConfigPath determines which config file to use. Returns empty string
// if no config file is found (config file is optional).
func resolveConfigPath(explicit string) string {
	// 1. Explicit path from --config flag
	if explicit != "" {
		return explicit // caller wants this file; let DecodeFile report if missing
	}

	// 2. LG_RENDER_CONFIG env var
	if p := os.Getenv("LG_RENDER_CONFIG"); p != "" {
		return p
	}

	// 3. ./lg-render.toml in current directory
	if _, err := os.Stat("lg-render.toml"); err == nil {
		return "lg-render.toml"
	}

	// 4. ~/.config/lg-render/lg-render.toml
	if home, err := os.UserHomeDir(); err == nil {
		p := home + "/.config/lg-render/lg-render.toml"
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnv overlays environment variables on top of existing config values.
// An env var only takes effect if it is non-empty.
func (c *Config) applyEnv() {
	// Repo
	envOverride("LG_RENDER_REPO_ROOT", &c.Repo.Root)
	envOverride("LG_RENDER_MODES_CONFIG", &c.Repo.ModesConfig)
	envOverride("LG_RENDER_CACHE_DIR", &c.Repo.CacheDir)
	if v := os.Getenv("LG_RENDER_CACHE_ENABLE"); v != "" {
		c.Repo.CacheEnable = (v == "true" || v == "1")
	}
	// LG_CACHE overrides cache enablement directly; it takes precedence
	// over the LG_RENDER_-namespaced variant above when both are set.
	if v := os.Getenv("LG_CACHE"); v != "" {
		c.Repo.CacheEnable = (v == "true" || v == "1")
	}

	// Transport
	envOverride("LG_RENDER_TRANSPORT", &c.Transport.Mode)
	envOverride("LG_RENDER_PORT", &c.Transport.Port)
	envOverride("LG_RENDER_HOST", &c.Transport.Host)
	envOverride("LG_RENDER_CORS_ORIGINS", &c.Transport.CORSOrigins)

	// Logging
	envOverride("LG_RENDER_LOG_LEVEL", &c.Log.Level)

	// Cache GC
	if v := os.Getenv("LG_RENDER_CACHE_GC_ENABLED"); v != "" {
		c.CacheGC.Enabled = (v == "true" || v == "1")
	}
	if v := os.Getenv("LG_RENDER_CACHE_GC_INTERVAL_HOURS"); v != "" {
		var hours int
		if _, err := fmt.Sscanf(v, "%d", &hours); err == nil && hours > 0 {
			c.CacheGC.IntervalHours = hours
		}
	}
	if v := os.Getenv("LG_RENDER_CACHE_GC_MAX_AGE_HOURS"); v != "" {
		var hours int
		if _, err := fmt.Sscanf(v, "%d", &hours); err == nil && hours > 0 {
			c.CacheGC.MaxAgeHours = hours
		}
	}
}

// Validate checks that required fields are present.
func (c *Config) Validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
		// no transport-specific required fields in this domain
	default:
		return fmt.Errorf("invalid transport mode: %q (must be \"stdio\" or \"http\")", c.Transport.Mode)
	}

	if c.Repo.Root == "" {
		return fmt.Errorf("repo root is required: set repo.root in config file, or LG_RENDER_REPO_ROOT env var")
	}

	return nil
}

// envOverride sets *dst to the value of the named env var, if it is non-empty.
func envOverride(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
