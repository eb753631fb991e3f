package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
)

// ErrConfigPathDoesNotExist is returned by Load when the config file is
// missing. Startup treats this as fatal; there is no retry.
var ErrConfigPathDoesNotExist = errors.New("config path does not exist")

// Known network names, matching the cluster moniker the node reports.
const (
	NetworkMainnet = "mainnet-beta"
	NetworkDevnet  = "devnet"
	NetworkTestnet = "testnet"
)

// Config holds all application configuration, loaded from a TOML file with
// optional environment variable overrides. All required fields are validated
// at startup to ensure fail-fast behavior.
type Config struct {
	RPC     RPCConfig     `toml:"rpc"`
	Keypair KeypairConfig `toml:"keypair"`
	History HistoryConfig `toml:"history"`
	Metrics MetricsConfig `toml:"metrics"`
	Log     LogConfig     `toml:"log"`
}

type RPCConfig struct {
	URL     string `toml:"url"`
	Network string `toml:"network"`
}

type KeypairConfig struct {
	Path string `toml:"path"`
}

type HistoryConfig struct {
	Path string `toml:"path"`
}

type MetricsConfig struct {
	// Addr, when non-empty, exposes Prometheus metrics on addr/metrics for
	// the lifetime of the session.
	Addr string `toml:"addr"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "solterm", "config.toml")
}

// DefaultConfig returns a devnet configuration with conventional paths.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		RPC: RPCConfig{
			URL:     "https://api.devnet.solana.com",
			Network: NetworkDevnet,
		},
		Keypair: KeypairConfig{
			Path: filepath.Join(home, ".config", "solana", "id.json"),
		},
		History: HistoryConfig{
			Path: filepath.Join(home, ".local", "share", "solterm", "history"),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the TOML config at path, applies environment overrides, and
// validates the result. A missing file yields ErrConfigPathDoesNotExist;
// read and parse failures are wrapped and returned.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigPathDoesNotExist, path)
		}
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays SOLTERM_* environment variables onto the file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("SOLTERM_RPC_URL"); v != "" {
		c.RPC.URL = v
	}
	if v := os.Getenv("SOLTERM_NETWORK"); v != "" {
		c.RPC.Network = v
	}
	if v := os.Getenv("SOLTERM_KEYPAIR_PATH"); v != "" {
		c.Keypair.Path = v
	}
	if v := os.Getenv("SOLTERM_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
	if v := os.Getenv("SOLTERM_METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	if v := os.Getenv("SOLTERM_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.RPC.URL == "" {
		errs = append(errs, fmt.Errorf("rpc.url is required"))
	}
	switch c.RPC.Network {
	case NetworkMainnet, NetworkDevnet, NetworkTestnet:
	case "":
		errs = append(errs, fmt.Errorf("rpc.network is required"))
	default:
		errs = append(errs, fmt.Errorf("rpc.network %q is not one of %s, %s, %s",
			c.RPC.Network, NetworkMainnet, NetworkDevnet, NetworkTestnet))
	}
	if c.Keypair.Path == "" {
		errs = append(errs, fmt.Errorf("keypair.path is required"))
	}
	if c.History.Path == "" {
		errs = append(errs, fmt.Errorf("history.path is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errs)
	}
	return nil
}

// EndpointLabel derives a short label for metrics from the network name.
func (c *Config) EndpointLabel() string {
	return strings.TrimSuffix(c.RPC.Network, "-beta")
}
