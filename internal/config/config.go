// Package config loads bridge settings from defaults, an optional YAML file,
// A11Y_BRIDGE_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. A11Y_BRIDGE_LISTEN or
// A11Y_BRIDGE_LOG_LEVEL.
const EnvPrefix = "A11Y_BRIDGE"

// Keys.
const (
	KeyListen       = "listen"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
	KeyScene        = "scene"
	KeySDK          = "sdk"
	KeyRateLimit    = "rate_limit"
	KeyMCPTransport = "mcp.transport"
	KeyMCPPort      = "mcp.port"
	KeyMCPCacheTTL  = "mcp.cache_ttl"
	KeyTimeout      = "timeout"
)

const (
	configName = "a11y-bridge"
	configType = "yaml"
	configDir  = ".config"
)

// DefaultListen is the bridge socket used when nothing else is configured.
var DefaultListen = "unix://" + filepath.Join(os.TempDir(), "a11y-bridge.sock")

// Config is the resolved configuration.
type Config struct {
	// Listen is the bridge address: unix://<path> or host:port.
	Listen string
	Log    LogConfig
	// Scene is the simulated host's scene file (empty = built-in scene).
	Scene string
	// SDK overrides the host API level (0 = backend default).
	SDK int
	// RateLimit caps transactions per second (0 = unlimited).
	RateLimit float64
	MCP       MCPConfig
	// Timeout bounds each client call.
	Timeout time.Duration
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string
	Format string
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// New returns a viper instance with defaults and environment overrides
// registered.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyListen, DefaultListen)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyScene, "")
	v.SetDefault(KeySDK, 0)
	v.SetDefault(KeyRateLimit, 0)
	v.SetDefault(KeyMCPTransport, "stdio")
	v.SetDefault(KeyMCPPort, 8080)
	v.SetDefault(KeyMCPCacheTTL, 500*time.Millisecond)
	v.SetDefault(KeyTimeout, 10*time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile merges a config file into v. An explicit path must exist; with
// no path the user config directory and the working directory are searched
// and a missing file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		return nil
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, configDir))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}
	return nil
}

// Resolve reads the settings out of v and validates them.
func Resolve(v *viper.Viper) (Config, error) {
	cfg := Config{
		Listen: strings.TrimSpace(v.GetString(KeyListen)),
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		Scene:     v.GetString(KeyScene),
		SDK:       v.GetInt(KeySDK),
		RateLimit: v.GetFloat64(KeyRateLimit),
		MCP: MCPConfig{
			Transport: v.GetString(KeyMCPTransport),
			Port:      v.GetInt(KeyMCPPort),
			CacheTTL:  v.GetDuration(KeyMCPCacheTTL),
		},
		Timeout: v.GetDuration(KeyTimeout),
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address is empty")
	}
	if c.SDK < 0 {
		return fmt.Errorf("sdk must be >= 0, got %d", c.SDK)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be >= 0, got %v", c.RateLimit)
	}
	switch c.MCP.Transport {
	case "stdio", "streamable-http":
	default:
		return fmt.Errorf("unsupported mcp transport: %s (use stdio or streamable-http)", c.MCP.Transport)
	}
	if c.MCP.Port <= 0 || c.MCP.Port > 65535 {
		return fmt.Errorf("mcp.port out of range: %d", c.MCP.Port)
	}
	if c.MCP.CacheTTL < 0 {
		return fmt.Errorf("mcp.cache_ttl must be >= 0, got %s", c.MCP.CacheTTL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
