package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines client configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Journal JournalConfig `yaml:"journal"`
	MCP     MCPConfig     `yaml:"mcp"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig locates the TestLink XML-RPC endpoint.
type ServerConfig struct {
	URL     string        `yaml:"url"`
	DevKey  string        `yaml:"dev_key"`
	Timeout time.Duration `yaml:"timeout"`
}

type JournalConfig struct {
	Path string `yaml:"path"`
}

// MCPConfig selects how the MCP server is exposed: "stdio" or "http".
type MCPConfig struct {
	Mode string `yaml:"mode"`
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			URL:     "http://localhost/testlink/lib/api/xmlrpc/v1/xmlrpc.php",
			Timeout: 30 * time.Second,
		},
		Journal: JournalConfig{
			Path: "tlink.db",
		},
		MCP: MCPConfig{
			Mode: "stdio",
			Host: "127.0.0.1",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("TLINK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if url := os.Getenv("TLINK_SERVER_URL"); url != "" {
		cfg.Server.URL = url
	}
	if key := os.Getenv("TLINK_DEV_KEY"); key != "" {
		cfg.Server.DevKey = key
	}
	if timeoutStr := os.Getenv("TLINK_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TLINK_TIMEOUT: %w", err)
		}
		cfg.Server.Timeout = timeout
	}
	if path := os.Getenv("TLINK_JOURNAL_PATH"); path != "" {
		cfg.Journal.Path = path
	}
	if mode := os.Getenv("TLINK_MCP_MODE"); mode != "" {
		cfg.MCP.Mode = mode
	}
	if host := os.Getenv("TLINK_MCP_HOST"); host != "" {
		cfg.MCP.Host = host
	}
	if portStr := os.Getenv("TLINK_MCP_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TLINK_MCP_PORT: %w", err)
		}
		cfg.MCP.Port = port
	}
	if level := os.Getenv("TLINK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Timeout < 0 {
		return fmt.Errorf("server timeout must not be negative, got %s", c.Server.Timeout)
	}
	switch c.MCP.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("unknown MCP mode %q (want stdio or http)", c.MCP.Mode)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
