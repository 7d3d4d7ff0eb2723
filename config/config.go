package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Sandbox SandboxConfig `mapstructure:"sandbox"`
	MCP     MCPConfig     `mapstructure:"mcp"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the HTTP shell configuration
type ServerConfig struct {
	HTTPPort     int `mapstructure:"http_port"`
	MaxCodeChars int `mapstructure:"max_code_chars"`
}

// SandboxConfig holds the execution sandbox configuration
type SandboxConfig struct {
	Backend     string `mapstructure:"backend"`
	Image       string `mapstructure:"image"`
	TimeoutSec  int    `mapstructure:"timeout_sec"`
	MemoryMB    int    `mapstructure:"memory_mb"`
	NetworkMode string `mapstructure:"network_mode"`
}

// MCPConfig holds the optional MCP tool surface configuration
type MCPConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Transport string `mapstructure:"transport"`
	HTTPPort  int    `mapstructure:"http_port"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

// New loads and validates the application configuration
func New() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	viper.SetDefault("server.http_port", 5000)
	viper.SetDefault("server.max_code_chars", 5000)
	viper.SetDefault("sandbox.backend", "docker")
	viper.SetDefault("sandbox.image", "python:3.11-slim")
	viper.SetDefault("sandbox.timeout_sec", 10)
	viper.SetDefault("sandbox.memory_mb", 128)
	viper.SetDefault("sandbox.network_mode", "none")
	viper.SetDefault("mcp.enabled", false)
	viper.SetDefault("mcp.transport", "stdio")
	viper.SetDefault("mcp.http_port", 8081)
	viper.SetDefault("logging.mode", "production")
	viper.SetDefault("logging.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// If config file not found, continue with defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

// validate ensures the configuration is valid
func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be in 1..65535, got: %d", c.Server.HTTPPort)
	}

	if c.Server.MaxCodeChars <= 0 {
		return fmt.Errorf("server.max_code_chars must be positive, got: %d", c.Server.MaxCodeChars)
	}

	if c.Sandbox.Backend != "docker" {
		return fmt.Errorf("unsupported sandbox.backend: %s", c.Sandbox.Backend)
	}

	if c.Sandbox.Image == "" {
		return fmt.Errorf("sandbox.image must not be empty")
	}

	if c.Sandbox.TimeoutSec <= 0 {
		return fmt.Errorf("sandbox.timeout_sec must be positive, got: %d", c.Sandbox.TimeoutSec)
	}

	if c.Sandbox.MemoryMB <= 0 {
		return fmt.Errorf("sandbox.memory_mb must be positive, got: %d", c.Sandbox.MemoryMB)
	}

	if c.Sandbox.NetworkMode != "none" && c.Sandbox.NetworkMode != "bridge" {
		return fmt.Errorf("invalid sandbox.network_mode: %s, must be 'none' or 'bridge'", c.Sandbox.NetworkMode)
	}

	if c.MCP.Transport != "stdio" && c.MCP.Transport != "http" {
		return fmt.Errorf("invalid mcp.transport: %s, must be 'stdio' or 'http'", c.MCP.Transport)
	}

	if c.MCP.HTTPPort <= 0 || c.MCP.HTTPPort > 65535 {
		return fmt.Errorf("mcp.http_port must be in 1..65535, got: %d", c.MCP.HTTPPort)
	}

	return nil
}

// GetTimeout returns the execution timeout as a duration
func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.Sandbox.TimeoutSec) * time.Second
}
