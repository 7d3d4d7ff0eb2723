package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:     5000,
			MaxCodeChars: 5000,
		},
		Sandbox: SandboxConfig{
			Backend:     "docker",
			Image:       "python:3.11-slim",
			TimeoutSec:  10,
			MemoryMB:    128,
			NetworkMode: "none",
		},
		MCP: MCPConfig{
			Enabled:   false,
			Transport: "stdio",
			HTTPPort:  8081,
		},
		Logging: LoggingConfig{
			Mode:  "production",
			Level: "info",
		},
	}
}

func TestConfigValidation(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		err := validConfig().validate()
		require.NoError(t, err)
	})

	t.Run("InvalidHTTPPort", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.HTTPPort = 0

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.http_port")
	})

	t.Run("InvalidMaxCodeChars", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.MaxCodeChars = -1

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.max_code_chars")
	})

	t.Run("UnsupportedBackend", func(t *testing.T) {
		cfg := validConfig()
		cfg.Sandbox.Backend = "chroot"

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported sandbox.backend")
	})

	t.Run("EmptyImage", func(t *testing.T) {
		cfg := validConfig()
		cfg.Sandbox.Image = ""

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sandbox.image")
	})

	t.Run("InvalidTimeout", func(t *testing.T) {
		cfg := validConfig()
		cfg.Sandbox.TimeoutSec = 0

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sandbox.timeout_sec")
	})

	t.Run("InvalidMemory", func(t *testing.T) {
		cfg := validConfig()
		cfg.Sandbox.MemoryMB = 0

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sandbox.memory_mb")
	})

	t.Run("InvalidNetworkMode", func(t *testing.T) {
		cfg := validConfig()
		cfg.Sandbox.NetworkMode = "host"

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid sandbox.network_mode")
	})

	t.Run("InvalidMCPTransport", func(t *testing.T) {
		cfg := validConfig()
		cfg.MCP.Transport = "websocket"

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid mcp.transport")
	})
}

func TestConfigNewDefaults(t *testing.T) {
	// Viper state is process-global; start clean and run from an empty
	// directory so no config file is picked up
	viper.Reset()
	t.Chdir(t.TempDir())

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.HTTPPort)
	assert.Equal(t, 5000, cfg.Server.MaxCodeChars)
	assert.Equal(t, "docker", cfg.Sandbox.Backend)
	assert.Equal(t, "python:3.11-slim", cfg.Sandbox.Image)
	assert.Equal(t, 10, cfg.Sandbox.TimeoutSec)
	assert.Equal(t, 128, cfg.Sandbox.MemoryMB)
	assert.Equal(t, "none", cfg.Sandbox.NetworkMode)
	assert.False(t, cfg.MCP.Enabled)
	assert.Equal(t, "stdio", cfg.MCP.Transport)
	assert.Equal(t, "production", cfg.Logging.Mode)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestConfigNewFromFile(t *testing.T) {
	dir := t.TempDir()

	fileCfg := map[string]any{
		"server": map[string]any{
			"http_port":      8080,
			"max_code_chars": 2000,
		},
		"sandbox": map[string]any{
			"image":       "python:3.12-slim",
			"timeout_sec": 5,
			"memory_mb":   64,
		},
		"logging": map[string]any{
			"mode":  "development",
			"level": "debug",
		},
	}
	data, err := yaml.Marshal(fileCfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0o644))

	viper.Reset()
	t.Chdir(dir)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 2000, cfg.Server.MaxCodeChars)
	assert.Equal(t, "python:3.12-slim", cfg.Sandbox.Image)
	assert.Equal(t, 5, cfg.Sandbox.TimeoutSec)
	assert.Equal(t, 64, cfg.Sandbox.MemoryMB)
	// Unset keys keep their defaults
	assert.Equal(t, "none", cfg.Sandbox.NetworkMode)
	assert.Equal(t, "development", cfg.Logging.Mode)
}

func TestGetTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Sandbox.TimeoutSec = 7

	assert.Equal(t, "7s", cfg.GetTimeout().String())
}
