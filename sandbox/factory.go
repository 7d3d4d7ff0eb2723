package sandbox

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/isdmx/runbox/config"
)

// NewRunner creates the sandbox runner selected by the configuration.
// Docker is the only supported backend today; the switch keeps the config
// surface stable for additional runtimes.
func NewRunner(logger *zap.Logger, cfg *config.Config) (Runner, error) {
	runnerConfig := Config{
		Image:       cfg.Sandbox.Image,
		TimeoutSec:  cfg.Sandbox.TimeoutSec,
		MemoryMB:    cfg.Sandbox.MemoryMB,
		NetworkMode: cfg.Sandbox.NetworkMode,
	}

	switch cfg.Sandbox.Backend {
	case "docker":
		return NewDockerRunner(logger, &runnerConfig), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", cfg.Sandbox.Backend)
	}
}
