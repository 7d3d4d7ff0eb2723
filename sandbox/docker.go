package sandbox

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config holds the immutable execution policy for a DockerRunner. It is
// passed at construction so tests can tighten limits per case.
type Config struct {
	Image       string
	TimeoutSec  int
	MemoryMB    int
	NetworkMode string
}

// DockerRunner implements Runner by driving the docker CLI. Each invocation
// gets a throwaway container (--rm) with a hard memory ceiling, the
// configured network mode and a single read-only bind mount of the staged
// artifact. Nothing survives between invocations.
type DockerRunner struct {
	logger    *zap.Logger
	config    *Config
	cmdRunner CommandRunner
	fs        FileSystem
	lookPath  LookPathFunc
}

// DockerRunnerOption defines a functional option for DockerRunner
type DockerRunnerOption func(*DockerRunner)

// WithCommandRunner sets the CommandRunner for DockerRunner
func WithCommandRunner(cmdRunner CommandRunner) DockerRunnerOption {
	return func(d *DockerRunner) {
		d.cmdRunner = cmdRunner
	}
}

// WithFileSystem sets the FileSystem for DockerRunner
func WithFileSystem(fs FileSystem) DockerRunnerOption {
	return func(d *DockerRunner) {
		d.fs = fs
	}
}

// WithLookPath sets the binary probe for DockerRunner
func WithLookPath(lookPath LookPathFunc) DockerRunnerOption {
	return func(d *DockerRunner) {
		d.lookPath = lookPath
	}
}

// NewDockerRunner creates a DockerRunner with default implementations and
// optional overrides for its seams.
func NewDockerRunner(logger *zap.Logger, config *Config, opts ...DockerRunnerOption) *DockerRunner {
	runner := &DockerRunner{
		logger:    logger,
		config:    config,
		cmdRunner: &RealCommandRunner{},
		fs:        &RealFileSystem{},
		lookPath:  exec.LookPath,
	}

	for _, opt := range opts {
		opt(runner)
	}

	return runner
}

// Run executes the submitted code in a fresh container and returns the
// classified outcome. It never returns an error; see the Result exit-code
// contract in interface.go.
func (d *DockerRunner) Run(ctx context.Context, req Request) Result {
	// Capability check first: without the docker binary there is nothing to
	// stage or launch.
	if _, err := d.lookPath("docker"); err != nil {
		d.logger.Warn("docker binary not found", zap.Error(err))
		return Result{Output: MsgDockerUnavailable, ExitCode: ExitInfraFailure}
	}

	stagingDir, err := stageScript(d.fs, req.Code)
	if err != nil {
		d.logger.Error("failed to stage source", zap.Error(err))
		return Result{Output: fmt.Sprintf("Internal error: %v", err), ExitCode: ExitInfraFailure}
	}
	defer func() {
		if rmErr := d.fs.RemoveAll(stagingDir); rmErr != nil {
			d.logger.Error("failed to remove staging directory", zap.String("path", stagingDir), zap.Error(rmErr))
		}
	}()

	containerName := "runbox-" + uuid.NewString()

	// The guest command is a fixed argv: interpreter plus staged file path.
	// No shell is involved anywhere, so the code string cannot inject
	// arguments or expansions.
	cmdArgs := []string{
		"docker", "run",
		"--rm",
		"--name", containerName,
		"--memory", fmt.Sprintf("%dm", d.config.MemoryMB),
		"--network", d.config.NetworkMode,
		"-v", fmt.Sprintf("%s:/sandbox:ro", stagingDir),
		d.config.Image,
		"python", "/sandbox/" + ScriptName,
	}

	runCtx, cancel := context.WithTimeout(ctx, time.Duration(d.config.TimeoutSec)*time.Second)
	defer cancel()

	d.logger.Info("running sandboxed code",
		zap.String("container", containerName),
		zap.String("image", d.config.Image),
		zap.Int("code_len", len(req.Code)))

	stdout, stderr, exitCode, err := d.cmdRunner.RunCommand(runCtx, cmdArgs)

	if runCtx.Err() == context.DeadlineExceeded {
		// Killing the docker client does not kill the container; remove it
		// by name so the process tree dies with the deadline.
		d.removeContainer(context.WithoutCancel(ctx), containerName)
		d.logger.Warn("execution timed out", zap.String("container", containerName), zap.Int("timeout_sec", d.config.TimeoutSec))
		return Result{Output: timeoutMessage(d.config.TimeoutSec), ExitCode: ExitTimeout}
	}

	if err != nil {
		d.logger.Error("failed to launch sandbox container", zap.String("container", containerName), zap.Error(err))
		return Result{Output: fmt.Sprintf("Internal error: %v", err), ExitCode: ExitInfraFailure}
	}

	result := classify(stdout, stderr, exitCode)
	d.logger.Info("sandboxed run finished",
		zap.String("container", containerName),
		zap.Int("exit_code", result.ExitCode))
	return result
}

func (d *DockerRunner) removeContainer(ctx context.Context, name string) {
	if _, _, _, err := d.cmdRunner.RunCommand(ctx, []string{"docker", "rm", "-f", name}); err != nil {
		d.logger.Warn("failed to remove container after timeout", zap.String("container", name), zap.Error(err))
	}
}
