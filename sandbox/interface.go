package sandbox

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Request carries one submission of untrusted source code.
type Request struct {
	Code string
}

// Result is the caller-safe outcome of one execution.
//
// Exit code contract:
//   - >= 0: the guest process's own exit status
//   - ExitInfraFailure (-1): the sandbox runtime was unavailable or failed to launch
//   - ExitTimeout (-2): the wall-clock deadline expired and the container was killed
type Result struct {
	Output   string
	ExitCode int
}

// Exit codes outside the guest's own range signal runner-level outcomes.
const (
	ExitInfraFailure = -1
	ExitTimeout      = -2
)

// Runner executes one piece of untrusted code and reports the outcome.
// Implementations must not return errors or panic across this boundary:
// every failure mode is folded into the Result.
type Runner interface {
	Run(ctx context.Context, req Request) Result
}

// CommandRunner defines an interface for executing system commands
type CommandRunner interface {
	RunCommand(ctx context.Context, args []string) (stdout, stderr string, exitCode int, err error)
}

// RealCommandRunner implements CommandRunner using os/exec
type RealCommandRunner struct{}

// RunCommand executes the given command with arguments. The command is
// killed when ctx is cancelled; the caller distinguishes a deadline kill
// from a real failure by inspecting ctx afterwards.
func (RealCommandRunner) RunCommand(ctx context.Context, args []string) (stdout, stderr string, exitCode int, err error) {
	if len(args) < 1 {
		return "", "", 0, fmt.Errorf("no command provided")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // Argv is runner-built, never caller input

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err = cmd.Run()

	exitCode = 0
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			exitCode = exitError.ExitCode()
		} else {
			return "", "", 0, err
		}
	}

	return stdoutBuf.String(), stderrBuf.String(), exitCode, nil
}

// LookPathFunc probes for a binary on the host. It matches the signature
// of exec.LookPath so the docker availability check can be stubbed.
type LookPathFunc func(file string) (string, error)

// FileSystem defines an interface for the file system operations staging needs
type FileSystem interface {
	MkdirTemp(dir, pattern string) (string, error)
	WriteFile(filename string, data []byte, perm os.FileMode) error
	RemoveAll(path string) error
}

// RealFileSystem implements FileSystem using actual file system operations
type RealFileSystem struct{}

func (RealFileSystem) MkdirTemp(dir, pattern string) (string, error) {
	return os.MkdirTemp(dir, pattern)
}

func (RealFileSystem) WriteFile(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}

func (RealFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}
