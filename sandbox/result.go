package sandbox

import (
	"fmt"
	"strings"
)

// Fixed, caller-facing messages. These are contract, not cosmetics: the
// shell returns them verbatim and clients match on them.
const (
	// MsgDockerUnavailable is returned when the docker binary cannot be found.
	MsgDockerUnavailable = "Docker is not installed or not available in PATH."

	// MsgMemoryKilled is returned when a non-zero exit looks like an OOM kill.
	MsgMemoryKilled = "Execution failed: container was killed due to excessive memory usage."
)

// timeoutMessage names the configured deadline so callers can tell the
// limit apart from a hang on their side.
func timeoutMessage(seconds int) string {
	return fmt.Sprintf("Execution timed out after %d seconds.", seconds)
}

// classify turns the raw (stdout, stderr, exit status) triple into the
// caller-safe Result.
//
// On success only trimmed stdout is kept; stderr is dropped even when
// non-empty. On failure stdout and stderr are combined and scanned for an
// OOM kill. The substring match is a heuristic: the container runtime's
// own OOM exit status (137) is the precise signal, but the kernel killer's
// "Killed" message in the combined output is what reliably reaches us
// through the CLI, and a legitimate "killed" in program output on a
// non-zero exit is an accepted false positive.
func classify(stdout, stderr string, exitCode int) Result {
	if exitCode == 0 {
		return Result{Output: strings.TrimSpace(stdout), ExitCode: 0}
	}

	combined := strings.TrimSpace(stdout + "\n" + stderr)
	low := strings.ToLower(combined)
	if strings.Contains(low, "killed") || strings.Contains(low, "out of memory") {
		return Result{Output: MsgMemoryKilled, ExitCode: exitCode}
	}

	return Result{Output: combined, ExitCode: exitCode}
}

// ShortenTraceback reduces a multi-line Python traceback to its final
// line, which carries the exception type and message. Applied once at the
// transport boundary; a message without a traceback marker, including an
// already-shortened one, passes through unchanged.
func ShortenTraceback(msg string) string {
	if !strings.Contains(msg, "Traceback") {
		return msg
	}
	lines := strings.Split(strings.TrimRight(msg, "\n"), "\n")
	return lines[len(lines)-1]
}
