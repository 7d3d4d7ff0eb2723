// Package sandbox provides secure code execution capabilities.
//
// The sandbox package is the execution core of the service. Submitted
// source is staged as a single read-only file in a per-invocation temp
// directory, executed inside a disposable Docker container with a memory
// ceiling, no network and a wall-clock deadline, and the raw outcome is
// classified into a caller-safe Result.
//
// A Runner never returns an error: infrastructure failures, timeouts and
// guest failures are all folded into the Result's exit-code contract so
// the transport layer only has to serialize it.
//
// Usage:
//
//	runner := sandbox.NewDockerRunner(logger, &sandbox.Config{
//	    Image:       "python:3.11-slim",
//	    TimeoutSec:  10,
//	    MemoryMB:    128,
//	    NetworkMode: "none",
//	})
//	result := runner.Run(ctx, sandbox.Request{Code: "print('Hello, World!')"})
package sandbox
