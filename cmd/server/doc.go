// Package main is the entry point for the Runbox server.
//
// Runbox accepts untrusted Python source over HTTP, executes it in a
// disposable Docker container with a memory ceiling, no network access and
// a wall-clock deadline, and returns sanitized output plus an exit status.
// An optional MCP tool surface exposes the same capability to agent
// clients.
//
// The application uses Uber's fx framework for dependency injection and
// lifecycle management, with zap for structured logging and viper for
// configuration.
package main
