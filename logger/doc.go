// Package logger provides structured logging capabilities.
//
// The logger package sets up the application's logging using zap. The mode
// selects the encoder (human-readable in development, JSON in production)
// and the level is parsed with zapcore's standard level names.
package logger
