package main

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/isdmx/runbox/config"
	"github.com/isdmx/runbox/httpserver"
	"github.com/isdmx/runbox/logger"
	"github.com/isdmx/runbox/mcpserver"
	"github.com/isdmx/runbox/sandbox"
)

func main() {
	app := fx.New(
		// Provide dependencies
		fx.Provide(
			// Config
			config.New,

			// Logger with configuration
			logger.NewFromConfig,

			// Sandbox runner based on config
			sandbox.NewRunner,

			// Transports
			httpserver.New,
			mcpserver.New,
		),

		fx.Invoke(
			registerHTTPServer,
			registerMCPServer,
		),

		// Use the application logger for fx logs
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
	)

	// Start the application
	app.Run()
}

// registerHTTPServer ties the HTTP shell to the fx lifecycle so shutdown
// drains in-flight executions.
func registerHTTPServer(lc fx.Lifecycle, s *httpserver.Server, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Shutdown(ctx)
		},
	})
}

// registerMCPServer starts the optional MCP transport.
func registerMCPServer(cfg *config.Config, s *mcpserver.MCPServer, log *zap.Logger) {
	if !cfg.MCP.Enabled {
		return
	}

	switch cfg.MCP.Transport {
	case "stdio":
		go func() {
			if err := s.ServeStdio(); err != nil {
				log.Error("mcp stdio server stopped", zap.Error(err))
			}
		}()
	case "http":
		go func() {
			if err := s.ServeHTTP(); err != nil {
				log.Error("mcp http server stopped", zap.Error(err))
			}
		}()
	}
}
