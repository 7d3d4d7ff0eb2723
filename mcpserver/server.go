package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/isdmx/runbox/config"
	"github.com/isdmx/runbox/sandbox"
)

// MCPServer represents the MCP tool surface
type MCPServer struct {
	config    *config.Config
	logger    *zap.Logger
	runner    sandbox.Runner
	mcpServer *server.MCPServer
}

// New creates a new MCPServer
func New(cfg *config.Config, logger *zap.Logger, runner sandbox.Runner) (*MCPServer, error) {
	s := &MCPServer{
		config: cfg,
		logger: logger,
		runner: runner,
	}

	logger.Info("mcp surface configured",
		zap.Bool("mcp.enabled", cfg.MCP.Enabled),
		zap.String("mcp.transport", cfg.MCP.Transport),
		zap.Int("mcp.http_port", cfg.MCP.HTTPPort),
		zap.String("sandbox.image", cfg.Sandbox.Image),
		zap.Int("sandbox.timeout_sec", cfg.Sandbox.TimeoutSec),
		zap.Int("sandbox.memory_mb", cfg.Sandbox.MemoryMB),
	)

	s.mcpServer = server.NewMCPServer("runbox", "Sandboxed Python execution server")
	s.registerRunPythonTool()

	return s, nil
}

// registerRunPythonTool registers the run_python tool
func (s *MCPServer) registerRunPythonTool() {
	tool := mcp.Tool{
		Name:        "run_python",
		Description: "Run untrusted Python code in a disposable, network-isolated container",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"code": map[string]any{
					"type":        "string",
					"description": "Python source to execute",
				},
			},
			Required: []string{"code"},
		},
	}

	s.mcpServer.AddTool(tool, s.handleRunPython)
}

// handleRunPython handles the run_python tool
func (s *MCPServer) handleRunPython(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return nil, fmt.Errorf("code parameter is required: %w", err)
	}

	// Same pre-validation as the HTTP shell
	if maxChars := s.config.Server.MaxCodeChars; len(code) > maxChars {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Code too long (max %d characters)", maxChars),
				},
			},
			IsError: true,
		}, nil
	}

	s.logger.Info("executing code via mcp", zap.Int("code_len", len(code)))

	result := s.runner.Run(ctx, sandbox.Request{Code: code})

	output := sandbox.ShortenTraceback(result.Output)
	resultJSON := fmt.Sprintf(`{"output":%q,"exit_code":%d}`, output, result.ExitCode)

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: resultJSON,
			},
		},
	}, nil
}

// ServeStdio starts the server on stdio
func (s *MCPServer) ServeStdio() error {
	s.logger.Info("starting MCP server on stdio")
	return server.ServeStdio(s.mcpServer)
}

// ServeHTTP starts the server on HTTP
func (s *MCPServer) ServeHTTP() error {
	port := s.config.MCP.HTTPPort
	s.logger.Info("starting MCP server on HTTP", zap.Int("port", port))

	httpServer := server.NewStreamableHTTPServer(s.mcpServer)
	return httpServer.Start(fmt.Sprintf(":%d", port))
}

// GetMCPServer returns the underlying MCP server
func (s *MCPServer) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}
