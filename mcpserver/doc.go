// Package mcpserver exposes the execution core as an MCP tool.
//
// The mcpserver package implements a Model Context Protocol server with a
// single run_python tool, using the mark3labs/mcp-go library. It applies
// the same pre-validation and result sanitization as the HTTP shell, so
// both surfaces return the identical output and exit-code envelope.
package mcpserver
