package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"kubemon/pkg/logging"
)

const subsystem = "MCPServer"

// NewServer creates an MCP server with every monitoring tool registered.
func NewServer(version string, m HealthChecker) *server.MCPServer {
	mcpServer := server.NewMCPServer(
		"kubemon",
		version,
		server.WithToolCapabilities(true),
	)
	mcpServer.AddTools(New(m).ServerTools()...)
	return mcpServer
}

// ServeStdio runs the MCP server over stdin and stdout until the client
// disconnects. Expected to be launched by an agent, not by a human.
func ServeStdio(version string, m HealthChecker) error {
	logging.Info(subsystem, "Serving MCP tools over stdio")
	return server.ServeStdio(NewServer(version, m))
}
