package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"kipris-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register tools with their proper schemas using mcp-go builder pattern
	toolDefinitions := map[string]mcp.Tool{
		"search_patents": mcp.NewTool("search_patents",
			mcp.WithDescription("Search Korean patents by applicant name via KIPRIS. Returns application numbers, titles, filing dates and registration status, with pagination."),
			mcp.WithString("applicant_name",
				mcp.Required(),
				mcp.Description("Applicant name to search for (company, institution or person, e.g. 'Samsung Electronics')"),
			),
			mcp.WithNumber("page",
				mcp.Description("Page number, starting at 1 (default: 1)"),
			),
			mcp.WithNumber("page_size",
				mcp.Description("Results per page, between 1 and 100 (default: 20)"),
			),
			mcp.WithString("status",
				mcp.Description("Optional registration-status filter"),
				mcp.Enum("A", "R", "J"),
			),
			mcp.WithString("response_format",
				mcp.Description("Rendering of the result (default: markdown)"),
				mcp.Enum("markdown", "json"),
			),
		),
		"get_patent_detail": mcp.NewTool("get_patent_detail",
			mcp.WithDescription("Look up the full record of one Korean patent by its 13-digit application number: title, applicant, abstract, IPC classification, inventors and legal status."),
			mcp.WithString("application_number",
				mcp.Required(),
				mcp.Description("Application number, hyphens allowed (e.g. '1020200123456' or '10-2020-0123456')"),
			),
			mcp.WithString("response_format",
				mcp.Description("Rendering of the result (default: markdown)"),
				mcp.Enum("markdown", "json"),
			),
		),
		"get_citing_patents": mcp.NewTool("get_citing_patents",
			mcp.WithDescription("List later patents that cite a given Korean patent, identified by its application number. Useful for gauging a patent's influence."),
			mcp.WithString("application_number",
				mcp.Required(),
				mcp.Description("Application number of the base patent"),
			),
			mcp.WithNumber("page",
				mcp.Description("Page number, starting at 1 (default: 1)"),
			),
			mcp.WithNumber("page_size",
				mcp.Description("Results per page, between 1 and 100 (default: 20)"),
			),
			mcp.WithString("response_format",
				mcp.Description("Rendering of the result (default: markdown)"),
				mcp.Enum("markdown", "json"),
			),
		),
	}

	for name, adapter := range cfg.ToolAdapters {
		tool := toolDefinitions[name]
		mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
	}
}

// ServeStdio blocks serving the MCP protocol over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.MCP)
}
