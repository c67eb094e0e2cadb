// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes preview tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/laguz/internal/index"
	"github.com/starford/laguz/internal/preview"
	"github.com/starford/laguz/internal/record"
)

// Server wraps the MCP server with preview tools.
type Server struct {
	mcp      *server.MCPServer
	previews *preview.Service
	records  *record.Store
	db       index.RecordIndex
}

// New creates a new MCP server with all preview tools registered.
func New(previews *preview.Service, records *record.Store, db index.RecordIndex) *Server {
	s := &Server{previews: previews, records: records, db: db}

	s.mcp = server.NewMCPServer(
		"Laguz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("preview_record",
		mcp.WithDescription("Render the hover preview for a record: inferred subtitle, "+
			"detail rows, tag pills, and optional text snippet."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Record name (case-insensitive)")),
	), s.previewRecord)

	s.mcp.AddTool(mcp.NewTool("preview_link",
		mcp.WithDescription("Fetch and render preview metadata for an external URL "+
			"(title, description, image, favicon)."),
		mcp.WithString("url", mcp.Required(), mcp.Description("HTTP or HTTPS URL")),
	), s.previewLink)

	s.mcp.AddTool(mcp.NewTool("get_record",
		mcp.WithDescription("Read a record's raw properties and text blocks."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Record name (case-insensitive)")),
	), s.getRecord)

	s.mcp.AddTool(mcp.NewTool("list_records",
		mcp.WithDescription("List all indexed record names."),
	), s.listRecords)

	s.mcp.AddTool(mcp.NewTool("clear_cache",
		mcp.WithDescription("Clear the preview caches. Pass a record name to clear one "+
			"entry, or leave empty to clear everything including link metadata."),
		mcp.WithString("name", mcp.Description("Optional record name")),
	), s.clearCache)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) previewRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tree, ok := s.previews.Record(ctx, name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no record: %s", name)), nil
	}
	out, _ := json.MarshalIndent(tree, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) previewLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawURL, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lp, ok := s.previews.Link(ctx, rawURL)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("metadata unavailable: %s", rawURL)), nil
	}
	out, _ := json.MarshalIndent(lp, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec := s.records.Get(ctx, name, record.GetOptions{})
	if rec == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no record: %s", name)), nil
	}
	detail := *rec
	detail.Blocks = s.records.Blocks(ctx, rec.Name)
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.db.ListRecords()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(names) == 0 {
		return mcp.NewToolResultText("no records indexed"), nil
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (s *Server) clearCache(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if name, err := req.RequireString("name"); err == nil && name != "" {
		s.previews.InvalidateRecord(name)
		return mcp.NewToolResultText(fmt.Sprintf("cleared: %s", name)), nil
	}
	s.previews.InvalidateRecords()
	s.previews.InvalidateLinks()
	return mcp.NewToolResultText("cleared all caches"), nil
}
