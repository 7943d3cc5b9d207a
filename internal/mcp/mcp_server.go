// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lesiontrack/lesiontrack/internal/contract"
)

// NewMCPServer initializes and configures the LesionTrack MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"LesionTrack Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_evolution ---
	s.AddTool(mcp.NewTool("analyze_evolution",
		mcp.WithDescription("Analyze the size evolution of oncological lesions from a measurement file or from stored patient records."),
		mcp.WithString("input_file", mcp.Description("Path to a CSV, JSON or report text file with lesion measurements.")),
		mcp.WithString("patient", mcp.Description("Patient identifier to load stored measurements for. Used when input_file is not given.")),
	), h.handleAnalyzeEvolution)

	// --- 2. Tool: resolve_lesions ---
	s.AddTool(mcp.NewTool("resolve_lesions",
		mcp.WithDescription("Unify inconsistently written lesion names into canonical identifiers."),
		mcp.WithString("names", mcp.Description("Comma-separated lesion names to resolve."), mcp.Required()),
	), h.handleResolveLesions)

	// --- 3. Tool: extract_report ---
	s.AddTool(mcp.NewTool("extract_report",
		mcp.WithDescription("Extract lesion measurements from free-form medical report text."),
		mcp.WithString("text", mcp.Description("The report text to extract measurements from."), mcp.Required()),
	), h.handleExtractReport)

	// --- 4. Tool: store_stats ---
	s.AddTool(mcp.NewTool("store_stats",
		mcp.WithDescription("Return aggregate statistics for the patient record store."),
	), h.handleStoreStats)

	return s
}

// StartMCPServer starts the LesionTrack MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
