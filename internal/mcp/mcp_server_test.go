package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lesiontrack/lesiontrack/internal/contract"
	mcp_internal "github.com/lesiontrack/lesiontrack/internal/mcp"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{}

	// A nil manager is fine here because validation fails before any store access
	var mgr contract.StoreManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	ctx := context.Background()

	t.Run("analyze_evolution missing input", func(t *testing.T) {
		tool := s.GetTool("analyze_evolution")
		require.NotNil(t, tool, "Tool analyze_evolution should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "analyze_evolution",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "either input_file or patient is required")
	})

	t.Run("resolve_lesions empty names", func(t *testing.T) {
		tool := s.GetTool("resolve_lesions")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "resolve_lesions",
				Arguments: map[string]any{
					"names": " , ,",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "at least one lesion name")
	})

	t.Run("extract_report without exam date", func(t *testing.T) {
		tool := s.GetTool("extract_report")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "extract_report",
				Arguments: map[string]any{
					"text": "Laudo sem data. Lesão A: 1,2 cm",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "extraction failed")
	})
}

func TestMCPServerHandlers_ResolveLesions(t *testing.T) {
	baseCfg := &contract.Config{}
	var mgr contract.StoreManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	tool := s.GetTool("resolve_lesions")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "resolve_lesions",
			Arguments: map[string]any{
				"names": "Lesão A, lesao a, Nódulo X",
			},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, "\"lesao a\": \"Lesão A\"")
	assert.Contains(t, text, "\"Nódulo X\": \"Nódulo X\"")
}
