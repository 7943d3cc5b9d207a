package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lesiontrack/lesiontrack/core"
	"github.com/lesiontrack/lesiontrack/internal/contract"
	"github.com/lesiontrack/lesiontrack/internal/extract"
	"github.com/lesiontrack/lesiontrack/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleAnalyzeEvolution(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	inputFile := request.GetString("input_file", "")
	patientID := request.GetString("patient", h.baseCfg.PatientID)

	var records []schema.Measurement
	var err error
	switch {
	case inputFile != "":
		records, err = extract.LoadMeasurementFile(inputFile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load %s: %v", inputFile, err)), nil
		}
	case patientID != "":
		records, err = h.mgr.GetRecordStore().LoadMeasurements(patientID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load stored records: %v", err)), nil
		}
	default:
		return mcp.NewToolResultError("either input_file or patient is required"), nil
	}

	if len(records) == 0 {
		return mcp.NewToolResultError("no measurements found"), nil
	}

	result, err := core.AnalyzeRecords(patientID, records)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleResolveLesions(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := request.GetString("names", "")

	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return mcp.NewToolResultError("names must contain at least one lesion name"), nil
	}

	mapping := core.NewResolver().Resolve(names)

	jsonData, _ := json.MarshalIndent(mapping, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleExtractReport(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := request.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("text must not be empty"), nil
	}

	records, err := extract.ExtractRecords(text, "mcp")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}

	payload := struct {
		Content schema.ReportContent `json:"conteudo"`
		Records []schema.Measurement `json:"medicoes"`
	}{
		Content: extract.ValidateContent(text),
		Records: records,
	}

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleStoreStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.mgr.GetRecordStore().GetStats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read store stats: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
