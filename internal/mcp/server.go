// Package mcp exposes the intake pipeline over the Model Context Protocol
// so upload frontends and agent tooling can drive it through stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Eshwarvijay007/nomadly/internal/config"
	"github.com/Eshwarvijay007/nomadly/internal/descriptions"
	"github.com/Eshwarvijay007/nomadly/internal/intake"
	"github.com/Eshwarvijay007/nomadly/internal/metadata"
)

// Server represents the MCP server instance.
type Server struct {
	config        *config.Config
	intakeService *intake.Service
	mcpServer     *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config, intakeService *intake.Service) (*Server, error) {
	if intakeService == nil {
		return nil, fmt.Errorf("intakeService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:        cfg,
		intakeService: intakeService,
		mcpServer:     mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	parseFileTool := mcp.NewTool(
		"intake_parse_file",
		mcp.WithDescription(descriptions.IntakeParseFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the file"),
		),
	)
	s.mcpServer.AddTool(parseFileTool, s.handleParseFile)

	validateFileTool := mcp.NewTool(
		"intake_validate_file",
		mcp.WithDescription(descriptions.IntakeValidateFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	extractMetadataTool := mcp.NewTool(
		"intake_extract_metadata",
		mcp.WithDescription(descriptions.IntakeExtractMetadataDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the file"),
		),
	)
	s.mcpServer.AddTool(extractMetadataTool, s.handleExtractMetadata)

	serverInfoTool := mcp.NewTool(
		"intake_server_info",
		mcp.WithDescription(descriptions.IntakeServerInfoDescription),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions

func (s *Server) handleParseFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	file, err := intake.LoadSourceFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := s.intakeService.Parse(ctx, file)
	if !outcome.Succeeded() {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s",
			outcome.Failure.Code, outcome.Failure.Message)), nil
	}

	return mcp.NewToolResultText(s.formatParseResult(path, outcome.Content)), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	file, err := intake.LoadSourceFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	validation := s.intakeService.Validator().Validate(file)

	var responseText string
	if validation.Valid {
		responseText = fmt.Sprintf("File %s is accepted for parsing", path)
	} else {
		responseText = fmt.Sprintf("Validation failed for %s:\n- %s",
			path, strings.Join(validation.Errors, "\n- "))
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleExtractMetadata(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	file, err := intake.LoadSourceFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := s.intakeService.Parse(ctx, file)
	if !outcome.Succeeded() {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s",
			outcome.Failure.Code, outcome.Failure.Message)), nil
	}

	result := metadata.ExtractFromContent(outcome.Content)

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}

	responseText := fmt.Sprintf("Inferred metadata for %s:\n%s", path, string(payload))
	if result.PlaceName == "" && result.Location == "" {
		responseText += "\n\nNo place or location could be inferred; the form should start blank."
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := fmt.Sprintf("%s %s\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Maximum upload size: %d bytes\n", s.config.MaxFileSize)

	text += "\nAccepted formats:\n"
	for _, f := range intake.DefaultFormats() {
		text += fmt.Sprintf("  • .%s (%s)\n", f.Extension, f.MIMEType)
	}

	text += `
Available Tools:

• intake_validate_file
  Check a file against size and format constraints before parsing.

• intake_parse_file
  Parse a file into a normalized table: headers, typed rows, file metadata.

• intake_extract_metadata
  Parse a file and infer a place name and location, each with a
  confidence score in [0,1]. A confidence of 0 always means "not found";
  the caller should leave that form field blank and editable.

Notes:
- PDFs are read from their native text layer only; scanned PDFs without
  embedded text fail rather than falling back to OCR.
- Images are recognized with a per-call OCR engine process.
`

	return mcp.NewToolResultText(text), nil
}

// formatParseResult renders a parse success for tool output.
func (s *Server) formatParseResult(path string, envelope *intake.ContentEnvelope) string {
	raw := envelope.Raw

	text := fmt.Sprintf("Successfully parsed: %s\n", path)
	text += fmt.Sprintf("Source type: %s\n", raw.SourceType)
	text += fmt.Sprintf("Columns: %d\n", raw.ColumnCount)
	text += fmt.Sprintf("Rows: %d\n", raw.RowCount)
	text += fmt.Sprintf("Size: %d bytes\n", envelope.Metadata.Size)

	if len(raw.Headers) > 0 {
		text += fmt.Sprintf("Headers: %s\n", strings.Join(raw.Headers, ", "))
	}

	const previewRows = 5
	for i, row := range raw.Rows {
		if i >= previewRows {
			text += fmt.Sprintf("... (%d more rows)\n", raw.RowCount-previewRows)
			break
		}
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cell.String()
		}
		text += fmt.Sprintf("%d. %s\n", i+1, strings.Join(cells, " | "))
	}

	return text
}

// Run starts the MCP server over stdio.
func (s *Server) Run(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting intake MCP server in stdio mode")
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
