package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Eshwarvijay007/nomadly/internal/config"
	"github.com/Eshwarvijay007/nomadly/internal/intake"
)

func testConfig() *config.Config {
	return &config.Config{
		Mode:        "stdio",
		Version:     "1.0.0",
		ServerName:  "test-server",
		LogLevel:    "info",
		MaxFileSize: 1024 * 1024,
	}
}

func testIntakeService(maxFileSize int64) *intake.Service {
	return intake.NewService(intake.ServiceConfig{MaxFileSize: maxFileSize})
}

func pathRequest(path string) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"path": path,
			},
		},
	}
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

func TestNewServer(t *testing.T) {
	cfg := testConfig()

	server, err := NewServer(cfg, testIntakeService(cfg.MaxFileSize))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server == nil {
		t.Fatal("server should not be nil")
	}
	if server.config != cfg {
		t.Error("server config not set correctly")
	}
	if server.mcpServer == nil {
		t.Error("mcpServer should be initialized")
	}
}

func TestNewServer_NilService(t *testing.T) {
	if _, err := NewServer(testConfig(), nil); err == nil {
		t.Error("expected error for nil intake service")
	}
}

func TestServer_HandleValidateFile(t *testing.T) {
	cfg := testConfig()
	server, err := NewServer(cfg, testIntakeService(cfg.MaxFileSize))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	t.Run("accepted file", func(t *testing.T) {
		path := writeTestFile(t, "places.csv", "name,city\nLouvre,Paris\n")

		result, err := server.handleValidateFile(context.Background(), pathRequest(path))
		if err != nil {
			t.Fatalf("handler should not return error, got: %v", err)
		}
		text := extractTextFromResult(result)
		if !strings.Contains(text, "accepted for parsing") {
			t.Errorf("expected acceptance message, got: %s", text)
		}
	})

	t.Run("rejected format", func(t *testing.T) {
		path := writeTestFile(t, "program.exe", "MZ")

		result, err := server.handleValidateFile(context.Background(), pathRequest(path))
		if err != nil {
			t.Fatalf("handler should not return error, got: %v", err)
		}
		text := extractTextFromResult(result)
		if !strings.Contains(text, "Validation failed") {
			t.Errorf("expected validation failure message, got: %s", text)
		}
		if !strings.Contains(text, "File format not supported") {
			t.Errorf("expected format error in message, got: %s", text)
		}
	})
}

func TestServer_HandleParseFile(t *testing.T) {
	cfg := testConfig()
	server, err := NewServer(cfg, testIntakeService(cfg.MaxFileSize))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	path := writeTestFile(t, "places.csv", "Place Name,Location\nEiffel Tower,Paris\nColosseum,Rome\n")

	result, err := server.handleParseFile(context.Background(), pathRequest(path))
	if err != nil {
		t.Fatalf("handler should not return error, got: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success result, got error: %s", extractTextFromResult(result))
	}

	text := extractTextFromResult(result)
	for _, want := range []string{"Successfully parsed", "Source type: csv", "Rows: 2", "Place Name, Location", "Eiffel Tower | Paris"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected result to contain %q, got: %s", want, text)
		}
	}
}

func TestServer_HandleParseFile_Failure(t *testing.T) {
	cfg := testConfig()
	server, err := NewServer(cfg, testIntakeService(cfg.MaxFileSize))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	t.Run("missing file", func(t *testing.T) {
		result, err := server.handleParseFile(context.Background(), pathRequest("/nonexistent/file.csv"))
		if err != nil {
			t.Fatalf("handler should not return error, got: %v", err)
		}
		if !result.IsError {
			t.Error("expected error result for a missing file")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTestFile(t, "empty.csv", "")

		result, err := server.handleParseFile(context.Background(), pathRequest(path))
		if err != nil {
			t.Fatalf("handler should not return error, got: %v", err)
		}
		if !result.IsError {
			t.Fatal("expected error result for an empty file")
		}
		text := extractTextFromResult(result)
		if !strings.Contains(text, "VALIDATION_ERROR") {
			t.Errorf("expected validation error code in message, got: %s", text)
		}
	})

	t.Run("broken pdf", func(t *testing.T) {
		path := writeTestFile(t, "broken.pdf", "not really a pdf")

		result, err := server.handleParseFile(context.Background(), pathRequest(path))
		if err != nil {
			t.Fatalf("handler should not return error, got: %v", err)
		}
		if !result.IsError {
			t.Fatal("expected error result for a broken PDF")
		}
		text := extractTextFromResult(result)
		if !strings.Contains(text, "PARSE_ERROR") {
			t.Errorf("expected parse error code in message, got: %s", text)
		}
	})
}

func TestServer_HandleExtractMetadata(t *testing.T) {
	cfg := testConfig()
	server, err := NewServer(cfg, testIntakeService(cfg.MaxFileSize))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	t.Run("csv with place columns", func(t *testing.T) {
		path := writeTestFile(t, "places.csv", "Place Name,Location\nEiffel Tower,Paris\n")

		result, err := server.handleExtractMetadata(context.Background(), pathRequest(path))
		if err != nil {
			t.Fatalf("handler should not return error, got: %v", err)
		}

		text := extractTextFromResult(result)
		for _, want := range []string{"Inferred metadata", "Eiffel Tower", "Paris", "place_confidence"} {
			if !strings.Contains(text, want) {
				t.Errorf("expected result to contain %q, got: %s", want, text)
			}
		}
	})

	t.Run("nothing inferable", func(t *testing.T) {
		path := writeTestFile(t, "notes.txt", "ab")

		result, err := server.handleExtractMetadata(context.Background(), pathRequest(path))
		if err != nil {
			t.Fatalf("handler should not return error, got: %v", err)
		}

		text := extractTextFromResult(result)
		if !strings.Contains(text, "should start blank") {
			t.Errorf("expected blank-form guidance, got: %s", text)
		}
	})
}

func TestServer_HandleServerInfo(t *testing.T) {
	cfg := testConfig()
	server, err := NewServer(cfg, testIntakeService(cfg.MaxFileSize))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	result, err := server.handleServerInfo(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler should not return error, got: %v", err)
	}

	text := extractTextFromResult(result)
	for _, want := range []string{"test-server", "Accepted formats", "intake_parse_file", "intake_extract_metadata"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected info to contain %q, got: %s", want, text)
		}
	}
}

func TestServer_InvalidArguments(t *testing.T) {
	cfg := testConfig()
	server, err := NewServer(cfg, testIntakeService(cfg.MaxFileSize))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	emptyRequest := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	handlers := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	}{
		{"ParseFile", server.handleParseFile},
		{"ValidateFile", server.handleValidateFile},
		{"ExtractMetadata", server.handleExtractMetadata},
	}

	for _, h := range handlers {
		t.Run(h.name, func(t *testing.T) {
			result, err := h.handler(context.Background(), emptyRequest)
			if err != nil {
				t.Errorf("handler should not return error, got: %v", err)
			}
			if result == nil {
				t.Fatal("result should not be nil")
			}
			if !result.IsError {
				t.Errorf("expected error result for missing arguments, got: %s", extractTextFromResult(result))
			}
		})
	}
}

func TestFormatParseResult(t *testing.T) {
	cfg := testConfig()
	server, err := NewServer(cfg, testIntakeService(cfg.MaxFileSize))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	rows := make([][]intake.Cell, 7)
	for i := range rows {
		rows[i] = []intake.Cell{intake.StringCell("Louvre"), intake.StringCell("Paris")}
	}
	envelope := &intake.ContentEnvelope{
		Raw: &intake.TabularContent{
			Headers:     []string{"name", "city"},
			Rows:        rows,
			RowCount:    len(rows),
			ColumnCount: 2,
			SourceType:  intake.SourceCSV,
		},
		Metadata: intake.FileMetadata{Name: "places.csv", Size: 1024},
	}

	formatted := server.formatParseResult("/tmp/places.csv", envelope)
	if !strings.Contains(formatted, "Rows: 7") {
		t.Error("formatted result should contain row count")
	}
	if !strings.Contains(formatted, "... (2 more rows)") {
		t.Error("formatted result should truncate the preview")
	}
	if !strings.Contains(formatted, "Headers: name, city") {
		t.Error("formatted result should list headers")
	}
}

// Helper function to extract text from a CallToolResult
func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}

	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}

	return ""
}
