package intake

import (
	"strings"
	"testing"
	"time"
)

func testFile(name, mimeType string, size int64) SourceFile {
	data := make([]byte, size)
	return SourceFile{
		Name:         name,
		MIMEType:     mimeType,
		Size:         size,
		LastModified: time.Now(),
		Data:         data,
	}
}

func TestValidator_Validate(t *testing.T) {
	validator := NewValidator(1024*1024, nil) // 1MB limit

	tests := []struct {
		name        string
		file        SourceFile
		expectValid bool
		wantErrors  []string
	}{
		{
			name:        "valid csv file",
			file:        testFile("places.csv", "text/csv", 512),
			expectValid: true,
		},
		{
			name:        "valid by mime type despite odd extension",
			file:        testFile("export.data", "application/json", 512),
			expectValid: true,
		},
		{
			name:        "empty file",
			file:        testFile("places.csv", "text/csv", 0),
			expectValid: false,
			wantErrors:  []string{"File is empty"},
		},
		{
			name:        "oversized file",
			file:        testFile("big.csv", "text/csv", 2*1024*1024),
			expectValid: false,
			wantErrors:  []string{"size"},
		},
		{
			name:        "unsupported format",
			file:        testFile("notes.docx", "application/msword", 512),
			expectValid: false,
			wantErrors:  []string{"not supported"},
		},
		{
			name:        "extension case is ignored",
			file:        testFile("PLACES.CSV", "", 512),
			expectValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := validator.Validate(tt.file)

			if outcome.Valid != tt.expectValid {
				t.Errorf("expected Valid=%v but got %v (errors: %v)",
					tt.expectValid, outcome.Valid, outcome.Errors)
			}

			for _, want := range tt.wantErrors {
				found := false
				for _, msg := range outcome.Errors {
					if strings.Contains(msg, want) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected an error containing %q, got %v", want, outcome.Errors)
				}
			}
		})
	}
}

func TestValidator_AccumulatesErrors(t *testing.T) {
	validator := NewValidator(1024, nil)

	// Oversized AND wrong format: both checks must report, not just the first.
	file := testFile("notes.docx", "application/msword", 4096)
	outcome := validator.Validate(file)

	if outcome.Valid {
		t.Fatalf("expected invalid outcome")
	}
	if len(outcome.Errors) != 2 {
		t.Fatalf("expected exactly 2 errors, got %d: %v", len(outcome.Errors), outcome.Errors)
	}
	if !strings.Contains(outcome.Errors[0], "size") {
		t.Errorf("first error should mention size, got %q", outcome.Errors[0])
	}
	if !strings.Contains(outcome.Errors[1], "not supported") {
		t.Errorf("second error should mention unsupported format, got %q", outcome.Errors[1])
	}
}

func TestValidator_SizeMessageUsesHumanUnits(t *testing.T) {
	validator := NewValidator(10*1024*1024, nil)

	file := testFile("big.csv", "text/csv", 12*1024*1024)
	outcome := validator.Validate(file)

	if outcome.Valid {
		t.Fatalf("expected invalid outcome")
	}
	if !strings.Contains(outcome.Errors[0], "12.00 MB") {
		t.Errorf("expected actual size in MB with 2 decimals, got %q", outcome.Errors[0])
	}
	if !strings.Contains(outcome.Errors[0], "10.00 MB") {
		t.Errorf("expected max size in MB with 2 decimals, got %q", outcome.Errors[0])
	}
}

func TestValidator_FormatMessageListsExtensions(t *testing.T) {
	validator := NewValidator(1024*1024, nil)

	file := testFile("notes.docx", "application/msword", 512)
	outcome := validator.Validate(file)

	if outcome.Valid {
		t.Fatalf("expected invalid outcome")
	}
	for _, ext := range []string{"csv", "xlsx", "json", "pdf", "png", "txt"} {
		if !strings.Contains(outcome.Errors[0], ext) {
			t.Errorf("expected format message to list %q, got %q", ext, outcome.Errors[0])
		}
	}
}

func TestValidator_CustomPredicate(t *testing.T) {
	formats := []FormatDescriptor{
		{Extension: "csv", MIMEType: "text/csv"},
		{Accept: func(f SourceFile) bool {
			return strings.HasPrefix(f.Name, "export-")
		}},
	}
	validator := NewValidator(1024*1024, formats)

	accepted := validator.Validate(testFile("export-2024.bin", "application/octet-stream", 512))
	if !accepted.Valid {
		t.Errorf("expected predicate to accept the file, got errors: %v", accepted.Errors)
	}

	rejected := validator.Validate(testFile("random.bin", "application/octet-stream", 512))
	if rejected.Valid {
		t.Errorf("expected rejection for file matching nothing")
	}
}
