package intake

import (
	"context"
)

// TextExtractor converts plain text into a one-column table.
type TextExtractor struct{}

// NewTextExtractor creates a new plain text extractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// SourceType identifies the extractor's output tag.
func (e *TextExtractor) SourceType() SourceType { return SourceText }

// Extract never fails on its own; zero-length input is rejected upstream by
// the validator's empty-file check.
func (e *TextExtractor) Extract(_ context.Context, file SourceFile) (*TabularContent, error) {
	return textToTable(string(file.Data), SourceText), nil
}
