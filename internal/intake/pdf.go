package intake

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFExtractor extracts the native embedded text layer of a PDF. It never
// rasterizes pages and never falls back to OCR; a PDF without extractable
// text is a failure, not an OCR candidate.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDF text extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// SourceType identifies the extractor's output tag.
func (e *PDFExtractor) SourceType() SourceType { return SourcePDF }

// Extract walks every page in order, concatenating whitespace-normalized
// text, and converts the result into a one-column table with one non-blank
// line per row.
func (e *PDFExtractor) Extract(_ context.Context, file SourceFile) (*TabularContent, error) {
	if err := e.validateStructure(file.Data); err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails.
			continue
		}

		builder.WriteString(normalizeWhitespace(content))
		builder.WriteByte('\n')
	}

	text := builder.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("No readable native text found in PDF")
	}

	return textToTable(text, SourcePDF), nil
}

// validateStructure runs a relaxed pdfcpu read over the bytes so corrupt
// files fail with a structural error before text extraction starts.
func (e *PDFExtractor) validateStructure(data []byte) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	return nil
}

// normalizeWhitespace collapses runs of spaces and tabs within each line
// while preserving line structure.
func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}
