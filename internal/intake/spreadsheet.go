package intake

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SpreadsheetExtractor reads the first sheet of an Excel workbook.
type SpreadsheetExtractor struct{}

// NewSpreadsheetExtractor creates a new spreadsheet extractor.
func NewSpreadsheetExtractor() *SpreadsheetExtractor {
	return &SpreadsheetExtractor{}
}

// SourceType identifies the extractor's output tag.
func (e *SpreadsheetExtractor) SourceType() SourceType { return SourceSpreadsheet }

// Extract reads the first sheet only: the first row becomes headers and the
// remaining rows become data, with scalar types auto-detected per cell.
func (e *SpreadsheetExtractor) Extract(_ context.Context, file SourceFile) (*TabularContent, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(file.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file is empty")
	}

	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("Excel file is empty")
	}

	headers := records[0]
	width := len(headers)
	// excelize trims trailing empty cells per row, so later rows may be
	// wider than the header row.
	for _, record := range records[1:] {
		if len(record) > width {
			width = len(record)
		}
	}
	for len(headers) < width {
		headers = append(headers, "")
	}

	rows := make([][]Cell, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]Cell, 0, width)
		for _, field := range record {
			row = append(row, coerceString(field))
		}
		rows = append(rows, padRow(row, width))
	}

	return &TabularContent{
		Headers:     headers,
		Rows:        rows,
		RowCount:    len(rows),
		ColumnCount: width,
		SourceType:  SourceSpreadsheet,
	}, nil
}
