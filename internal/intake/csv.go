package intake

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVExtractor parses delimited text with a header row.
type CSVExtractor struct{}

// NewCSVExtractor creates a new CSV extractor.
func NewCSVExtractor() *CSVExtractor {
	return &CSVExtractor{}
}

// SourceType identifies the extractor's output tag.
func (e *CSVExtractor) SourceType() SourceType { return SourceCSV }

// Extract parses the file as comma-delimited text. The first record becomes
// the header row; scalar types are auto-detected per cell and blank lines
// are skipped. Malformed delimiter structure surfaces the underlying parse
// error.
func (e *CSVExtractor) Extract(_ context.Context, file SourceFile) (*TabularContent, error) {
	reader := csv.NewReader(bytes.NewReader(file.Data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV parsing failed: %w", err)
	}

	records = dropBlankRecords(records)
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([][]Cell, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]Cell, 0, len(headers))
		for _, field := range record {
			row = append(row, coerceString(field))
		}
		rows = append(rows, padRow(row, len(headers)))
	}

	return &TabularContent{
		Headers:     headers,
		Rows:        rows,
		RowCount:    len(rows),
		ColumnCount: len(headers),
		SourceType:  SourceCSV,
	}, nil
}

// dropBlankRecords removes records whose every field is empty after trimming.
func dropBlankRecords(records [][]string) [][]string {
	kept := records[:0]
	for _, record := range records {
		blank := true
		for _, field := range record {
			if strings.TrimSpace(field) != "" {
				blank = false
				break
			}
		}
		if !blank {
			kept = append(kept, record)
		}
	}
	return kept
}
