package intake

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// coerceString detects scalar types inside textual cell values produced by
// the CSV and spreadsheet extractors. Numbers and booleans are promoted;
// empty strings become null; everything else stays a string.
func coerceString(s string) Cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return NullCell()
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return BoolCell(true)
	case "false":
		return BoolCell(false)
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumberCell(n)
	}
	return StringCell(s)
}

// coerceValue converts an arbitrary decoded JSON value into a cell.
// Null stays null, scalars pass through, anything else is serialized to its
// textual JSON form rather than rejected.
func coerceValue(v any) Cell {
	switch val := v.(type) {
	case nil:
		return NullCell()
	case string:
		return StringCell(val)
	case float64:
		return NumberCell(val)
	case bool:
		return BoolCell(val)
	case int:
		return NumberCell(float64(val))
	case int64:
		return NumberCell(float64(val))
	default:
		if b, err := json.Marshal(val); err == nil {
			return StringCell(string(b))
		}
		return StringCell(fmt.Sprint(val))
	}
}

// textToTable converts free text into a one-column table: every non-blank
// trimmed line becomes one row.
func textToTable(text string, source SourceType) *TabularContent {
	var rows [][]Cell
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, []Cell{StringCell(line)})
	}

	return &TabularContent{
		Headers:     []string{"text"},
		Rows:        rows,
		RowCount:    len(rows),
		ColumnCount: 1,
		SourceType:  source,
	}
}

// padRow extends a row with null cells so it has exactly width cells.
func padRow(row []Cell, width int) []Cell {
	for len(row) < width {
		row = append(row, NullCell())
	}
	return row[:width]
}
