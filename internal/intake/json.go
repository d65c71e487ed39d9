package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// JSONExtractor converts JSON documents into tabular content.
type JSONExtractor struct{}

// NewJSONExtractor creates a new JSON extractor.
func NewJSONExtractor() *JSONExtractor {
	return &JSONExtractor{}
}

// SourceType identifies the extractor's output tag.
func (e *JSONExtractor) SourceType() SourceType { return SourceJSON }

// Extract accepts three shapes, tried in order: a top-level array of
// objects, an object containing exactly one array-of-objects property, or a
// single flat object rendered as a one-row table. Anything else fails.
func (e *JSONExtractor) Extract(_ context.Context, file SourceFile) (*TabularContent, error) {
	var decoded any
	if err := json.Unmarshal(file.Data, &decoded); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	switch v := decoded.(type) {
	case []any:
		return objectArrayToTable(v)
	case map[string]any:
		if nested, ok := singleArrayProperty(v); ok {
			return objectArrayToTable(nested)
		}
		if flatObject(v) {
			return objectArrayToTable([]any{v})
		}
	}

	return nil, fmt.Errorf("JSON format not supported")
}

// objectArrayToTable builds a table from an array of objects: headers are
// the first object's keys, every element must itself be an object.
func objectArrayToTable(arr []any) (*TabularContent, error) {
	if len(arr) == 0 {
		return nil, fmt.Errorf("JSON format not supported")
	}

	first, ok := arr[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("JSON format not supported")
	}

	headers := make([]string, 0, len(first))
	for key := range first {
		headers = append(headers, key)
	}
	sort.Strings(headers)

	rows := make([][]Cell, 0, len(arr))
	for _, element := range arr {
		obj, ok := element.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("JSON format not supported")
		}
		row := make([]Cell, len(headers))
		for i, key := range headers {
			row[i] = coerceValue(obj[key])
		}
		rows = append(rows, row)
	}

	return &TabularContent{
		Headers:     headers,
		Rows:        rows,
		RowCount:    len(rows),
		ColumnCount: len(headers),
		SourceType:  SourceJSON,
	}, nil
}

// singleArrayProperty reports whether the object has exactly one property
// holding an array of objects, returning that array.
func singleArrayProperty(obj map[string]any) ([]any, bool) {
	var found []any
	count := 0
	for _, value := range obj {
		arr, ok := value.([]any)
		if !ok || len(arr) == 0 {
			continue
		}
		if _, ok := arr[0].(map[string]any); !ok {
			continue
		}
		found = arr
		count++
	}
	return found, count == 1
}

// flatObject reports whether every property value is a scalar.
func flatObject(obj map[string]any) bool {
	for _, value := range obj {
		switch value.(type) {
		case nil, string, float64, bool:
		default:
			return false
		}
	}
	return len(obj) > 0
}
