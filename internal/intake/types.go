package intake

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SourceType identifies which extractor produced a TabularContent.
type SourceType string

const (
	SourceCSV         SourceType = "csv"
	SourceSpreadsheet SourceType = "spreadsheet"
	SourceJSON        SourceType = "json"
	SourcePDF         SourceType = "pdf"
	SourceImage       SourceType = "image"
	SourceText        SourceType = "text"
)

// ErrorCode classifies a parse failure.
type ErrorCode string

const (
	// ErrCodeValidation means the file failed size/format checks before any
	// parse attempt. Recoverable by choosing a different file.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeParse means an accepted file could not yield usable content.
	ErrCodeParse ErrorCode = "PARSE_ERROR"
)

// SourceFile is an in-memory file as handed over by the upload layer.
// Immutable once constructed.
type SourceFile struct {
	Name         string    `json:"name"`
	MIMEType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	Data         []byte    `json:"-"`
}

// Extension returns the normalized (lowercase, dot-free) file extension.
func (f SourceFile) Extension() string {
	idx := strings.LastIndex(f.Name, ".")
	if idx < 0 || idx == len(f.Name)-1 {
		return ""
	}
	return strings.ToLower(f.Name[idx+1:])
}

// CellKind discriminates the closed set of cell value kinds.
type CellKind int

const (
	CellNull CellKind = iota
	CellString
	CellNumber
	CellBool
)

// Cell is a single tabular cell value: string, number, boolean or null.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
	Bool bool
}

// NullCell returns the null cell value.
func NullCell() Cell { return Cell{Kind: CellNull} }

// StringCell wraps a string value.
func StringCell(s string) Cell { return Cell{Kind: CellString, Str: s} }

// NumberCell wraps a numeric value.
func NumberCell(n float64) Cell { return Cell{Kind: CellNumber, Num: n} }

// BoolCell wraps a boolean value.
func BoolCell(b bool) Cell { return Cell{Kind: CellBool, Bool: b} }

// IsBlank reports whether the cell is null or an empty/whitespace string.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case CellNull:
		return true
	case CellString:
		return strings.TrimSpace(c.Str) == ""
	default:
		return false
	}
}

// String renders the cell value as text.
func (c Cell) String() string {
	switch c.Kind {
	case CellNull:
		return ""
	case CellString:
		return c.Str
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellBool:
		return strconv.FormatBool(c.Bool)
	default:
		return ""
	}
}

// MarshalJSON renders the cell as its underlying scalar.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellNull:
		return []byte("null"), nil
	case CellString:
		return json.Marshal(c.Str)
	case CellNumber:
		return json.Marshal(c.Num)
	case CellBool:
		return json.Marshal(c.Bool)
	default:
		return nil, fmt.Errorf("unknown cell kind: %d", c.Kind)
	}
}

// UnmarshalJSON restores a cell from its scalar encoding.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*c = NullCell()
	case string:
		*c = StringCell(val)
	case float64:
		*c = NumberCell(val)
	case bool:
		*c = BoolCell(val)
	default:
		return fmt.Errorf("unsupported cell value: %T", v)
	}
	return nil
}

// TabularContent is the unified shape every extractor produces. Every row has
// exactly ColumnCount cells and RowCount == len(Rows).
type TabularContent struct {
	Headers     []string   `json:"headers"`
	Rows        [][]Cell   `json:"rows"`
	RowCount    int        `json:"row_count"`
	ColumnCount int        `json:"column_count"`
	SourceType  SourceType `json:"source_type"`

	// OCRText holds the raw recognized text for image sources. Downstream
	// text mining prefers the unsegmented string over rejoined rows.
	OCRText string `json:"ocr_text,omitempty"`
}

// Flatten joins every cell value row-major, one row per line, tab separated
// within a row. Used as the free-text fallback input for metadata mining.
func (t *TabularContent) Flatten() string {
	var b strings.Builder
	for i, row := range t.Rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(cell.String())
		}
	}
	return b.String()
}

// FileMetadata carries file-level attributes read directly off the input
// file, independent of its content.
type FileMetadata struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	MIMEType     string    `json:"mime_type"`
	LastModified time.Time `json:"last_modified"`
}

// ContentEnvelope wraps extracted tabular content with file metadata.
type ContentEnvelope struct {
	Raw      *TabularContent `json:"raw"`
	Metadata FileMetadata    `json:"metadata"`
}

// ParseFailure describes why a parse attempt did not produce content.
type ParseFailure struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details []string  `json:"details,omitempty"`
}

func (f *ParseFailure) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// ParseOutcome is the tagged result of a parse attempt: exactly one of
// Content or Failure is set.
type ParseOutcome struct {
	Content *ContentEnvelope `json:"content,omitempty"`
	Failure *ParseFailure    `json:"failure,omitempty"`
}

// Succeeded reports whether the parse produced content.
func (o ParseOutcome) Succeeded() bool { return o.Failure == nil && o.Content != nil }

// ValidationOutcome accumulates the human-readable results of all
// pre-parse checks. Errors holds every failed check, not just the first.
type ValidationOutcome struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// FormatDescriptor describes one acceptable input kind. A file is accepted
// when its extension matches, its MIME type matches, or Accept (if set)
// returns true.
type FormatDescriptor struct {
	Extension string
	MIMEType  string
	Accept    func(SourceFile) bool
}
