package metadata

import (
	"fmt"
	"strings"

	"github.com/Eshwarvijay007/nomadly/internal/intake"
)

// Result carries the inferred form prefill values. An empty value always
// co-occurs with a zero confidence, and vice versa.
type Result struct {
	PlaceName          string  `json:"place_name"`
	Location           string  `json:"location"`
	PlaceConfidence    float64 `json:"place_confidence"`
	LocationConfidence float64 `json:"location_confidence"`
}

// fieldSpec bundles the matching inputs for one semantic field.
type fieldSpec struct {
	priority []string
	aliases  map[string]struct{}
	target   string
}

var (
	placeSpec    = fieldSpec{priority: placePriority, aliases: placeAliases, target: "placeName"}
	locationSpec = fieldSpec{priority: locationPriority, aliases: locationAliases, target: "location"}

	fuzzyTargets = []TargetField{
		{Name: "placeName", Label: "Place Name"},
		{Name: "location", Label: "Location"},
	}
)

// ExtractFromContent infers a place name and location from parsed content.
// It is total: any unrecognized shape yields the all-empty result, never an
// error.
func ExtractFromContent(content any) Result {
	switch v := content.(type) {
	case *intake.ContentEnvelope:
		if v == nil || v.Raw == nil {
			return Result{}
		}
		return extractFromTabular(v.Raw)
	case intake.ContentEnvelope:
		if v.Raw == nil {
			return Result{}
		}
		return extractFromTabular(v.Raw)
	case *intake.TabularContent:
		if v == nil {
			return Result{}
		}
		return extractFromTabular(v)
	case intake.TabularContent:
		return extractFromTabular(&v)
	case string:
		return extractFromText(v)
	case []map[string]any:
		if len(v) == 0 {
			return Result{}
		}
		return extractFromObject(v[0])
	case map[string]any:
		return extractFromObject(v)
	default:
		return Result{}
	}
}

// extractFromTabular runs the header strategy and, when it finds neither
// field, falls back to mining the content as free text. An OCR text blob is
// preferred over rejoined cell values.
func extractFromTabular(table *intake.TabularContent) Result {
	result := extractFromTable(table.Headers, table.Rows)
	if result.PlaceName != "" || result.Location != "" {
		return result
	}

	text := table.OCRText
	if text == "" {
		text = table.Flatten()
	}
	return extractFromText(text)
}

// extractFromObject treats an object's keys as headers over a one-row table.
func extractFromObject(obj map[string]any) Result {
	headers := make([]string, 0, len(obj))
	row := make([]intake.Cell, 0, len(obj))
	for key, value := range obj {
		headers = append(headers, key)
		row = append(row, intake.StringCell(valueToString(value)))
	}
	return extractFromTable(headers, [][]intake.Cell{row})
}

// extractFromTable runs two independent header passes, one per field, and
// reads the matched cells from the most information-dense row.
func extractFromTable(headers []string, rows [][]intake.Cell) Result {
	placeIdx, placeConf := findHeaderIndex(headers, placeSpec)
	locIdx, locConf := findHeaderIndex(headers, locationSpec)

	var result Result
	if len(rows) == 0 {
		return result
	}
	row := rows[bestRowIndex(rows)]

	if placeIdx >= 0 && placeIdx < len(row) {
		if value := cleanValue(row[placeIdx].String()); value != "" {
			result.PlaceName = value
			result.PlaceConfidence = placeConf
		}
	}
	if locIdx >= 0 && locIdx < len(row) {
		if value := cleanValue(row[locIdx].String()); value != "" {
			result.Location = value
			result.LocationConfidence = locConf
		}
	}
	return result
}

// findHeaderIndex locates the best header for one field, trying each tier in
// fixed order and stopping at the first hit: priority exact, priority
// substring, alias exact, alias substring, then the fuzzy matcher.
func findHeaderIndex(headers []string, spec fieldSpec) (int, float64) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	for rank, token := range spec.priority {
		for i, h := range normalized {
			if h == token {
				return i, priorityConfidence(ConfidencePriorityExact, rank)
			}
		}
	}

	for rank, token := range spec.priority {
		for i, h := range normalized {
			if h != "" && strings.Contains(h, token) {
				return i, priorityConfidence(ConfidencePrioritySubstring, rank)
			}
		}
	}

	for i, h := range normalized {
		if _, ok := spec.aliases[h]; ok {
			return i, ConfidenceAliasExact
		}
	}

	for i, h := range normalized {
		if h == "" {
			continue
		}
		for alias := range spec.aliases {
			if strings.Contains(h, alias) {
				return i, ConfidenceAliasSubstring
			}
		}
	}

	matcher := NewFieldMatcher(fuzzyTargets)
	for _, match := range matcher.MatchFields(headers) {
		if match.TargetField != spec.target || match.Confidence < ConfidenceFuzzyFloor {
			continue
		}
		for i, h := range headers {
			if h == match.SourceField {
				return i, match.Confidence
			}
		}
	}

	return -1, 0
}

// bestRowIndex picks the row with the most non-blank cells, first on ties.
func bestRowIndex(rows [][]intake.Cell) int {
	best, bestCount := 0, -1
	for i, row := range rows {
		count := 0
		for _, cell := range row {
			if !cell.IsBlank() {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	return best
}

// extractFromText mines non-blank lines in document order. An inline arrow
// line is authoritative and short-circuits the scan; labeled prefixes come
// next; shape-based guesses fill whatever is still missing.
func extractFromText(text string) Result {
	var result Result
	lines := nonBlankLines(text)

	for _, line := range lines {
		if m := arrowPattern.FindStringSubmatch(line); m != nil {
			left, right := cleanValue(m[1]), cleanValue(m[2])
			if left != "" && right != "" {
				return Result{
					PlaceName:          left,
					Location:           right,
					PlaceConfidence:    ConfidenceArrowPattern,
					LocationConfidence: ConfidenceArrowPattern,
				}
			}
		}

		if result.PlaceName == "" {
			if m := placePrefixPattern.FindStringSubmatch(line); m != nil {
				if value := cleanValue(m[1]); value != "" {
					result.PlaceName = value
					result.PlaceConfidence = ConfidenceLabeledPrefix
					continue
				}
			}
		}

		if result.Location == "" {
			if m := locationPrefixPattern.FindStringSubmatch(line); m != nil {
				if value := cleanValue(m[1]); value != "" {
					result.Location = value
					result.LocationConfidence = ConfidenceLabeledPrefix
				}
			}
		}

		if result.PlaceName != "" && result.Location != "" {
			return result
		}
	}

	if result.PlaceName == "" {
		for _, line := range lines {
			if looksLikePlaceName(line) {
				if value := cleanValue(line); value != "" {
					result.PlaceName = value
					result.PlaceConfidence = ConfidenceLooksLike
					break
				}
			}
		}
	}

	if result.Location == "" {
		for _, line := range lines {
			if looksLikeLocation(line) {
				if value := cleanValue(line); value != "" {
					result.Location = value
					result.LocationConfidence = ConfidenceLooksLike
					break
				}
			}
		}
	}

	return result
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func valueToString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return intake.NumberCell(val).String()
	case bool:
		return intake.BoolCell(val).String()
	default:
		return fmt.Sprint(val)
	}
}
