// Package metadata infers a place name and a location from parsed tabular
// content, scoring each inferred value with a heuristic confidence.
package metadata

import (
	"regexp"
	"strings"
)

// Hand-tuned confidence constants. The exact values are inherited behavior;
// keep them as named constants rather than re-deriving them.
const (
	// ConfidencePriorityExact is the base score for an exact header match
	// against the priority list; each priority step down costs 0.01, capped
	// at 0.10.
	ConfidencePriorityExact = 0.96

	// ConfidencePrioritySubstring is the base score when a header merely
	// contains a priority token.
	ConfidencePrioritySubstring = 0.88

	// ConfidenceAliasExact scores an exact match against the broader alias
	// set, which carries no ordering.
	ConfidenceAliasExact = 0.95

	// ConfidenceAliasSubstring scores a substring match against the alias set.
	ConfidenceAliasSubstring = 0.82

	// ConfidenceFuzzyFloor is the minimum fuzzy-match confidence accepted as
	// the last-resort header tier.
	ConfidenceFuzzyFloor = 0.55

	// ConfidenceArrowPattern scores an inline "<place> -> <location>" line.
	// When it matches it is authoritative and stops the scan.
	ConfidenceArrowPattern = 0.88

	// ConfidenceLabeledPrefix scores a "Label: value" line.
	ConfidenceLabeledPrefix = 0.9

	// ConfidenceLooksLike scores the shape-based last-resort line guesses.
	ConfidenceLooksLike = 0.55

	// PriorityPenaltyStep and PriorityPenaltyCap control how much a lower
	// priority rank subtracts from the base score.
	PriorityPenaltyStep = 0.01
	PriorityPenaltyCap  = 0.10
)

// Priority lists are consulted in order before any looser matching.
var (
	placePriority = []string{
		"place_name", "place", "landmark", "monument", "site", "name", "title", "attraction",
	}
	locationPriority = []string{
		"city", "location", "loc", "region", "state", "address", "country", "area",
	}
)

// Broader alias sets, unordered.
var (
	placeAliases = map[string]struct{}{
		"place_name": {}, "placename": {}, "place": {}, "place_title": {},
		"landmark": {}, "monument": {}, "heritage_site": {}, "site": {},
		"site_name": {}, "attraction": {}, "poi": {}, "point_of_interest": {},
		"destination": {}, "venue": {}, "spot": {}, "name": {}, "title": {},
	}
	locationAliases = map[string]struct{}{
		"location": {}, "loc": {}, "city": {}, "town": {}, "state": {},
		"province": {}, "region": {}, "country": {}, "address": {}, "area": {},
		"district": {}, "locality": {}, "place_location": {}, "geo": {},
	}
)

var (
	// arrowPattern matches an optional "N. " ordinal, then "<text> -> <text>"
	// with either an ASCII or a Unicode arrow.
	arrowPattern = regexp.MustCompile(`^(?:\d+\.\s*)?(.+?)\s*(?:->|→)\s*(.+)$`)

	// Labeled prefixes: "place name" must precede "place" and "name" so the
	// longest label wins the alternation.
	placePrefixPattern = regexp.MustCompile(
		`(?i)^(?:place name|place|landmark|monument|site|name)\s*[:\-]\s*(.+)$`)
	locationPrefixPattern = regexp.MustCompile(
		`(?i)^(?:location|city|state|country|region|address)\s*[:\-]\s*(.+)$`)

	// twoLetterToken spots bare state/country codes like "CA" or "IN".
	twoLetterToken = regexp.MustCompile(`\b[A-Z]{2}\b`)

	separatorRun    = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	edgePunctuation = regexp.MustCompile(`^[\s:\-]+|[\s:\-]+$`)
)

// normalizeHeader lowercases a header and collapses every separator run to a
// single underscore, stripping non-alphanumeric edges.
func normalizeHeader(header string) string {
	lower := strings.ToLower(strings.TrimSpace(header))
	collapsed := separatorRun.ReplaceAllString(lower, "_")
	return strings.Trim(collapsed, "_")
}

// cleanValue collapses internal whitespace and strips leading/trailing
// colons, dashes and spaces.
func cleanValue(value string) string {
	collapsed := whitespaceRun.ReplaceAllString(value, " ")
	return edgePunctuation.ReplaceAllString(collapsed, "")
}

// priorityConfidence derives the score for a priority hit at rank index.
func priorityConfidence(base float64, index int) float64 {
	penalty := float64(index) * PriorityPenaltyStep
	if penalty > PriorityPenaltyCap {
		penalty = PriorityPenaltyCap
	}
	return base - penalty
}

// looksLikePlaceName applies the shape heuristic for a bare place-name line:
// sensible length, no location-ish words, and under 20% digits.
func looksLikePlaceName(line string) bool {
	if len(line) < 3 || len(line) > 120 {
		return false
	}
	lower := strings.ToLower(line)
	for _, word := range []string{"location", "address", "city"} {
		if strings.Contains(lower, word) {
			return false
		}
	}
	digits := 0
	for _, r := range line {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return float64(digits) < 0.2*float64(len(line))
}

// looksLikeLocation applies the shape heuristic for a bare location line:
// a comma, a location-ish word, or a bare two-letter code.
func looksLikeLocation(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if strings.Contains(line, ",") {
		return true
	}
	lower := strings.ToLower(line)
	for _, word := range []string{"city", "state", "country", "region"} {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return twoLetterToken.MatchString(line)
}
