package metadata

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// Matching defaults. MaxScore is looser than exact so moderately different
// names like "Telephone" and "Phone_Number" still correspond.
const (
	DefaultMaxScore         = 0.6
	DefaultAutoMapThreshold = 0.6
)

// TargetField describes one semantic field the matcher can resolve to.
type TargetField struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// FieldMatch is a proposed source-to-target correspondence. Confidence is
// the complement of the similarity score, so 1 means identical.
type FieldMatch struct {
	SourceField string  `json:"source_field"`
	TargetField string  `json:"target_field"`
	Confidence  float64 `json:"confidence"`
}

// FieldMatcher proposes best-effort correspondences between observed source
// field names and a fixed set of target fields. It is general purpose; the
// metadata extractor uses it as its last-resort header tier.
type FieldMatcher struct {
	targets  []TargetField
	maxScore float64
}

// NewFieldMatcher creates a matcher over the given targets with the default
// similarity threshold.
func NewFieldMatcher(targets []TargetField) *FieldMatcher {
	return NewFieldMatcherWithThreshold(targets, DefaultMaxScore)
}

// NewFieldMatcherWithThreshold creates a matcher with a custom maximum
// score; candidates scoring above it are discarded.
func NewFieldMatcherWithThreshold(targets []TargetField, maxScore float64) *FieldMatcher {
	if maxScore <= 0 {
		maxScore = DefaultMaxScore
	}
	return &FieldMatcher{targets: targets, maxScore: maxScore}
}

// MatchFields proposes a correspondence for every source field that clears
// the threshold, sorted by descending confidence.
func (m *FieldMatcher) MatchFields(sourceFields []string) []FieldMatch {
	matches := make([]FieldMatch, 0, len(sourceFields))
	for _, source := range sourceFields {
		if match, ok := m.FindBestMatch(source); ok {
			matches = append(matches, match)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}

// FindBestMatch returns the single best target for a source field, or false
// when nothing clears the threshold.
func (m *FieldMatcher) FindBestMatch(sourceField string) (FieldMatch, bool) {
	best := FieldMatch{SourceField: sourceField}
	found := false
	for _, target := range m.targets {
		score := m.score(sourceField, target)
		if score > m.maxScore {
			continue
		}
		confidence := 1 - score
		if !found || confidence > best.Confidence {
			best.TargetField = target.Name
			best.Confidence = confidence
			found = true
		}
	}
	return best, found
}

// AutoMap builds a source-to-target mapping keeping only matches at or above
// minConfidence. A non-positive minConfidence uses the default threshold.
func (m *FieldMatcher) AutoMap(sourceFields []string, minConfidence float64) map[string]string {
	if minConfidence <= 0 {
		minConfidence = DefaultAutoMapThreshold
	}
	mapping := make(map[string]string)
	for _, match := range m.MatchFields(sourceFields) {
		if match.Confidence < minConfidence {
			continue
		}
		if _, taken := mapping[match.SourceField]; !taken {
			mapping[match.SourceField] = match.TargetField
		}
	}
	return mapping
}

// score computes a similarity score in [0,1] where lower is better. The
// source is compared against both the target's name and label, whole-string
// and token against token, so word order and separators don't dominate.
func (m *FieldMatcher) score(source string, target TargetField) float64 {
	best := 0.0
	for _, candidate := range []string{target.Name, target.Label} {
		if candidate == "" {
			continue
		}
		if sim := fieldSimilarity(source, candidate); sim > best {
			best = sim
		}
	}
	return 1 - best
}

// fieldSimilarity returns the best of whole-string similarity, containment
// and pairwise token similarity between two field names.
func fieldSimilarity(a, b string) float64 {
	na, nb := normalizeHeader(a), normalizeHeader(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	best := levenshtein.Similarity(na, nb, levenshtein.NewParams())
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		if best < 0.9 {
			best = 0.9
		}
	}

	for _, ta := range strings.Split(na, "_") {
		for _, tb := range strings.Split(nb, "_") {
			if ta == "" || tb == "" {
				continue
			}
			sim := levenshtein.Similarity(ta, tb, levenshtein.NewParams())
			if strings.Contains(ta, tb) || strings.Contains(tb, ta) {
				if sim < 0.85 {
					sim = 0.85
				}
			}
			if sim > best {
				best = sim
			}
		}
	}
	return best
}
