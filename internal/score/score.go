// Package score reads the embedded aesthetic score out of collected fields.
package score

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/simonhull/imagescore/internal/types"
)

// tagNames are the normalized tag spellings that carry a score.
var tagNames = []string{"aesthetic score", "aestheticscore"}

// Extract returns the score held by the first aesthetic-score field in
// fields, which callers pass in sorted order. ok is false when no such
// field exists or its value contains no finite number.
func Extract(fields []types.Field) (score float64, ok bool) {
	for _, f := range fields {
		if !IsScoreTag(f.Tag) {
			continue
		}
		return ParseValue(f.Value)
	}
	return 0, false
}

// IsScoreTag reports whether tag names an aesthetic score. Matching is
// case-insensitive and treats '_' and '-' as spaces.
func IsScoreTag(tag string) bool {
	norm := strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return ' '
		}
		return r
	}, tag)
	norm = strings.TrimSpace(cases.Fold().String(norm))
	return slices.Contains(tagNames, norm)
}

// ParseValue returns the first finite number in a free-form value such as
// "Score: 0.82/1.0". Tokens are runs of ASCII digits, '.', '+' and '-'.
func ParseValue(value string) (float64, bool) {
	tokens := strings.FieldsFunc(value, func(r rune) bool {
		return !isNumeric(r)
	})
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		return v, true
	}
	return 0, false
}

func isNumeric(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.' || r == '+' || r == '-'
}
