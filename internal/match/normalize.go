package match

import (
	"sort"
	"strings"
	"unicode"
)

// Normalize lowercases s and drops separators, so "Float_64", "float-64"
// and "float64" compare equal.
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// DefaultMinScore is the similarity below which Closest drops candidates.
const DefaultMinScore = 0.5

type scored struct {
	name  string
	score float64
}

// Closest returns up to n candidates most similar to input, best first.
// Candidates scoring below minScore are dropped; ties keep candidate order.
func Closest(input string, candidates []string, n int, minScore float64) []string {
	norm := Normalize(input)

	ranked := make([]scored, 0, len(candidates))

	for _, c := range candidates {
		s := Similarity(norm, Normalize(c))
		if s < minScore {
			continue
		}

		ranked = append(ranked, scored{name: c, score: s})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.name)
	}

	return out
}
