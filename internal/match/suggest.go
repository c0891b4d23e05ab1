package match

import (
	"sort"

	"beankit/internal/naming"
)

const (
	// MinSimilarity is the score a candidate needs to be suggested.
	MinSimilarity = 0.6
	// MaxSuggestions caps the number of names Suggest returns.
	MaxSuggestions = 3
)

type scored struct {
	name  string
	score float64
}

// Suggest returns up to MaxSuggestions candidates that look like name,
// best first. Names are compared after naming.Normalize, so "order_id"
// suggests "orderID".
func Suggest(name string, candidates []string) []string {
	norm := naming.Normalize(name)

	var hits []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		score := Similarity(norm, naming.Normalize(c))
		if score >= MinSimilarity {
			hits = append(hits, scored{name: c, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}

		return hits[i].name < hits[j].name
	})

	out := make([]string, 0, min(len(hits), MaxSuggestions))
	for _, h := range hits[:min(len(hits), MaxSuggestions)] {
		out = append(out, h.name)
	}

	return out
}

// Find returns the candidate whose normalized form equals the normalized
// form of name, preferring an exact match.
func Find(name string, candidates []string) (string, bool) {
	norm := naming.Normalize(name)

	found, ok := "", false

	for _, c := range candidates {
		if c == name {
			return c, true
		}

		if !ok && naming.Normalize(c) == norm {
			found, ok = c, true
		}
	}

	return found, ok
}
