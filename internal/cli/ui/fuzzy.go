package ui

import (
	"sort"
	"strings"
)

const (
	// DefaultMaxDistance bounds how far a candidate may be from the target
	// and still be suggested.
	DefaultMaxDistance = 3
	// DefaultMaxSuggestions caps how many candidates are suggested.
	DefaultMaxSuggestions = 3
)

// FuzzyMatchOptions configures FindSimilar. The zero value of a field falls
// back to its default.
type FuzzyMatchOptions struct {
	MaxDistance    int
	MaxSuggestions int
	CaseSensitive  bool
}

// FindSimilar returns the candidates within edit distance of the target,
// closest first. Ties keep candidate order, so suggestions are deterministic.
// A nil opts uses the defaults, matching case-insensitively.
//
// Mistyped target names are the main caller:
//
//	FindSimilar("typescrip", codegen.Targets(), nil) // ["typescript"]
func FindSimilar(target string, candidates []string, opts *FuzzyMatchOptions) []string {
	maxDistance := DefaultMaxDistance
	maxSuggestions := DefaultMaxSuggestions
	caseSensitive := false
	if opts != nil {
		if opts.MaxDistance > 0 {
			maxDistance = opts.MaxDistance
		}
		if opts.MaxSuggestions > 0 {
			maxSuggestions = opts.MaxSuggestions
		}
		caseSensitive = opts.CaseSensitive
	}

	norm := func(s string) string {
		if caseSensitive {
			return s
		}
		return strings.ToLower(s)
	}

	type match struct {
		value    string
		distance int
	}
	var matches []match
	want := norm(target)
	for _, candidate := range candidates {
		if d := levenshtein(want, norm(candidate)); d <= maxDistance {
			matches = append(matches, match{value: candidate, distance: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	result := make([]string, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.value)
	}
	return result
}

// levenshtein computes edit distance with a two-row table. Distances are in
// bytes, which is exact for the ASCII target and candidate names it sees.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = prev[j] + 1 // deletion
			if ins := curr[j-1] + 1; ins < curr[j] {
				curr[j] = ins
			}
			if sub := prev[j-1] + cost; sub < curr[j] {
				curr[j] = sub
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
