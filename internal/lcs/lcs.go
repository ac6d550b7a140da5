// Package lcs scores name similarity with a longest-common-subsequence over
// word boundaries. Sumgen uses it to suggest the intended constructor or field
// name when a directive option misspells one.
package lcs

import (
	"strings"
)

// Similarity returns a score in [0, 1] where 1 means the two names share all
// of their words. Comparison is case-insensitive per word.
func Similarity(a, b string) float64 {
	aw := lower(SplitWords(a))
	bw := lower(SplitWords(b))
	if len(aw) == 0 || len(bw) == 0 {
		return 0
	}

	n := lcsLen(aw, bw)
	return float64(2*n) / float64(len(aw)+len(bw))
}

// Suggest returns the candidate most similar to name, or "" when no candidate
// scores above the threshold. Ties keep the earliest candidate so suggestions
// are deterministic.
func Suggest(name string, candidates []string) string {
	const threshold = 0.5

	best := ""
	bestScore := 0.0
	for _, cand := range candidates {
		if score := Similarity(name, cand); score > bestScore {
			best = cand
			bestScore = score
		}
	}
	if bestScore < threshold {
		return ""
	}
	return best
}

// lcsLen is the classic dynamic-programming longest common subsequence length.
func lcsLen(a, b []string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func lower(words []string) []string {
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	return words
}
