package match

import (
	"slices"
	"strings"
)

// DefaultMinScore is the minimum similarity for a candidate to be suggested.
const DefaultMinScore = 0.7

// Candidate is a known path scored against a path that matched nothing.
type Candidate struct {
	Path  string
	Score float64
}

// CandidateList is a list of candidates, best first.
type CandidateList []Candidate

// RankCandidates scores every candidate path, and every dotted prefix of
// one, against path. The result is sorted by score (descending), then by path
// for determinism. Candidates equal to path are skipped.
func RankCandidates(path string, candidates []string) CandidateList {
	seen := make(map[string]struct{}, len(candidates))

	var list CandidateList

	for _, c := range candidates {
		for _, p := range prefixes(c) {
			if p == path {
				continue
			}

			if _, ok := seen[p]; ok {
				continue
			}

			seen[p] = struct{}{}
			list = append(list, Candidate{Path: p, Score: PathSimilarity(path, p)})
		}
	}

	slices.SortFunc(list, func(a, b Candidate) int {
		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}

			return 1
		}

		return strings.Compare(a.Path, b.Path)
	})

	return list
}

// prefixes returns "a", "a.b", "a.b.c" for "a.b.c".
func prefixes(path string) []string {
	var result []string

	for i, r := range path {
		if r == '.' {
			result = append(result, path[:i])
		}
	}

	return append(result, path)
}

// AboveThreshold returns the candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// Top returns the first n candidates, or nil when n is not positive.
func (c CandidateList) Top(n int) CandidateList {
	if n <= 0 {
		return nil
	}

	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Paths returns the candidate paths in order.
func (c CandidateList) Paths() []string {
	paths := make([]string, len(c))
	for i, cand := range c {
		paths[i] = cand.Path
	}

	return paths
}

// Suggest returns up to limit candidate paths that resemble path closely
// enough to be offered as a correction.
func Suggest(path string, candidates []string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	ranked := RankCandidates(path, candidates).AboveThreshold(DefaultMinScore)
	if len(ranked) == 0 {
		return nil
	}

	return ranked.Top(limit).Paths()
}
