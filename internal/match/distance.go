package match

// Distance computes the edit distance between two strings: the minimum number
// of single-rune insertions, deletions, substitutions or swaps of two
// adjacent runes turning one into the other (optimal string alignment).
// Swaps count as one edit so "titel" is one edit away from "title".
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	// Three rows: the transposition step looks two rows back.
	prev2 := make([]int, len(ra)+1)
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)

			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				curr[i] = min(curr[i], prev2[i-2]+1)
			}
		}

		prev2, prev, curr = prev, curr, prev2
	}

	return prev[len(ra)]
}

// Similarity returns 1 - distance/max(len(a), len(b)) in runes: 1.0 for
// identical strings, 0.0 for strings sharing nothing.
func Similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(Distance(a, b))/float64(longest)
}

// PathSimilarity compares two dotted paths after normalizing them.
func PathSimilarity(a, b string) float64 {
	return Similarity(NormalizePath(a), NormalizePath(b))
}
