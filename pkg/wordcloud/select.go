package wordcloud

import "slices"

// SelectWords ranks words by weight descending and truncates the result to
// the first maxWords entries. Ties keep their original relative order. The
// input slice is never mutated; the result is always a fresh slice.
// maxWords < 0 is treated as 0.
func SelectWords(words []Word, maxWords int) []Word {
	if maxWords < 0 {
		maxWords = 0
	}

	sorted := slices.Clone(words)
	slices.SortStableFunc(sorted, func(a, b Word) int {
		switch {
		case a.Value > b.Value:
			return -1
		case a.Value < b.Value:
			return 1
		default:
			return 0
		}
	})

	if len(sorted) > maxWords {
		sorted = sorted[:maxWords]
	}
	return sorted
}
