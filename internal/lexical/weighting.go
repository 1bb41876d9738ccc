package lexical

// Frequencies counts occurrences of each stem.
func Frequencies(stems []string) map[string]int {
	freq := make(map[string]int, len(stems))
	for _, s := range stems {
		freq[s]++
	}
	return freq
}

// SignificantCount returns how many keywords repeat, i.e. appear more than
// once. It is the normalization denominator for overlap ratios and must be
// checked for zero before any ratio is computed.
func SignificantCount(freq map[string]int) int {
	count := 0
	for _, n := range freq {
		if n > 1 {
			count++
		}
	}
	return count
}
