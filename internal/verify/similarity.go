package verify

import (
	"strings"

	"github.com/arbovm/levenshtein"
)

// Similarity returns a 0-100 similarity percentage between two strings using
// the Ratcliff/Obershelp ratio: 2*M/T where M is the total length of all
// recursively-found matching blocks and T the combined length. Inputs are
// trimmed and case-folded first; any empty side scores 0. The metric is
// symmetric and returns exactly 100 for strings equal after normalization.
func Similarity(a, b string) float64 {
	a = normalize(a)
	b = normalize(b)
	if a == "" || b == "" {
		return 0.0
	}
	matched := matchedLength(a, b, 0, len(a), 0, len(b))
	return 2.0 * float64(matched) / float64(len(a)+len(b)) * 100.0
}

// EditDistance is the Levenshtein distance between the normalized forms,
// reported as a diagnostic alongside the ratio.
func EditDistance(a, b string) int {
	return levenshtein.Distance(normalize(a), normalize(b))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matchedLength sums the longest matching block in a[alo:ahi] vs b[blo:bhi]
// plus, recursively, the matches to its left and right.
func matchedLength(a, b string, alo, ahi, blo, bhi int) int {
	i, j, k := longestMatch(a, b, alo, ahi, blo, bhi)
	if k == 0 {
		return 0
	}
	return k +
		matchedLength(a, b, alo, i, blo, j) +
		matchedLength(a, b, i+k, ahi, j+k, bhi)
}

// longestMatch finds the earliest longest common substring between the two
// ranges, scanning rows of a against column positions of b.
func longestMatch(a, b string, alo, ahi, blo, bhi int) (besti, bestj, bestk int) {
	besti, bestj = alo, blo
	j2len := make(map[int]int)

	for i := alo; i < ahi; i++ {
		newJ2len := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if a[i] == b[j] {
				k := j2len[j-1] + 1
				newJ2len[j] = k
				if k > bestk {
					besti = i - k + 1
					bestj = j - k + 1
					bestk = k
				}
			}
		}
		j2len = newJ2len
	}
	return besti, bestj, bestk
}
