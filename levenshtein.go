package gopaginate

import "math"

// closestAlias returns the element of dataSet nearest to input by edit
// distance. Used to hint at misspelled parameter names.
func closestAlias(input string, dataSet []string) string {
	minDist := math.MaxInt
	closest := ""

	for _, alias := range dataSet {
		dist := levenshtein([]rune(alias), []rune(input))
		if dist < minDist {
			minDist = dist
			closest = alias
		}
	}

	return closest
}

func levenshtein(a, b []rune) int {
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
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	return min(a, b, c)
}
