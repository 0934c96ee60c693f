package textutil

import (
	"sort"
	"strings"
)

// Ratio computes a normalized edit-distance similarity between a and b on a
// 0..100 scale. Identical strings score 100; strings with no characters in
// common score 0.
func Ratio(a, b string) float64 {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	ar := []rune(a)
	br := []rune(b)
	dist := levenshtein(ar, br)
	longer := len(ar)
	if len(br) > longer {
		longer = len(br)
	}
	sim := 1 - float64(dist)/float64(longer)
	if sim < 0 {
		sim = 0
	}
	return sim * 100
}

// TokenSetRatio compares the unique-token sets of a and b, scoring the shared
// tokens against each side's remainder. Word order and duplicate words do not
// affect the score, which makes it suitable for category labels that reorder
// or repeat terms between sources.
func TokenSetRatio(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 100
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var inter, diffA, diffB []string
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			inter = append(inter, tok)
		} else {
			diffA = append(diffA, tok)
		}
	}
	for tok := range tb {
		if _, ok := ta[tok]; !ok {
			diffB = append(diffB, tok)
		}
	}
	sort.Strings(inter)
	sort.Strings(diffA)
	sort.Strings(diffB)

	base := strings.Join(inter, " ")
	fullA := joinNonEmpty(base, strings.Join(diffA, " "))
	fullB := joinNonEmpty(base, strings.Join(diffB, " "))

	best := Ratio(base, fullA)
	if r := Ratio(base, fullB); r > best {
		best = r
	}
	if r := Ratio(fullA, fullB); r > best {
		best = r
	}
	return best
}

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// levenshtein computes the edit distance between two rune slices using a
// two-row rolling buffer.
func levenshtein(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range a {
		curr[0] = i + 1
		for j, cb := range b {
			ins := curr[j] + 1
			del := prev[j+1] + 1
			sub := prev[j]
			if ca != cb {
				sub++
			}
			m := ins
			if del < m {
				m = del
			}
			if sub < m {
				m = sub
			}
			curr[j+1] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
