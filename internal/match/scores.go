package match

import (
	"errors"
	"fmt"
	"strings"

	"garland/internal/textutil"
)

// Sentinel errors for the non-ambiguity failure classes. Ambiguous bijections
// surface as *AmbiguityError instead.
var (
	// ErrAlignment marks film/detail count mismatches and other positional
	// invariant violations.
	ErrAlignment = errors.New("alignment error")
	// ErrResolution marks an empty external identifier after all fallbacks.
	ErrResolution = errors.New("resolution error")
)

// Contested identifies one list entry involved in an unresolved match.
type Contested struct {
	Index int
	Value string
}

// AmbiguityError reports a failed bijection: every right-side entry that
// received zero or multiple claimants, together with the left-side entries
// contesting them. The fix belongs in the override tables, not here.
type AmbiguityError struct {
	Left  []Contested
	Right []Contested
}

func (e *AmbiguityError) Error() string {
	var b strings.Builder
	b.WriteString("failed to match items:")
	for _, c := range e.Left {
		fmt.Fprintf(&b, " official[%d]=%q", c.Index, c.Value)
	}
	for _, c := range e.Right {
		fmt.Fprintf(&b, " imdb[%d]=%q", c.Index, c.Value)
	}
	return b.String()
}

// FromScores resolves a bijective mapping from left indices to right indices
// given a len(left) x len(right) similarity matrix. Each row claims its
// argmax column; any column left unclaimed or claimed more than once makes
// the whole resolution fail with an AmbiguityError. There is no second-best
// fallback.
func FromScores(left, right []string, matrix [][]float64) (map[int]int, error) {
	matches := make(map[int]int, len(left))
	claims := make([][]int, len(right))

	for i, row := range matrix {
		best := 0
		for j := 1; j < len(row); j++ {
			if row[j] > row[best] {
				best = j
			}
		}
		matches[i] = best
		claims[best] = append(claims[best], i)
	}

	var amb AmbiguityError
	for j := range right {
		switch len(claims[j]) {
		case 1:
		case 0:
			amb.Right = append(amb.Right, Contested{Index: j, Value: right[j]})
		default:
			amb.Right = append(amb.Right, Contested{Index: j, Value: right[j]})
			for _, i := range claims[j] {
				amb.Left = append(amb.Left, Contested{Index: i, Value: left[i]})
			}
		}
	}
	if len(amb.Left) > 0 || len(amb.Right) > 0 {
		return nil, &amb
	}
	return matches, nil
}

// scoreMatrix computes the full pairwise similarity matrix.
func scoreMatrix(left, right []string, score func(a, b string) float64) [][]float64 {
	matrix := make([][]float64, len(left))
	for i, a := range left {
		row := make([]float64, len(right))
		for j, b := range right {
			row[j] = score(a, b)
		}
		matrix[i] = row
	}
	return matrix
}

// matchStrings scores and resolves two lists in one step. The lists must be
// the same length; a size mismatch is a data defect on par with ambiguity
// and aborts the edition.
func matchStrings(left, right []string, score func(a, b string) float64) (map[int]int, error) {
	if len(left) != len(right) {
		return nil, fmt.Errorf("%w: official has %d entries, imdb has %d: %v vs %v",
			ErrAlignment, len(left), len(right), left, right)
	}
	return FromScores(left, right, scoreMatrix(left, right, score))
}

// ratioFolded scores plain edit similarity on diacritic-folded input.
func ratioFolded(a, b string) float64 {
	return textutil.Ratio(textutil.Fold(a), textutil.Fold(b))
}

// categoryScore scores normalized category labels order-insensitively.
func categoryScore(a, b string) float64 {
	return textutil.TokenSetRatio(textutil.Fold(normalizeCategory(a)), textutil.Fold(normalizeCategory(b)))
}
