// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fuzz computes similarity scores between normalized titles.
//
// Primary is a weighted composite: the best of a full Levenshtein ratio, a
// sliding-window partial ratio (penalized when the lengths diverge), and a
// word-order-insensitive token-sort ratio. TieBreak is the token-sort ratio
// alone, used by callers only to rank candidates with equal primary scores.
package fuzz

import (
	"math"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Score holds the two similarity metrics for one pair of titles, both 0-100.
type Score struct {
	Primary  int
	TieBreak int
}

// Perfect reports a full match on both metrics.
func (s Score) Perfect() bool { return s.Primary == 100 && s.TieBreak == 100 }

// Compute scores a against b. It is symmetric, returns (100, 100) for equal
// non-empty strings, and (0, 0) when either string is empty. A non-nil error
// means the similarity computation itself failed; callers treat the pair as
// score zero.
func Compute(a, b string) (Score, error) {
	if a == "" || b == "" {
		return Score{}, nil
	}

	tieBreak, err := tokenSortRatio(a, b)
	if err != nil {
		return Score{}, err
	}
	primary, err := weightedRatio(a, b, tieBreak)
	if err != nil {
		return Score{}, err
	}
	return Score{Primary: primary, TieBreak: tieBreak}, nil
}

// ratio is the plain Levenshtein similarity scaled to 0-100.
func ratio(a, b string) (int, error) {
	sim, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0, err
	}
	return int(math.Round(float64(sim) * 100)), nil
}

// tokenSortRatio compares the two strings after sorting each one's words.
func tokenSortRatio(a, b string) (int, error) {
	return ratio(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	fields := strings.Fields(s)
	sort.Strings(fields)
	return strings.Join(fields, " ")
}

// weightedRatio combines the full, partial, and token-sort ratios the way the
// original filter's scorer did: when the strings are of similar length the
// partial ratio is skipped; when they diverge it dominates but is scaled down
// so that a substring hit alone cannot reach a perfect score.
func weightedRatio(a, b string, tokenSort int) (int, error) {
	base, err := ratio(a, b)
	if err != nil {
		return 0, err
	}

	la, lb := len([]rune(a)), len([]rune(b))
	longer, shorter := la, lb
	if lb > la {
		longer, shorter = lb, la
	}

	best := base
	if v := scale(tokenSort, 0.95); v > best {
		best = v
	}

	lenRatio := float64(longer) / float64(shorter)
	if lenRatio >= 1.5 {
		partialScale := 0.9
		if lenRatio > 8 {
			partialScale = 0.6
		}
		if v := scale(partialRatio(a, b), partialScale); v > best {
			best = v
		}
	}
	return best, nil
}

// partialRatio slides the shorter string across the longer one and returns
// the best window similarity.
func partialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	short := string(ra)
	n := len(ra)

	best := 0
	for i := 0; i+n <= len(rb); i++ {
		dist := edlib.LevenshteinDistance(short, string(rb[i:i+n]))
		r := int(math.Round(100 * (1 - float64(dist)/float64(n))))
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

func scale(v int, factor float64) int {
	return int(math.Round(float64(v) * factor))
}
