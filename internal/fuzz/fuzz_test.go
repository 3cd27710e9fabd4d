// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fuzz

import "testing"

func TestComputeSelfSimilarity(t *testing.T) {
	for _, s := range []string{"a", "super game", "final quest ii"} {
		got, err := Compute(s, s)
		if err != nil {
			t.Fatalf("Compute(%q, %q): %v", s, s, err)
		}
		if !got.Perfect() {
			t.Errorf("Compute(%q, %q) = %+v, want (100, 100)", s, s, got)
		}
	}
}

func TestComputeSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"super game", "game super"},
		{"sonic the hedgehog", "sonic hedgehog"},
		{"alpha", "omega zone"},
		{"short", "a very much longer candidate string"},
	}
	for _, p := range pairs {
		ab, err := Compute(p[0], p[1])
		if err != nil {
			t.Fatalf("Compute(%q, %q): %v", p[0], p[1], err)
		}
		ba, err := Compute(p[1], p[0])
		if err != nil {
			t.Fatalf("Compute(%q, %q): %v", p[1], p[0], err)
		}
		if ab.Primary != ba.Primary {
			t.Errorf("primary not symmetric for %q/%q: %d vs %d", p[0], p[1], ab.Primary, ba.Primary)
		}
		if ab.TieBreak != ba.TieBreak {
			t.Errorf("tie-break not symmetric for %q/%q: %d vs %d", p[0], p[1], ab.TieBreak, ba.TieBreak)
		}
	}
}

func TestComputeEmptyInput(t *testing.T) {
	for _, p := range [][2]string{{"", "x"}, {"x", ""}, {"", ""}} {
		got, err := Compute(p[0], p[1])
		if err != nil {
			t.Fatalf("Compute(%q, %q): %v", p[0], p[1], err)
		}
		if got.Primary != 0 || got.TieBreak != 0 {
			t.Errorf("Compute(%q, %q) = %+v, want zero score", p[0], p[1], got)
		}
	}
}

func TestComputeDisjointStrings(t *testing.T) {
	got, err := Compute("aaaa", "zzzz")
	if err != nil {
		t.Fatal(err)
	}
	if got.Primary != 0 {
		t.Errorf("primary = %d, want 0 for disjoint equal-length strings", got.Primary)
	}
}

func TestTokenSortIgnoresWordOrder(t *testing.T) {
	got, err := Compute("legend of the ancients", "ancients of the legend")
	if err != nil {
		t.Fatal(err)
	}
	if got.TieBreak != 100 {
		t.Errorf("tie-break = %d, want 100 for reordered words", got.TieBreak)
	}
	if got.Primary < 95 {
		t.Errorf("primary = %d, want >= 95: token-sort feeds the composite", got.Primary)
	}
}

func TestWeightedRatioRewardsSubstring(t *testing.T) {
	// The shorter title appears verbatim inside the longer one; the partial
	// ratio should lift the score well above the plain ratio.
	short := "super game"
	long := "super game the totally definitive collection"

	plain, err := ratio(short, long)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Compute(short, long)
	if err != nil {
		t.Fatal(err)
	}
	if got.Primary <= plain {
		t.Errorf("primary = %d, want > plain ratio %d", got.Primary, plain)
	}
	if got.Primary == 100 {
		t.Error("primary = 100: substring hit must stay penalized below a perfect score")
	}
}

func TestPartialRatioExactWindow(t *testing.T) {
	if got := partialRatio("game", "mega game pack"); got != 100 {
		t.Errorf("partialRatio = %d, want 100 for an exact window", got)
	}
}

func TestScoreRange(t *testing.T) {
	pairs := [][2]string{
		{"a", "b"},
		{"super game", "super game 2"},
		{"x", "a much longer string than the first"},
		{"identical", "identical"},
	}
	for _, p := range pairs {
		got, err := Compute(p[0], p[1])
		if err != nil {
			t.Fatal(err)
		}
		if got.Primary < 0 || got.Primary > 100 || got.TieBreak < 0 || got.TieBreak > 100 {
			t.Errorf("Compute(%q, %q) = %+v, out of [0,100]", p[0], p[1], got)
		}
	}
}
