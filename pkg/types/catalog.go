// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "sort"

// Entry is one catalog record from the input DAT. Name is the only field the
// matching stages read; Raw preserves the serialized <game> element so the
// payload round-trips verbatim into the output file.
type Entry struct {
	Name string
	Raw  []byte
}

// TitleSet is a set of normalized reference titles.
type TitleSet map[string]struct{}

// NewTitleSet builds a set from the given titles.
func NewTitleSet(titles ...string) TitleSet {
	s := make(TitleSet, len(titles))
	for _, t := range titles {
		s.Add(t)
	}
	return s
}

// Add inserts a title into the set. Empty titles are ignored.
func (s TitleSet) Add(title string) {
	if title == "" {
		return
	}
	s[title] = struct{}{}
}

// Contains reports whether title is in the set.
func (s TitleSet) Contains(title string) bool {
	_, ok := s[title]
	return ok
}

// AddAll inserts every title from other.
func (s TitleSet) AddAll(other TitleSet) {
	for t := range other {
		s[t] = struct{}{}
	}
}

// Minus returns the titles in s that are not in other.
func (s TitleSet) Minus(other TitleSet) TitleSet {
	out := make(TitleSet)
	for t := range s {
		if !other.Contains(t) {
			out[t] = struct{}{}
		}
	}
	return out
}

// Intersect returns the titles present in both sets.
func (s TitleSet) Intersect(other TitleSet) TitleSet {
	out := make(TitleSet)
	for t := range s {
		if other.Contains(t) {
			out[t] = struct{}{}
		}
	}
	return out
}

// Sorted returns the titles in lexicographic order.
func (s TitleSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
