// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match selects the best catalog entry for each reference title,
// groups multi-part releases, and runs the optional interactive review of
// borderline candidates.
package match

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/pdiddy/dat-filter/internal/fuzz"
	"github.com/pdiddy/dat-filter/internal/titles"
	"github.com/pdiddy/dat-filter/pkg/types"
)

// Candidate pairs a catalog entry with its scores against one reference
// title. Candidates live only for the duration of one selection pass.
type Candidate struct {
	Score fuzz.Score
	Entry types.Entry
}

// Selection accumulates chosen entries keyed by display name, together with
// the reference titles that caused at least one entry to be selected.
// Entries are only ever added, never removed.
type Selection struct {
	entries map[string]types.Entry
	matched types.TitleSet
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{
		entries: make(map[string]types.Entry),
		matched: make(types.TitleSet),
	}
}

// Add inserts an entry. Inserting a display name already present is a no-op;
// the return value reports whether the entry was newly added.
func (s *Selection) Add(e types.Entry) bool {
	if _, ok := s.entries[e.Name]; ok {
		log.Debug().Str("game", e.Name).Msg("entry already selected, coalescing")
		return false
	}
	s.entries[e.Name] = e
	return true
}

// Contains reports whether an entry with the given display name is selected.
func (s *Selection) Contains(name string) bool {
	_, ok := s.entries[name]
	return ok
}

// MarkMatched records that a reference title contributed a selected entry.
func (s *Selection) MarkMatched(title string) {
	s.matched.Add(title)
}

// Matched returns the set of reference titles that produced a selection.
func (s *Selection) Matched() types.TitleSet {
	return s.matched
}

// Len returns the number of selected entries.
func (s *Selection) Len() int {
	return len(s.entries)
}

// Names returns the selected display names in lexicographic order.
func (s *Selection) Names() []string {
	out := make([]string, 0, len(s.entries))
	for n := range s.entries {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Filter returns the subset of entries that are selected, preserving the
// given order. Duplicate display names collapse to the first occurrence, so
// the output catalog never carries two entries with the same name.
func (s *Selection) Filter(entries []types.Entry) []types.Entry {
	var out []types.Entry
	emitted := make(map[string]bool, len(s.entries))
	for _, e := range entries {
		if s.Contains(e.Name) && !emitted[e.Name] {
			out = append(out, e)
			emitted[e.Name] = true
		}
	}
	return out
}

// siblingParts returns the candidates from pool that are further parts of
// the chosen entry's multi-part bundle: the chosen name must carry a part-1
// marker, and a sibling must carry any part marker with the same base name.
func siblingParts(chosen types.Entry, pool []Candidate) []Candidate {
	if !titles.IsFirstPart(chosen.Name) {
		return nil
	}
	base := titles.BaseName(chosen.Name)
	var siblings []Candidate
	for _, c := range pool {
		if c.Entry.Name == chosen.Name {
			continue
		}
		if titles.IsAnyPart(c.Entry.Name) && titles.BaseName(c.Entry.Name) == base {
			siblings = append(siblings, c)
		}
	}
	return siblings
}
