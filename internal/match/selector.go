// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/pdiddy/dat-filter/internal/fuzz"
	"github.com/pdiddy/dat-filter/internal/titles"
	"github.com/pdiddy/dat-filter/pkg/types"
)

// BuildIndex normalizes every entry's display name once. Entries whose
// normalization is empty (names made entirely of tags and punctuation) are
// left out and never scored.
func BuildIndex(entries []types.Entry) map[string]string {
	index := make(map[string]string, len(entries))
	for _, e := range entries {
		if n := titles.Normalize(e.Name); n != "" {
			index[e.Name] = n
		}
	}
	return index
}

// SelectBest runs the automatic matching stage: every entry is scored
// against every reference title, candidates at or above threshold are kept,
// and for each reference title exactly one best entry (plus any multi-part
// siblings) is selected. progress, when non-nil, is called once per entry.
func SelectBest(entries []types.Entry, index map[string]string, refTitles types.TitleSet, threshold int, progress func()) *Selection {
	perTitle := scanCandidates(entries, index, refTitles, threshold, progress)
	log.Info().Int("titles", len(perTitle)).Msg("found high-scoring potential matches")

	sel := NewSelection()
	for _, title := range sortedTitleKeys(perTitle) {
		candidates := perTitle[title]
		sortCandidates(candidates)

		best := candidates[0]
		log.Debug().
			Str("title", title).
			Str("game", best.Entry.Name).
			Int("primary", best.Score.Primary).
			Int("tiebreak", best.Score.TieBreak).
			Msg("best automatic match")

		keep := []types.Entry{best.Entry}
		for _, sib := range siblingParts(best.Entry, candidates[1:]) {
			log.Debug().Str("game", sib.Entry.Name).Msg("also selecting multi-part sibling")
			keep = append(keep, sib.Entry)
		}

		for _, e := range keep {
			sel.Add(e)
		}
		// The title is matched whether its entries were newly added or had
		// already been selected for another title.
		sel.MarkMatched(title)
	}

	log.Info().Int("games", sel.Len()).Msg("automatic best-match selection complete")
	return sel
}

// scanCandidates scores the entry × title cross product and groups the pairs
// meeting the threshold by reference title. A failing similarity computation
// is logged and treated as no match for that pair only.
func scanCandidates(entries []types.Entry, index map[string]string, refTitles types.TitleSet, threshold int, progress func()) map[string][]Candidate {
	perTitle := make(map[string][]Candidate)
	for _, e := range entries {
		normalized, ok := index[e.Name]
		if ok {
			for title := range refTitles {
				score, err := fuzz.Compute(normalized, title)
				if err != nil {
					log.Error().Err(err).Str("game", e.Name).Str("title", title).Msg("similarity computation failed")
					continue
				}
				if score.Primary >= threshold {
					perTitle[title] = append(perTitle[title], Candidate{Score: score, Entry: e})
				}
			}
		}
		if progress != nil {
			progress()
		}
	}
	return perTitle
}

// sortCandidates orders candidates best-first: primary score, then tie-break
// score, then display name so the result is deterministic for a fixed input.
func sortCandidates(cs []Candidate) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Score.Primary != cs[j].Score.Primary {
			return cs[i].Score.Primary > cs[j].Score.Primary
		}
		if cs[i].Score.TieBreak != cs[j].Score.TieBreak {
			return cs[i].Score.TieBreak > cs[j].Score.TieBreak
		}
		return cs[i].Entry.Name < cs[j].Entry.Name
	})
}

func sortedTitleKeys(m map[string][]Candidate) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
