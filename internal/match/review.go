// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"errors"
	"io"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/pdiddy/dat-filter/internal/fuzz"
	"github.com/pdiddy/dat-filter/pkg/types"
)

// Skip is returned by a Port to leave the current reference title unmatched.
const Skip = -1

// Port presents ranked candidates for one reference title and returns the
// index of the chosen candidate, Skip, or io.EOF when the interaction
// channel ended and all remaining titles should be left unmatched.
type Port interface {
	Choose(title string, candidates []Candidate) (int, error)
}

// ReviewResult summarizes an interactive review run.
type ReviewResult struct {
	Reviewed        int // titles that produced a candidate list
	ManuallyMatched int // titles resolved by a selection
}

// Review walks the reference titles left unmatched by SelectBest in
// lexicographic order and offers candidates drawn from the entries not yet
// selected. A candidate must meet lowThreshold on both scores, a stricter
// filter than the automatic stage's primary-only cutoff. Accepted entries
// (with their multi-part siblings, drawn from the displayed list) join the
// selection and leave the discard pool immediately, so review is strictly
// serial: nothing already committed is ever offered again.
func Review(entries []types.Entry, index map[string]string, sel *Selection, allTitles types.TitleSet, lowThreshold int, port Port) ReviewResult {
	var result ReviewResult

	toReview := allTitles.Minus(sel.Matched()).Sorted()
	log.Info().Int("titles", len(toReview)).Msg("starting interactive review")
	if len(toReview) == 0 {
		return result
	}

	discarded := make(map[string]types.Entry)
	for _, e := range entries {
		if !sel.Contains(e.Name) {
			discarded[e.Name] = e
		}
	}
	log.Info().Int("games", len(discarded)).Msg("comparing against discarded games")

	for _, title := range toReview {
		candidates := reviewCandidates(title, discarded, index, lowThreshold)
		if len(candidates) == 0 {
			log.Info().Str("title", title).Int("threshold", lowThreshold).
				Msg("no candidate passed both score filters, skipping review")
			continue
		}
		result.Reviewed++

		choice, err := port.Choose(title, candidates)
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Warn().Msg("interaction channel closed, aborting remaining review titles")
				return result
			}
			log.Error().Err(err).Str("title", title).Msg("review interaction failed, skipping title")
			continue
		}
		if choice == Skip {
			log.Info().Str("title", title).Msg("skipped during review")
			continue
		}

		chosen := candidates[choice]
		log.Info().
			Str("title", title).
			Str("game", chosen.Entry.Name).
			Int("primary", chosen.Score.Primary).
			Msg("manually selected")

		accepted := []types.Entry{chosen.Entry}
		for _, sib := range siblingParts(chosen.Entry, candidates) {
			log.Info().Str("game", sib.Entry.Name).Msg("automatically adding multi-part sibling")
			accepted = append(accepted, sib.Entry)
		}
		for _, e := range accepted {
			sel.Add(e)
			delete(discarded, e.Name)
		}
		sel.MarkMatched(title)
		result.ManuallyMatched++
	}

	log.Info().
		Int("reviewed", result.Reviewed).
		Int("matched", result.ManuallyMatched).
		Msg("interactive review complete")
	return result
}

// reviewCandidates scores one title against the discard pool, keeping only
// candidates that pass lowThreshold on both metrics, ranked best-first.
func reviewCandidates(title string, discarded map[string]types.Entry, index map[string]string, lowThreshold int) []Candidate {
	var candidates []Candidate
	for _, name := range sortedEntryKeys(discarded) {
		normalized, ok := index[name]
		if !ok {
			continue
		}
		score, err := fuzz.Compute(normalized, title)
		if err != nil {
			log.Error().Err(err).Str("game", name).Str("title", title).Msg("similarity computation failed")
			continue
		}
		if score.Primary >= lowThreshold && score.TieBreak >= lowThreshold {
			candidates = append(candidates, Candidate{Score: score, Entry: discarded[name]})
		}
	}
	sortCandidates(candidates)
	return candidates
}

func sortedEntryKeys(m map[string]types.Entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
