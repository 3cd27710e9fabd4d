// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter orchestrates the full pipeline: parse the input catalog,
// acquire reference titles, select matching entries, optionally review
// borderline candidates, and write the filtered catalog plus reports.
package filter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/pdiddy/dat-filter/internal/dat"
	"github.com/pdiddy/dat-filter/internal/httputil"
	"github.com/pdiddy/dat-filter/internal/match"
	"github.com/pdiddy/dat-filter/internal/report"
	"github.com/pdiddy/dat-filter/internal/scrape"
	"github.com/pdiddy/dat-filter/pkg/types"
)

// Options configures one pipeline run.
type Options struct {
	// InputPath is the catalog to filter. Required.
	InputPath string

	// OutputPath receives the filtered catalog. Empty means
	// DefaultOutputPath(InputPath).
	OutputPath string

	// SourceURLs are the recommendation pages to scrape. Ignored when
	// TitlesFile is set.
	SourceURLs []string

	// TitlesFile reloads a previously saved scrape instead of fetching.
	TitlesFile string

	Scrape types.ScrapeConfig
	Match  types.MatchConfig

	// Port handles interactive review. Required when Match.Review is set.
	Port match.Port

	// Client overrides the HTTP client built from Scrape's settings.
	Client *http.Client

	// ShowProgress draws progress bars on stderr during scraping and scoring.
	ShowProgress bool

	// Out receives the final summary; os.Stdout when nil.
	Out io.Writer

	// Version is stamped into the output header.
	Version string
}

// Stats records the counts of a completed run.
type Stats struct {
	OutputPath string

	OriginalGames int
	KeptGames     int

	TotalTitles     int
	MatchedTitles   int
	UnmatchedTitles int

	Reviewed        int
	ManuallyMatched int

	SourceTitles  map[string]int
	FailedSources []string
	CSVFiles      []string
}

// DefaultOutputPath places the filtered catalog beside the input with a
// "_filtered" suffix before the extension.
func DefaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_filtered" + ext
}

// Run executes the pipeline. A missing or malformed input catalog and an
// unwritable output are fatal; per-source fetch failures and per-file CSV
// errors are logged and tolerated.
func Run(ctx context.Context, opts Options) (*Stats, error) {
	if opts.OutputPath == "" {
		opts.OutputPath = DefaultOutputPath(opts.InputPath)
	}

	catalog, err := dat.Parse(opts.InputPath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("file", opts.InputPath).Int("games", len(catalog.Entries)).Msg("parsed input catalog")

	titles, err := acquireTitles(ctx, opts)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		OutputPath:    opts.OutputPath,
		OriginalGames: len(catalog.Entries),
		TotalTitles:   len(titles.All),
		SourceTitles:  make(map[string]int, len(titles.BySource)),
		FailedSources: titles.Failed,
	}
	for url, set := range titles.BySource {
		stats.SourceTitles[url] = len(set)
	}

	index := match.BuildIndex(catalog.Entries)

	var progress func()
	if opts.ShowProgress && len(titles.All) > 0 {
		bar := progressbar.NewOptions(len(catalog.Entries),
			progressbar.OptionSetDescription("scoring"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
		)
		progress = func() { _ = bar.Add(1) }
	}
	sel := match.SelectBest(catalog.Entries, index, titles.All, opts.Match.Threshold, progress)

	if opts.Match.Review {
		unmatched := titles.All.Minus(sel.Matched())
		if len(unmatched) > 0 {
			if opts.Port == nil {
				return nil, fmt.Errorf("review enabled but no interaction port configured")
			}
			result := match.Review(catalog.Entries, index, sel, titles.All, opts.Match.ReviewThreshold, opts.Port)
			stats.Reviewed = result.Reviewed
			stats.ManuallyMatched = result.ManuallyMatched
		}
	}

	kept := sel.Filter(catalog.Entries)
	stats.KeptGames = len(kept)
	stats.MatchedTitles = len(sel.Matched())
	stats.UnmatchedTitles = stats.TotalTitles - stats.MatchedTitles

	header := dat.RewriteHeader(catalog.Header, dat.Provenance{
		Version:  opts.Version,
		Author:   "dat-filter",
		Homepage: "https://github.com/pdiddy/dat-filter",
		Date:     time.Now(),
	})
	if err := dat.Write(opts.OutputPath, header, kept); err != nil {
		return nil, err
	}
	log.Info().Str("file", opts.OutputPath).Int("games", len(kept)).Msg("wrote filtered catalog")

	confirmWrite(opts.OutputPath, len(kept))
	stats.CSVFiles = writeReports(opts.OutputPath, titles, sel.Matched())

	renderSummary(opts, stats)
	return stats, nil
}

// acquireTitles loads the reference titles from a saved titles file or by
// scraping the configured sources.
func acquireTitles(ctx context.Context, opts Options) (scrape.Output, error) {
	if opts.TitlesFile != "" {
		out, err := scrape.ReadTitlesFile(opts.TitlesFile)
		if err != nil {
			return scrape.Output{}, err
		}
		log.Info().Str("file", opts.TitlesFile).Int("titles", len(out.All)).Msg("loaded saved titles")
		return out, nil
	}

	client := opts.Client
	if client == nil {
		client = httputil.NewClient(opts.Scrape.HTTPConfig)
	}
	urls := scrape.ExpandVariants(opts.SourceURLs, opts.Scrape.IncludeHomebrew, opts.Scrape.IncludeJapan)

	var progress func(url string)
	if opts.ShowProgress {
		bar := progressbar.NewOptions(len(urls),
			progressbar.OptionSetDescription("fetching"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
		)
		progress = func(string) { _ = bar.Add(1) }
	}
	return scrape.FetchAll(ctx, client, urls, opts.Scrape, progress), nil
}

// confirmWrite re-parses the written catalog and compares the game count
// against the selection. A mismatch is logged, never fatal.
func confirmWrite(path string, want int) {
	got, err := dat.CountGames(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("could not re-read output catalog for confirmation")
		return
	}
	if got != want {
		log.Warn().Int("written", want).Int("reread", got).Str("file", path).
			Msg("output catalog game count does not match the selection")
		return
	}
	log.Info().Int("games", got).Msg("output catalog confirmed")
}

// writeReports emits one CSV per source that still has unmatched titles,
// next to the output catalog. Failures are per-file and tolerated.
func writeReports(outputPath string, titles scrape.Output, matched types.TitleSet) []string {
	dir := filepath.Dir(outputPath)

	urls := make([]string, 0, len(titles.BySource))
	for u := range titles.BySource {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	var written []string
	for i, url := range urls {
		unmatched := titles.BySource[url].Minus(matched).Sorted()
		if len(unmatched) == 0 {
			continue
		}
		name, err := report.WriteUnmatchedCSV(dir, url, unmatched, i+1)
		if err != nil {
			log.Error().Err(err).Str("url", url).Msg("failed to write unmatched report")
			continue
		}
		written = append(written, name)
	}
	return written
}

func renderSummary(opts Options, stats *Stats) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	report.Summary{
		InputPath:       opts.InputPath,
		OutputPath:      stats.OutputPath,
		OriginalGames:   stats.OriginalGames,
		KeptGames:       stats.KeptGames,
		RemovedGames:    stats.OriginalGames - stats.KeptGames,
		SourceTitles:    stats.SourceTitles,
		FailedSources:   stats.FailedSources,
		TotalTitles:     stats.TotalTitles,
		MatchedTitles:   stats.MatchedTitles,
		UnmatchedTitles: stats.UnmatchedTitles,
		Threshold:       opts.Match.Threshold,
		ReviewEnabled:   opts.Match.Review,
		ReviewThreshold: opts.Match.ReviewThreshold,
		Reviewed:        stats.Reviewed,
		ManuallyMatched: stats.ManuallyMatched,
		CSVFiles:        stats.CSVFiles,
	}.Render(out)
}
