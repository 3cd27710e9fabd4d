// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape fetches recommendation pages and extracts normalized
// reference titles from their wikitable markup.
package scrape

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/pdiddy/dat-filter/internal/httputil"
	"github.com/pdiddy/dat-filter/internal/titles"
	"github.com/pdiddy/dat-filter/pkg/types"
)

// Output aggregates the titles extracted from every reachable source.
type Output struct {
	// All is the union of titles across all successfully fetched sources.
	All types.TitleSet

	// BySource maps each successfully fetched source URL to its own titles.
	// A source that fetched fine but yielded nothing maps to an empty set.
	BySource map[string]types.TitleSet

	// Failed lists sources whose fetch or parse failed, in input order.
	Failed []string
}

// FetchAll fetches every source URL once, in order, and merges the extracted
// titles. A failing source is logged and recorded in Failed; it never aborts
// the run. Duplicate URLs are fetched once. progress, when non-nil, is called
// after each source.
func FetchAll(ctx context.Context, client *http.Client, urls []string, cfg types.ScrapeConfig, progress func(url string)) Output {
	out := Output{
		All:      make(types.TitleSet),
		BySource: make(map[string]types.TitleSet),
	}
	if len(urls) == 0 {
		log.Error().Msg("no source URLs provided for fetching")
		return out
	}

	userAgent := httputil.UserAgent(cfg.HTTPConfig)
	seen := make(map[string]bool)

	log.Info().Int("sources", len(urls)).Msg("starting web scrape")
	for _, url := range urls {
		if seen[url] {
			log.Debug().Str("url", url).Msg("skipping already processed source")
			continue
		}
		seen[url] = true

		found, err := fetchOne(ctx, client, url, userAgent)
		if err != nil {
			if errors.Is(err, httputil.ErrNotFound) {
				log.Warn().Str("url", url).Msg("source not found (404), skipping")
			} else {
				log.Error().Err(err).Str("url", url).Msg("source fetch failed, no titles added")
			}
			out.Failed = append(out.Failed, url)
		} else {
			out.BySource[url] = found
			out.All.AddAll(found)
			if len(found) == 0 {
				log.Info().Str("url", url).Msg("fetch succeeded but no titles were extracted")
			} else {
				log.Info().Str("url", url).Int("titles", len(found)).Msg("extracted titles")
			}
		}

		if progress != nil {
			progress(url)
		}
	}

	if len(out.All) == 0 {
		log.Warn().Msg("no recommended titles found in any accessible source")
	} else {
		log.Info().Int("titles", len(out.All)).Msg("web scrape complete")
	}
	return out
}

// fetchOne downloads a single source page and extracts its titles.
func fetchOne(ctx context.Context, client *http.Client, url, userAgent string) (types.TitleSet, error) {
	log.Debug().Str("url", url).Msg("fetching source")
	body, err := httputil.FetchPage(ctx, client, url, userAgent)
	if err != nil {
		return nil, err
	}
	return ExtractTitles(bytes.NewReader(body), url)
}

// citationRef matches wiki footnote markers such as "[1]" or "[note 2]"
// inside a table cell.
var citationRef = regexp.MustCompile(`\[[^\]]*\]`)

// brTag matches <br> variants inside a cell's inner HTML.
var brTag = regexp.MustCompile(`(?i)<br\s*/?>`)

// ExtractTitles parses HTML and collects normalized titles from the second
// column of every table with class "wikitable". The first row of each table
// is treated as a header. Cells holding several <br>-separated titles
// contribute one title per line.
func ExtractTitles(r io.Reader, url string) (types.TitleSet, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	found := make(types.TitleSet)
	tables := doc.Find("table.wikitable")
	if tables.Length() == 0 {
		log.Warn().Str("url", url).Msg("no wikitable found on page")
		return found, nil
	}

	tables.Each(func(ti int, table *goquery.Selection) {
		log.Debug().Str("url", url).Int("table", ti+1).Msg("processing table")
		table.Find("tr").Each(func(ri int, row *goquery.Selection) {
			if ri == 0 {
				return // header row
			}
			cells := row.Find("td, th")
			if cells.Length() < 2 {
				return
			}
			block := citationRef.ReplaceAllString(cellText(cells.Eq(1)), "")
			for _, line := range strings.Split(block, "\n") {
				cleaned := titles.Normalize(strings.TrimSpace(line))
				if cleaned == "" {
					continue
				}
				log.Debug().Str("raw", strings.TrimSpace(line)).Str("cleaned", cleaned).Msg("found title")
				found.Add(cleaned)
			}
		})
	})
	return found, nil
}

// cellText renders a table cell as text with <br> elements turned into
// newlines, so multi-title cells can be split line by line.
func cellText(cell *goquery.Selection) string {
	inner, err := cell.Html()
	if err != nil {
		return cell.Text()
	}
	inner = brTag.ReplaceAllString(inner, "\n")
	frag, err := goquery.NewDocumentFromReader(strings.NewReader("<div>" + inner + "</div>"))
	if err != nil {
		return cell.Text()
	}
	return frag.Text()
}
