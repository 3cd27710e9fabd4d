// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes the per-source unmatched-title CSV files and renders
// the final run summary.
package report

import (
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

var unsafeChars = regexp.MustCompile(`[^\w.-]+`)

// CSVName derives the unmatched-report file name for a source URL from its
// path segments (minus any "wiki" segment), falling back to a positional
// name when nothing usable remains. n is the source's 1-based position.
func CSVName(sourceURL string, n int) string {
	base := ""
	if u, err := url.Parse(sourceURL); err == nil {
		var parts []string
		for _, part := range strings.Split(strings.Trim(u.Path, "/"), "/") {
			if part != "" && !strings.EqualFold(part, "wiki") {
				parts = append(parts, part)
			}
		}
		base = strings.Join(parts, "_")
	}
	if base == "" {
		base = fmt.Sprintf("url_%d", n)
	}
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "_")
	if base == "" {
		base = fmt.Sprintf("url_%d", n)
	}
	return base + "_unmatched.csv"
}

// WriteUnmatchedCSV writes one source's still-unmatched reference titles to
// a CSV file in dir, one title per row under a descriptive header, sorted.
// It returns the file name written.
func WriteUnmatchedCSV(dir, sourceURL string, unmatched []string, n int) (string, error) {
	name := CSVName(sourceURL, n)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{fmt.Sprintf("Unmatched recommended title from %s (after review / no match kept)", sourceURL)}); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}
	for _, title := range unmatched {
		if err := w.Write([]string{title}); err != nil {
			return "", fmt.Errorf("writing report %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}

	log.Info().Str("file", name).Int("titles", len(unmatched)).Str("url", sourceURL).Msg("wrote unmatched report")
	return name, nil
}
