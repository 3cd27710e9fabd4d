// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Summary holds the counts shown at the end of a run.
type Summary struct {
	InputPath  string
	OutputPath string

	OriginalGames int
	KeptGames     int
	RemovedGames  int

	// SourceTitles maps each attempted source URL to its extracted title
	// count; failed sources are listed separately.
	SourceTitles  map[string]int
	FailedSources []string

	TotalTitles     int
	MatchedTitles   int
	UnmatchedTitles int

	Threshold       int
	ReviewEnabled   bool
	ReviewThreshold int
	Reviewed        int
	ManuallyMatched int

	CSVFiles []string
}

// Render writes the summary as a table followed by the per-source list.
func (s Summary) Render(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("Final Operation Summary")
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	tw.AppendRow(table.Row{"Input DAT file", s.InputPath})
	tw.AppendRow(table.Row{"Output DAT file", s.OutputPath})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"Games in original DAT", s.OriginalGames})
	tw.AppendRow(table.Row{"Games kept", s.KeptGames})
	tw.AppendRow(table.Row{"Games removed / not selected", s.RemovedGames})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"Unique reference titles", s.TotalTitles})
	tw.AppendRow(table.Row{"Titles matched (game kept)", s.MatchedTitles})
	tw.AppendRow(table.Row{"Titles not matched", s.UnmatchedTitles})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"Similarity threshold", fmt.Sprintf("%d%%", s.Threshold)})
	if s.ReviewEnabled {
		tw.AppendRow(table.Row{"Review low threshold", fmt.Sprintf("%d%%", s.ReviewThreshold)})
		tw.AppendRow(table.Row{"Titles reviewed", s.Reviewed})
		tw.AppendRow(table.Row{"Titles manually matched", s.ManuallyMatched})
	}
	tw.Render()

	if len(s.SourceTitles) > 0 || len(s.FailedSources) > 0 {
		fmt.Fprintln(w, "Reference title sources:")
		urls := make([]string, 0, len(s.SourceTitles))
		for u := range s.SourceTitles {
			urls = append(urls, u)
		}
		sort.Strings(urls)
		for _, u := range urls {
			fmt.Fprintf(w, "  %s -> %d titles\n", u, s.SourceTitles[u])
		}
		for _, u := range s.FailedSources {
			fmt.Fprintf(w, "  %s -> fetch error\n", u)
		}
	}
	if len(s.CSVFiles) > 0 {
		fmt.Fprintf(w, "Unmatched-title reports written: %d\n", len(s.CSVFiles))
	}
}
