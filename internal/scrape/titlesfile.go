// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"fmt"
	"os"
	"sort"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dat-filter/pkg/types"
)

// TitlesFile is the on-disk representation of a completed scrape. A scrape
// can be saved once and reloaded later, so the filtering stages can run
// offline against the same reference titles.
type TitlesFile struct {
	Sources []SourceTitles `yaml:"sources"`
	Failed  []string       `yaml:"failed,omitempty"`
	Summary TitlesSummary  `yaml:"summary"`
}

// SourceTitles holds one source's contribution.
type SourceTitles struct {
	URL    string   `yaml:"url"`
	Titles []string `yaml:"titles"`
}

// TitlesSummary records scrape statistics and a timestamp.
type TitlesSummary struct {
	TotalTitles int       `yaml:"total_titles"`
	Timestamp   time.Time `yaml:"timestamp"`
}

// WriteTitlesFile saves a scrape output to a YAML file. Titles are stored
// sorted so the file is diff-friendly across runs.
func WriteTitlesFile(path string, out Output) error {
	tf := TitlesFile{
		Failed: out.Failed,
		Summary: TitlesSummary{
			TotalTitles: len(out.All),
			Timestamp:   time.Now(),
		},
	}
	for _, url := range sortedKeys(out.BySource) {
		tf.Sources = append(tf.Sources, SourceTitles{
			URL:    url,
			Titles: out.BySource[url].Sorted(),
		})
	}

	data, err := yaml.Marshal(&tf)
	if err != nil {
		return fmt.Errorf("marshaling titles file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadTitlesFile loads a previously saved scrape from disk.
func ReadTitlesFile(path string) (Output, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Output{}, fmt.Errorf("reading titles file: %w", err)
	}
	var tf TitlesFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return Output{}, fmt.Errorf("parsing titles file: %w", err)
	}

	out := Output{
		All:      make(types.TitleSet),
		BySource: make(map[string]types.TitleSet),
		Failed:   tf.Failed,
	}
	for _, st := range tf.Sources {
		set := types.NewTitleSet(st.Titles...)
		out.BySource[st.URL] = set
		out.All.AddAll(set)
	}
	return out, nil
}

func sortedKeys(m map[string]types.TitleSet) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
