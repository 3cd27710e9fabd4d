// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

// sourcesFile is the on-disk list of source URLs.
type sourcesFile struct {
	Sources []string `yaml:"sources"`
}

// ReadSourcesFile loads source URLs from a YAML file of the form:
//
//	sources:
//	  - https://example.org/wiki/Mega_Drive
//	  - https://example.org/wiki/Saturn
func ReadSourcesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}
	var sf sourcesFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing sources file: %w", err)
	}
	var urls []string
	for _, u := range sf.Sources {
		u = strings.TrimSpace(u)
		if u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("sources file %s lists no URLs", path)
	}
	return urls, nil
}

// ExpandVariants adds "/Homebrew" and/or "/Japan" variants of each base URL
// that is not already suffixed with one, then deduplicates and sorts the
// final list so the fetch order is stable.
func ExpandVariants(urls []string, homebrew, japan bool) []string {
	expanded := make(map[string]bool, len(urls))
	for _, u := range urls {
		expanded[u] = true
	}
	addVariant := func(suffix string) {
		for _, base := range urls {
			if strings.HasSuffix(strings.ToLower(strings.TrimRight(base, "/")), strings.ToLower(suffix)) {
				continue
			}
			expanded[strings.TrimRight(base, "/")+suffix] = true
		}
	}
	if homebrew {
		addVariant("/Homebrew")
	}
	if japan {
		addVariant("/Japan")
	}

	out := make([]string, 0, len(expanded))
	for u := range expanded {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}
