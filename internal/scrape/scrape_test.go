// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dat-filter/pkg/types"
)

const wikitablePage = `<html><body>
<table class="wikitable">
  <tr><th>Region</th><th>Title</th><th>Notes</th></tr>
  <tr><td>USA</td><td>Super Game (USA)</td><td>great</td></tr>
  <tr><td>JP</td><td>Twin Pack A<br>Twin Pack B</td><td></td></tr>
  <tr><td>EU</td><td>Footnoted Title[1]</td><td></td></tr>
  <tr><td>EU</td><td></td><td>empty title cell</td></tr>
</table>
<table class="plain"><tr><td>x</td><td>Ignored Title</td></tr></table>
</body></html>`

func TestExtractTitles(t *testing.T) {
	got, err := ExtractTitles(strings.NewReader(wikitablePage), "test://page")
	require.NoError(t, err)

	assert.True(t, got.Contains("super game"), "region tag should be normalized away")
	assert.True(t, got.Contains("twin pack a"), "first <br> line")
	assert.True(t, got.Contains("twin pack b"), "second <br> line")
	assert.True(t, got.Contains("footnoted title"), "citation marker stripped")
	assert.False(t, got.Contains("ignored title"), "non-wikitable tables are skipped")
	assert.Len(t, got, 4)
}

func TestExtractTitlesNoTables(t *testing.T) {
	got, err := ExtractTitles(strings.NewReader("<html><body><p>nothing</p></body></html>"), "test://empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(wikitablePage))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bad.Close()
	missing := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer missing.Close()

	out := FetchAll(context.Background(), http.DefaultClient,
		[]string{bad.URL, good.URL, missing.URL}, types.ScrapeConfig{}, nil)

	assert.ElementsMatch(t, []string{bad.URL, missing.URL}, out.Failed)
	require.Contains(t, out.BySource, good.URL)
	assert.True(t, out.All.Contains("super game"))
	assert.NotContains(t, out.BySource, bad.URL, "failed sources carry no title set")
}

func TestFetchAllDeduplicatesURLs(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(wikitablePage))
	}))
	defer srv.Close()

	FetchAll(context.Background(), http.DefaultClient,
		[]string{srv.URL, srv.URL}, types.ScrapeConfig{}, nil)
	assert.Equal(t, 1, hits)
}

func TestExpandVariants(t *testing.T) {
	base := []string{"https://host/wiki/Mega_Drive"}

	got := ExpandVariants(base, true, true)
	assert.Equal(t, []string{
		"https://host/wiki/Mega_Drive",
		"https://host/wiki/Mega_Drive/Homebrew",
		"https://host/wiki/Mega_Drive/Japan",
	}, got)

	// Already-suffixed URLs are not doubled.
	got = ExpandVariants([]string{"https://host/wiki/Mega_Drive/homebrew"}, true, false)
	assert.Equal(t, []string{"https://host/wiki/Mega_Drive/homebrew"}, got)

	// No flags, no change (but still sorted and deduplicated).
	got = ExpandVariants([]string{"b", "a", "b"}, false, false)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestTitlesFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.yaml")
	in := Output{
		All:      types.NewTitleSet("alpha", "beta", "gamma"),
		BySource: map[string]types.TitleSet{"s1": types.NewTitleSet("alpha", "beta"), "s2": types.NewTitleSet("gamma")},
		Failed:   []string{"s3"},
	}

	require.NoError(t, WriteTitlesFile(path, in))
	got, err := ReadTitlesFile(path)
	require.NoError(t, err)

	assert.Equal(t, in.All.Sorted(), got.All.Sorted())
	assert.Equal(t, in.BySource["s1"].Sorted(), got.BySource["s1"].Sorted())
	assert.Equal(t, in.BySource["s2"].Sorted(), got.BySource["s2"].Sorted())
	assert.Equal(t, in.Failed, got.Failed)
}

func TestReadSourcesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, writeFile(path, "sources:\n  - https://host/wiki/A\n  - \"\"\n  - https://host/wiki/B\n"))

	got, err := ReadSourcesFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://host/wiki/A", "https://host/wiki/B"}, got)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, writeFile(empty, "sources: []\n"))
	_, err = ReadSourcesFile(empty)
	assert.Error(t, err)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
