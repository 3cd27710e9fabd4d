// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dat-filter/pkg/types"
)

const sampleDAT = `<?xml version="1.0"?>
<datafile>
	<header>
		<name>Mega System (retool)</name>
		<description>Mega System - Full Set</description>
		<version>2024-01-01</version>
		<author>someone</author>
		<url>https://example.org/dats</url>
		<comment>original comment</comment>
	</header>
	<game name="Super Game (USA)">
		<description>Super Game (USA)</description>
		<rom name="Super Game (USA).bin" size="1024" crc="deadbeef"/>
	</game>
	<game name="Other Title" cloneof="Super Game (USA)">
		<rom name="Other Title.bin" size="2048" crc="cafebabe"/>
	</game>
</datafile>
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.dat")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse(t *testing.T) {
	f, err := Parse(writeSample(t, sampleDAT))
	require.NoError(t, err)

	require.NotNil(t, f.Header)
	assert.Equal(t, "Mega System (retool)", f.Header.Name)
	assert.Equal(t, "Mega System - Full Set", f.Header.Description)

	require.Len(t, f.Entries, 2)
	assert.Equal(t, "Super Game (USA)", f.Entries[0].Name)
	assert.Equal(t, "Other Title", f.Entries[1].Name)
}

func TestParsePreservesPayload(t *testing.T) {
	f, err := Parse(writeSample(t, sampleDAT))
	require.NoError(t, err)

	raw := string(f.Entries[0].Raw)
	assert.Contains(t, raw, `crc="deadbeef"`, "rom payload must survive")
	assert.Contains(t, raw, "<description>Super Game (USA)</description>")

	// Extra attributes beyond name ride along.
	assert.Contains(t, string(f.Entries[1].Raw), `cloneof="Super Game (USA)"`)
}

func TestParseWrongRoot(t *testing.T) {
	_, err := Parse(writeSample(t, `<?xml version="1.0"?><notdat><game name="x"/></notdat>`))
	require.Error(t, err)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.dat"))
	require.Error(t, err)
}

func TestParseMalformedXML(t *testing.T) {
	_, err := Parse(writeSample(t, "<datafile><game name='x'>"))
	require.Error(t, err)
}

func TestRewriteHeader(t *testing.T) {
	f, err := Parse(writeSample(t, sampleDAT))
	require.NoError(t, err)

	prov := Provenance{
		Version:  "1.0.0",
		Author:   "dat-filter",
		Homepage: "https://github.com/pdiddy/dat-filter",
		Date:     time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
	}
	els := RewriteHeader(f.Header, prov)

	byTag := map[string]string{}
	for _, el := range els {
		byTag[el.XMLName.Local] = el.Text
	}
	assert.Equal(t, "Mega System (dat-filter)", byTag["name"], "trailing parenthetical stripped")
	assert.Equal(t, "Mega System - Full Set (dat-filter)", byTag["description"])
	assert.Equal(t, "1.0.0", byTag["version"])
	assert.Equal(t, "2026-08-25", byTag["date"])
	assert.Equal(t, "https://example.org/dats", byTag["url"], "url copied through")
	assert.Equal(t, "original comment", byTag["comment"])
	assert.NotContains(t, byTag, "homepage_original")

	// The original author is replaced, not copied.
	assert.Equal(t, "dat-filter", byTag["author"])
}

func TestRewriteHeaderNoOriginal(t *testing.T) {
	els := RewriteHeader(nil, Provenance{Version: "v", Date: time.Now()})
	byTag := map[string]string{}
	for _, el := range els {
		byTag[el.XMLName.Local] = el.Text
	}
	assert.Equal(t, "Unknown System (dat-filter)", byTag["name"])
	assert.Equal(t, "Unknown DAT (dat-filter)", byTag["description"])
}

func TestWriteRoundTrip(t *testing.T) {
	f, err := Parse(writeSample(t, sampleDAT))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.dat")
	header := RewriteHeader(f.Header, Provenance{Version: "1.0.0", Date: time.Now()})
	require.NoError(t, Write(out, header, f.Entries[:1]))

	count, err := CountGames(out)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	reread, err := Parse(out)
	require.NoError(t, err)
	require.Len(t, reread.Entries, 1)
	assert.Equal(t, "Super Game (USA)", reread.Entries[0].Name)
	assert.Contains(t, string(reread.Entries[0].Raw), `crc="deadbeef"`)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?xml"), "XML declaration present")
}

func TestWriteEscapesNames(t *testing.T) {
	entry := types.Entry{
		Name: `Tom & "Jerry"`,
		Raw:  []byte(`<game name="Tom &amp; &#34;Jerry&#34;"/>`),
	}
	out := filepath.Join(t.TempDir(), "escaped.dat")
	require.NoError(t, Write(out, RewriteHeader(nil, Provenance{Version: "v", Date: time.Now()}), []types.Entry{entry}))

	reread, err := Parse(out)
	require.NoError(t, err)
	require.Len(t, reread.Entries, 1)
	assert.Equal(t, `Tom & "Jerry"`, reread.Entries[0].Name)
}
