// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dat reads and writes catalog files in the XML "datafile" format.
// Game elements are preserved verbatim: only the name attribute is
// interpreted, everything else rides along as raw payload.
package dat

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/dat-filter/pkg/types"
)

// Element is a generic header child preserved with its tag, attributes, and
// text. Nested structure below one level is not preserved, matching what the
// header rewrite needs.
type Element struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
}

// Header holds the parsed input header.
type Header struct {
	Name        string
	Description string
	Elements    []Element // all children in document order
}

// File is a parsed catalog.
type File struct {
	Header  *Header // nil when the input has no <header>
	Entries []types.Entry
}

type fileXML struct {
	XMLName xml.Name   `xml:"datafile"`
	Header  *headerXML `xml:"header"`
	Games   []gameXML  `xml:"game"`
}

type headerXML struct {
	Elements []Element `xml:",any"`
}

type gameXML struct {
	Name  string     `xml:"name,attr"`
	Attrs []xml.Attr `xml:",any,attr"`
	Inner string     `xml:",innerxml"`
}

// Parse reads a catalog file. It fails when the file is missing, is not
// well-formed XML, or its root element is not <datafile>.
func Parse(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var fx fileXML
	if err := xml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	f := &File{}
	if fx.Header != nil {
		h := &Header{Elements: fx.Header.Elements}
		for _, el := range fx.Header.Elements {
			switch el.XMLName.Local {
			case "name":
				h.Name = strings.TrimSpace(el.Text)
			case "description":
				h.Description = strings.TrimSpace(el.Text)
			}
		}
		f.Header = h
	}

	for _, g := range fx.Games {
		f.Entries = append(f.Entries, types.Entry{
			Name: g.Name,
			Raw:  renderGame(g),
		})
	}
	return f, nil
}

// renderGame serializes one game element back to XML, name attribute first,
// remaining attributes in document order, inner payload verbatim.
func renderGame(g gameXML) []byte {
	var b bytes.Buffer
	b.WriteString(`<game name="`)
	escapeAttr(&b, g.Name)
	b.WriteByte('"')
	for _, a := range g.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name.Local)
		b.WriteString(`="`)
		escapeAttr(&b, a.Value)
		b.WriteByte('"')
	}
	if strings.TrimSpace(g.Inner) == "" {
		b.WriteString("/>")
		return b.Bytes()
	}
	b.WriteByte('>')
	b.WriteString(g.Inner)
	b.WriteString("</game>")
	return b.Bytes()
}

// Provenance is the tool stamp written into the output header.
type Provenance struct {
	Version  string
	Author   string
	Homepage string
	Date     time.Time
}

const filterTag = "(dat-filter)"

var trailingParen = regexp.MustCompile(`\s*\([^)]*\)$`)

// copiedTags lists original header tags carried into the output alongside
// the rewritten provenance fields.
var copiedTags = map[string]bool{
	"url":        true,
	"retool":     true,
	"clrmamepro": true,
	"comment":    true,
}

// RewriteHeader builds the output header: the original name (minus any
// trailing parenthetical) and description gain a filter tag, provenance
// fields are replaced with the tool's own, and a whitelist of original tags
// is copied through with attributes.
func RewriteHeader(orig *Header, prov Provenance) []Element {
	name := "Unknown System"
	description := "Unknown DAT"
	if orig != nil {
		if orig.Name != "" {
			name = orig.Name
		}
		if orig.Description != "" {
			description = orig.Description
		}
	}
	name = strings.TrimSpace(trailingParen.ReplaceAllString(name, ""))

	out := []Element{
		textElement("name", name+" "+filterTag),
		textElement("description", description+" "+filterTag),
		textElement("version", prov.Version),
		textElement("date", prov.Date.Format("2006-01-02")),
		textElement("author", prov.Author),
		textElement("homepage", prov.Homepage),
	}
	if orig != nil {
		for _, el := range orig.Elements {
			if copiedTags[el.XMLName.Local] {
				out = append(out, el)
			}
		}
	}
	return out
}

func textElement(tag, text string) Element {
	return Element{XMLName: xml.Name{Local: tag}, Text: text}
}

// Write serializes the filtered catalog with the given header elements and
// entries, tab-indented, with an XML declaration.
func Write(path string, header []Element, entries []types.Entry) error {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString("<datafile>\n")
	b.WriteString("\t<header>\n")
	for _, el := range header {
		b.WriteString("\t\t")
		writeElement(&b, el)
		b.WriteByte('\n')
	}
	b.WriteString("\t</header>\n")
	for _, e := range entries {
		b.WriteByte('\t')
		b.Write(e.Raw)
		b.WriteByte('\n')
	}
	b.WriteString("</datafile>\n")

	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing catalog %s: %w", path, err)
	}
	return nil
}

func writeElement(b *bytes.Buffer, el Element) {
	b.WriteByte('<')
	b.WriteString(el.XMLName.Local)
	for _, a := range el.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name.Local)
		b.WriteString(`="`)
		escapeAttr(b, a.Value)
		b.WriteByte('"')
	}
	if el.Text == "" {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	xml.EscapeText(b, []byte(el.Text))
	b.WriteString("</")
	b.WriteString(el.XMLName.Local)
	b.WriteByte('>')
}

func escapeAttr(b *bytes.Buffer, s string) {
	xml.EscapeText(b, []byte(s))
}

// CountGames re-parses a written catalog and returns its game count. The
// caller compares it against the selection size as a write confirmation.
func CountGames(path string) (int, error) {
	f, err := Parse(path)
	if err != nil {
		return 0, err
	}
	return len(f.Entries), nil
}
