// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package titles canonicalizes display titles for comparison and recognizes
// multi-part naming conventions ("(Disc N)", "(Side N)", ...).
package titles

import (
	"regexp"
	"strings"
)

var (
	bracketGroup = regexp.MustCompile(`\s*\[[^\]]*\]`)
	parenGroup   = regexp.MustCompile(`\s*\([^)]*\)`)
	whitespace   = regexp.MustCompile(`\s+`)

	firstPart    = regexp.MustCompile(`(?i)\((?:Disc|Disk|Side|Tape)\s+1\)`)
	anyPart      = regexp.MustCompile(`(?i)\((?:Disc|Disk|Side|Tape)\s+\d+\)`)
	trailingPart = regexp.MustCompile(`(?i)\s*\((?:Disc|Disk|Side|Tape)\s+\d+\)\s*$`)
)

// punctuation is the ASCII punctuation stripped during normalization. Hyphen
// is excluded here and turned into a space afterwards, so hyphenated titles
// compare equal to their spaced spellings.
const punctuation = "!\"#$%&'()*+,./:;<=>?@[\\]^_`{|}~"

// Normalize canonicalizes a display title into a comparison key: lowercase,
// bracketed and parenthesized groups removed, punctuation stripped, hyphens
// spaced, whitespace collapsed. The mapping is deliberately lossy and
// many-to-one; region tags and release metadata are erased on purpose.
func Normalize(title string) string {
	if title == "" {
		return ""
	}
	text := strings.ToLower(title)
	text = bracketGroup.ReplaceAllString(text, "")
	text = parenGroup.ReplaceAllString(text, "")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(punctuation, r) {
			continue
		}
		if r == '-' {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(whitespace.ReplaceAllString(b.String(), " "))
}

// IsFirstPart reports whether name carries a part-1 marker such as
// "(Disc 1)" or "(Tape 1)", case-insensitively, anywhere in the name.
func IsFirstPart(name string) bool {
	return firstPart.MatchString(name)
}

// IsAnyPart reports whether name carries a part marker with any number.
func IsAnyPart(name string) bool {
	return anyPart.MatchString(name)
}

// BaseName returns name with a trailing part marker removed and trimmed.
// Names without a trailing marker are returned unchanged, so BaseName can be
// compared across the parts of one logical title.
func BaseName(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimSpace(trailingPart.ReplaceAllString(name, ""))
}
