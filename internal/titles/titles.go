// Package titles maps wiki page titles to local filenames and lookup keys.
//
// Two distinct transformations live here:
//   - Filenames: the canonical on-disk name for a page, derived only from the
//     raw title. Stable across runs; never derived from a normalized key.
//   - Keys: a normalized form used to match reference strings that spell the
//     same title with different casing, whitespace, or hyphen glyphs.
package titles

import (
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

// LandingTitle is the title Redmine assigns to a project's main wiki page.
const LandingTitle = "wiki"

// Landing returns the filename used for the project's landing page, so the
// mirrored directory has a sensible entry document for downstream consumers.
func Landing(extension string) string {
	return "index." + extension
}

// IsLandingTitle reports whether a title names the project's landing page.
func IsLandingTitle(title string) bool {
	return strings.EqualFold(strings.TrimSpace(title), LandingTitle)
}

// FilenameFor returns the local filename for a wiki page title.
// The landing page maps to Landing(extension); every other title is
// lowercased with spaces replaced by underscores.
func FilenameFor(title, extension string) string {
	if IsLandingTitle(title) {
		return Landing(extension)
	}
	safe := strings.ToLower(title)
	safe = strings.ReplaceAll(safe, " ", "_")
	// Path separators would scatter pages into subdirectories.
	safe = strings.ReplaceAll(safe, "/", "_")
	safe = strings.ReplaceAll(safe, "\\", "_")
	return safe + "." + extension
}

// NormalizeKey returns the lookup key for a title: surrounding whitespace
// trimmed, hyphen variants mapped to ASCII '-', internal whitespace runs
// collapsed to a single space, and the result case-folded.
//
// Keys are for matching only. Filenames always come from FilenameFor.
func NormalizeKey(title string) string {
	key := strings.Map(normalizeHyphen, title)
	key = strings.Join(strings.Fields(key), " ")
	return strings.ToLower(key)
}

// normalizeHyphen maps unicode dash punctuation (en/em dashes, the unicode
// hyphen, minus sign) to the ASCII hyphen.
func normalizeHyphen(r rune) rune {
	if r == '−' || unicode.Is(unicode.Pd, r) {
		return '-'
	}
	return r
}

// HeadingAnchor converts a heading fragment from a wiki link into the anchor
// slug used in the rewritten markdown link.
func HeadingAnchor(text string) string {
	anchor := goslug.Make(text)
	if anchor == "" {
		anchor = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(text), " ", "-"))
	}
	return anchor
}
