// Package refmap resolves wiki reference strings to mirrored filenames.
package refmap

import (
	"net/url"
	"strings"

	"wikimirror/internal/titles"
)

// Table maps every title in a project's page index to its target filename.
//
// Each title owns exactly one filename; the filename is indexed under three
// keys so that references found in markup resolve regardless of how they are
// spelled: the raw title, the percent-encoded title as it appears embedded in
// a URL, and the normalized key.
type Table struct {
	extension string
	filenames []string
	byRaw     map[string]int
	byEncoded map[string]int
	byKey     map[string]int
}

// New builds a Table from the ordered page index. When two titles map to the
// same key, the later index entry wins, so results are reproducible for
// identical input.
func New(index []string, extension string) *Table {
	t := &Table{
		extension: extension,
		byRaw:     make(map[string]int, len(index)),
		byEncoded: make(map[string]int, len(index)),
		byKey:     make(map[string]int, len(index)),
	}

	for _, title := range index {
		if strings.TrimSpace(title) == "" {
			continue
		}
		id := len(t.filenames)
		t.filenames = append(t.filenames, titles.FilenameFor(title, extension))
		t.byRaw[title] = id
		t.byEncoded[url.PathEscape(title)] = id
		t.byKey[titles.NormalizeKey(title)] = id
	}

	return t
}

// Len returns the number of titles in the table.
func (t *Table) Len() int {
	return len(t.filenames)
}

// Extension returns the filename extension the table was built with.
func (t *Table) Extension() string {
	return t.extension
}

// Resolve maps an arbitrary reference string to a filename.
//
// Lookup order: exact raw title, percent-decoded title, encoded form, then
// normalized key. A reference that matches nothing degrades to a best-guess
// filename computed from the decoded text, so a dangling reference never
// fails the rewrite.
func (t *Table) Resolve(ref string) string {
	if id, ok := t.byRaw[ref]; ok {
		return t.filenames[id]
	}

	decoded := ref
	if d, err := url.PathUnescape(ref); err == nil {
		decoded = d
	}
	if id, ok := t.byRaw[decoded]; ok {
		return t.filenames[id]
	}
	if id, ok := t.byEncoded[ref]; ok {
		return t.filenames[id]
	}
	if id, ok := t.byKey[titles.NormalizeKey(decoded)]; ok {
		return t.filenames[id]
	}

	return titles.FilenameFor(decoded, t.extension)
}

// Known reports whether a reference resolves to a title present in the index.
func (t *Table) Known(ref string) bool {
	if _, ok := t.byRaw[ref]; ok {
		return true
	}
	decoded := ref
	if d, err := url.PathUnescape(ref); err == nil {
		decoded = d
	}
	if _, ok := t.byRaw[decoded]; ok {
		return true
	}
	if _, ok := t.byEncoded[ref]; ok {
		return true
	}
	_, ok := t.byKey[titles.NormalizeKey(decoded)]
	return ok
}
